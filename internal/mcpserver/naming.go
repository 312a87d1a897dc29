package mcpserver

import (
	"strings"

	"github.com/specmcp/specmcp/document"
	"github.com/specmcp/specmcp/internal/naming"
)

// displayName derives a human-readable name for an endpoint: the summary
// when present, otherwise the operationId split into title-cased words,
// otherwise "METHOD /path".
func displayName(ep document.Endpoint) string {
	if ep.Summary != "" {
		return ep.Summary
	}
	if ep.OperationID != "" {
		return naming.Humanize(ep.OperationID)
	}
	return strings.ToUpper(ep.Method) + " " + ep.Path
}
