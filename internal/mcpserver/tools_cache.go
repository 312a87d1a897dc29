package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type refreshSpecInput struct{}

type refreshSpecOutput struct {
	Title         string `json:"title"`
	Version       string `json:"version"`
	SpecVersion   string `json:"spec_version"`
	BaseURL       string `json:"base_url,omitempty"`
	EndpointCount int    `json:"endpoint_count"`
	SchemaCount   int    `json:"schema_count"`
}

func (s *session) handleRefreshSpec(ctx context.Context, _ *mcp.CallToolRequest, _ refreshSpecInput) (*mcp.CallToolResult, refreshSpecOutput, error) {
	if err := s.cache.Clear(s.source); err != nil {
		return errResult(err), refreshSpecOutput{}, nil
	}

	doc, err := s.cache.Obtain(ctx, s.source)
	if err != nil {
		return errResult(err), refreshSpecOutput{}, nil
	}

	return nil, refreshSpecOutput{
		Title:         doc.Title,
		Version:       doc.APIVersion,
		SpecVersion:   string(doc.Version),
		BaseURL:       doc.BaseURL,
		EndpointCount: len(doc.Endpoints()),
		SchemaCount:   len(doc.SchemaNames()),
	}, nil
}
