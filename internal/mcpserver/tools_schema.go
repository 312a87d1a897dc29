package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"
)

// renderFragment renders a resolved fragment as YAML for compact,
// human-readable tool output.
func renderFragment(fragment map[string]any) (string, error) {
	data, err := yaml.Marshal(fragment)
	if err != nil {
		return "", fmt.Errorf("rendering fragment: %w", err)
	}
	return string(data), nil
}

type getEndpointInput struct {
	Method string `json:"method" jsonschema:"HTTP method of the endpoint (e.g. get, POST)"`
	Path   string `json:"path"   jsonschema:"Template path of the endpoint (e.g. /pets/{petId})"`
}

type getEndpointOutput struct {
	endpointSummary
	Description string `json:"description,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`
	// Definition is the full operation object with all $refs expanded,
	// rendered as YAML.
	Definition string `json:"definition"`
}

func (s *session) handleGetEndpoint(ctx context.Context, _ *mcp.CallToolRequest, input getEndpointInput) (*mcp.CallToolResult, getEndpointOutput, error) {
	doc, err := s.obtain(ctx)
	if err != nil {
		return errResult(err), getEndpointOutput{}, nil
	}

	ep, ok := doc.Endpoint(input.Method, input.Path)
	if !ok {
		return errResult(fmt.Errorf("endpoint not found: %s %s (use list_endpoints or search_endpoints to discover endpoints)",
			input.Method, input.Path)), getEndpointOutput{}, nil
	}

	resolved := s.resolver.Resolve(doc.Raw(), ep.Raw())
	definition, err := renderFragment(resolved)
	if err != nil {
		return errResult(err), getEndpointOutput{}, nil
	}

	return nil, getEndpointOutput{
		endpointSummary: summarize(ep),
		Description:     ep.Description,
		BaseURL:         doc.BaseURL,
		Definition:      definition,
	}, nil
}

type getSchemaInput struct {
	Name string `json:"name" jsonschema:"Name of the schema in the document's schema dictionary"`
}

type getSchemaOutput struct {
	Name string `json:"name"`
	// Ref is the intra-document pointer the schema lives at.
	Ref string `json:"ref"`
	// Definition is the schema with all $refs expanded, rendered as YAML.
	Definition string `json:"definition"`
}

// maxSuggestedSchemas caps the names listed in a not-found error.
const maxSuggestedSchemas = 50

func (s *session) handleGetSchema(ctx context.Context, _ *mcp.CallToolRequest, input getSchemaInput) (*mcp.CallToolResult, getSchemaOutput, error) {
	doc, err := s.obtain(ctx)
	if err != nil {
		return errResult(err), getSchemaOutput{}, nil
	}

	fragment, ok := doc.Schema(input.Name)
	if !ok {
		names := doc.SchemaNames()
		suffix := ""
		if len(names) > maxSuggestedSchemas {
			suffix = fmt.Sprintf(" and %d more", len(names)-maxSuggestedSchemas)
			names = names[:maxSuggestedSchemas]
		}
		return errResult(fmt.Errorf("schema not found: %q; available: %s%s",
			input.Name, strings.Join(names, ", "), suffix)), getSchemaOutput{}, nil
	}

	resolved := s.resolver.Resolve(doc.Raw(), fragment)
	definition, err := renderFragment(resolved)
	if err != nil {
		return errResult(err), getSchemaOutput{}, nil
	}

	return nil, getSchemaOutput{
		Name:       input.Name,
		Ref:        doc.SchemaRefPrefix() + input.Name,
		Definition: definition,
	}, nil
}
