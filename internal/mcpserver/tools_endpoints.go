package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/specmcp/specmcp/document"
)

// endpointSummary is the compact listing form of one operation.
type endpointSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Name        string   `json:"name"`
	OperationID string   `json:"operation_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

func summarize(ep document.Endpoint) endpointSummary {
	return endpointSummary{
		Method:      ep.Method,
		Path:        ep.Path,
		Name:        displayName(ep),
		OperationID: ep.OperationID,
		Tags:        ep.Tags,
		Deprecated:  ep.Deprecated,
	}
}

type listEndpointsInput struct {
	Offset int `json:"offset,omitempty" jsonschema:"Number of endpoints to skip"`
	Limit  int `json:"limit,omitempty"  jsonschema:"Maximum endpoints to return"`
}

type listEndpointsOutput struct {
	Title     string            `json:"title"`
	Version   string            `json:"version"`
	BaseURL   string            `json:"base_url,omitempty"`
	Total     int               `json:"total"`
	Endpoints []endpointSummary `json:"endpoints"`
}

func (s *session) handleListEndpoints(ctx context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	doc, err := s.obtain(ctx)
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	all := doc.Endpoints()
	page := paginate(all, input.Offset, input.Limit, s.cfg.ListLimit, s.cfg.MaxLimit)

	output := listEndpointsOutput{
		Title:     doc.Title,
		Version:   doc.APIVersion,
		BaseURL:   doc.BaseURL,
		Total:     len(all),
		Endpoints: make([]endpointSummary, 0, len(page)),
	}
	for _, ep := range page {
		output.Endpoints = append(output.Endpoints, summarize(ep))
	}
	return nil, output, nil
}

type searchEndpointsInput struct {
	Query string `json:"query"           jsonschema:"Search terms matched against path, operationId, summary, description, and tags"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results to return"`
}

type searchMatch struct {
	endpointSummary
	Score int `json:"score"`
}

type searchEndpointsOutput struct {
	Total   int           `json:"total"`
	Results []searchMatch `json:"results"`
}

func (s *session) handleSearchEndpoints(ctx context.Context, _ *mcp.CallToolRequest, input searchEndpointsInput) (*mcp.CallToolResult, searchEndpointsOutput, error) {
	doc, err := s.obtain(ctx)
	if err != nil {
		return errResult(err), searchEndpointsOutput{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.SearchLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	all := doc.SearchEndpoints(input.Query, 0)
	results := all
	if len(results) > limit {
		results = results[:limit]
	}

	output := searchEndpointsOutput{
		Total:   len(all),
		Results: make([]searchMatch, 0, len(results)),
	}
	for _, r := range results {
		output.Results = append(output.Results, searchMatch{
			endpointSummary: summarize(r.Endpoint),
			Score:           r.Score,
		})
	}
	return nil, output, nil
}
