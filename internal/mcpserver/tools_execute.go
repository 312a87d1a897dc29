package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/specmcp/specmcp"
	"github.com/specmcp/specmcp/internal/httputil"
)

// maxResponseBody caps how much of an endpoint response is returned to
// the MCP client.
const maxResponseBody = 1 << 20 // 1MB

type executeRequestInput struct {
	Method     string            `json:"method"                jsonschema:"HTTP method of the endpoint to invoke"`
	Path       string            `json:"path"                  jsonschema:"Template path of the endpoint (e.g. /pets/{petId})"`
	PathParams map[string]string `json:"path_params,omitempty" jsonschema:"Values substituted for {placeholders} in the path"`
	Query      map[string]string `json:"query,omitempty"       jsonschema:"Query parameters appended to the URL"`
	Headers    map[string]string `json:"headers,omitempty"     jsonschema:"Additional request headers"`
	Body       string            `json:"body,omitempty"        jsonschema:"JSON request body"`
}

type executeRequestOutput struct {
	URL         string `json:"url"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body"`
	Truncated   bool   `json:"truncated,omitempty"`
}

func (s *session) handleExecuteRequest(ctx context.Context, _ *mcp.CallToolRequest, input executeRequestInput) (*mcp.CallToolResult, executeRequestOutput, error) {
	method := httputil.NormalizeMethod(input.Method)
	if !httputil.IsOperationMethod(method) {
		return errResult(fmt.Errorf("unsupported HTTP method: %q", input.Method)), executeRequestOutput{}, nil
	}

	doc, err := s.obtain(ctx)
	if err != nil {
		return errResult(err), executeRequestOutput{}, nil
	}
	if _, ok := doc.Endpoint(method, input.Path); !ok {
		return errResult(fmt.Errorf("endpoint not found: %s %s (use list_endpoints or search_endpoints to discover endpoints)",
			input.Method, input.Path)), executeRequestOutput{}, nil
	}
	if doc.BaseURL == "" {
		return errResult(fmt.Errorf("document declares no base URL; cannot invoke endpoints")), executeRequestOutput{}, nil
	}

	target, err := buildRequestURL(doc.BaseURL, input.Path, input.PathParams, input.Query)
	if err != nil {
		return errResult(err), executeRequestOutput{}, nil
	}

	var body io.Reader
	if input.Body != "" {
		body = strings.NewReader(input.Body)
	}
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), target, body)
	if err != nil {
		return errResult(err), executeRequestOutput{}, nil
	}
	req.Header.Set("User-Agent", specmcp.UserAgent())
	if input.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range input.Headers {
		req.Header.Set(name, value)
	}
	// Same auth material as the document fetches.
	s.cache.ApplyAuth(ctx, req, s.source)

	resp, err := s.client.Do(req)
	if err != nil {
		return errResult(fmt.Errorf("request failed: %w", err)), executeRequestOutput{}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return errResult(fmt.Errorf("reading response: %w", err)), executeRequestOutput{}, nil
	}
	truncated := len(data) > maxResponseBody
	if truncated {
		data = data[:maxResponseBody]
	}

	return nil, executeRequestOutput{
		URL:         target,
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(data),
		Truncated:   truncated,
	}, nil
}

// buildRequestURL substitutes {placeholders} in the template path, joins
// it to the base URL, and appends query parameters. Unsubstituted
// placeholders are an error so malformed URLs never reach the remote.
func buildRequestURL(baseURL, path string, pathParams, query map[string]string) (string, error) {
	for name, value := range pathParams {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	if i := strings.IndexByte(path, '{'); i >= 0 {
		if j := strings.IndexByte(path[i:], '}'); j >= 0 {
			return "", fmt.Errorf("missing path parameter %q", path[i+1:i+j])
		}
	}

	target := strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		values := url.Values{}
		for name, value := range query {
			values.Set(name, value)
		}
		target += "?" + values.Encode()
	}
	return target, nil
}
