// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes one remote OpenAPI/Swagger document as MCP tools over
// stdio: endpoint listing and search, resolved endpoint and schema
// inspection, live endpoint invocation, and cache maintenance.
package mcpserver

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/specmcp/specmcp"
	"github.com/specmcp/specmcp/cache"
	"github.com/specmcp/specmcp/document"
	"github.com/specmcp/specmcp/resolver"
	"github.com/specmcp/specmcp/specerrors"
)

const serverInstructions = `specmcp MCP server — search, inspect, and invoke the endpoints of one remote OpenAPI/Swagger document.

Configuration: All settings come from SPECMCP_* environment variables set in your MCP client config.

Key settings:
- SPECMCP_SPEC_URL (required) — URL of the OpenAPI/Swagger document
- SPECMCP_BEARER_TOKEN / SPECMCP_USERNAME + SPECMCP_PASSWORD — auth for the document and the API (bearer wins over basic)
- SPECMCP_COOKIE — static cookie header value
- SPECMCP_LOGIN_URL / SPECMCP_LOGIN_METHOD / SPECMCP_LOGIN_BODY — login flow whose session cookies are appended to the static cookie
- SPECMCP_CACHE_DIR (default: user cache dir) — on-disk spec cache location
- SPECMCP_CACHE_ENABLED (default: true) — set false to force a full download on every access
- SPECMCP_SEARCH_LIMIT (default: 20) / SPECMCP_LIST_LIMIT (default: 100) — result limits
- SPECMCP_ALLOW_PRIVATE_IPS (default: false) — allow requests to private/loopback addresses

Caching: The document is cached on disk and revalidated with a cheap HEAD request (etag/last-modified) before each use; a remote outage serves the last known good copy. Use refresh_spec to force a re-download.`

// session is the caller-owned handle holding one document source and the
// collaborators operating on it. Multiple sessions against different
// sources can coexist in one process.
type session struct {
	cfg      *serverConfig
	source   cache.Source
	cache    *cache.Cache
	client   *http.Client
	resolver *resolver.Resolver
	logger   document.Logger
}

// newSession validates the configured source and wires the cache,
// resolver, and HTTP client for it.
func newSession(cfg *serverConfig) (*session, error) {
	source := cfg.source()
	if source.URL == "" {
		return nil, &specerrors.ConfigError{
			Option:  "SPECMCP_SPEC_URL",
			Message: "document URL is required",
		}
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}

	logger := document.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	client := newSafeHTTPClient(cfg.HTTPTimeout)
	if cfg.AllowPrivateIPs {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &session{
		cfg:    cfg,
		source: source,
		cache: cache.New(cfg.CacheDir,
			cache.WithHTTPClient(client),
			cache.WithLogger(logger),
		),
		client:   client,
		resolver: resolver.NewWithLogger(logger),
		logger:   logger,
	}, nil
}

// obtain returns the current document for the session's source. With
// caching disabled the entry is dropped first so every call downloads
// fresh.
func (s *session) obtain(ctx context.Context) (*document.Document, error) {
	if !s.cfg.CacheEnabled {
		_ = s.cache.Clear(s.source)
	}
	return s.cache.Obtain(ctx, s.source)
}

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	sess, err := newSession(loadConfig())
	if err != nil {
		return err
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "specmcp", Version: specmcp.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	sess.registerTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *session) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the endpoints of the API document: method, path, display name, tags. Use offset/limit to paginate through large APIs. Default limit is configurable via SPECMCP_LIST_LIMIT.",
	}, s.handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_endpoints",
		Description: "Search endpoints by relevance. The query is matched case-insensitively against path, operationId, summary, description, and tags; results are ranked by score. Default limit is configurable via SPECMCP_SEARCH_LIMIT.",
	}, s.handleSearchEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_endpoint",
		Description: "Get the full definition of one endpoint by method and path, with every $ref expanded inline. Circular references appear as placeholder objects naming the cycle.",
	}, s.handleGetEndpoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_schema",
		Description: "Get a named schema from the document's schema dictionary (definitions for Swagger 2.0, components/schemas for OpenAPI 3.x), with every $ref expanded inline.",
	}, s.handleGetSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "execute_request",
		Description: "Invoke an endpoint of the live API. Substitutes path parameters, appends query parameters, sends an optional JSON body, and attaches the configured authentication. Returns the response status and body.",
	}, s.handleExecuteRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refresh_spec",
		Description: "Drop the cached copy of the document and download it fresh. Returns a summary of the refreshed document.",
	}, s.handleRefreshSpec)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to the configured list
// limit.
func paginate[T any](items []T, offset, limit, fallback, maxLimit int) []T {
	if limit <= 0 {
		limit = fallback
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
