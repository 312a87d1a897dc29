package cache

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/specmcp/specmcp"
)

// ApplyAuth attaches the source's authentication material to req. The
// same precedence applies to every outbound request (freshness check,
// full fetch, and endpoint invocation): bearer token over basic auth,
// with the merged cookie header attached regardless of the primary
// scheme. A configured login flow runs first; its failure only costs its
// cookies, never the request itself.
func (c *Cache) ApplyAuth(ctx context.Context, req *http.Request, source Source) {
	switch {
	case source.BearerToken != "":
		req.Header.Set("Authorization", "Bearer "+source.BearerToken)
	case source.Username != "" || source.Password != "":
		req.SetBasicAuth(source.Username, source.Password)
	}

	cookie := source.Cookie
	if source.Login != nil {
		if session := c.login(ctx, source.Login); session != "" {
			if cookie != "" {
				cookie += "; " + session
			} else {
				cookie = session
			}
		}
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
}

// login executes the login-flow request and returns the session cookies
// from its response as a cookie header value, or "" when the flow fails.
func (c *Cache) login(ctx context.Context, flow *LoginFlow) string {
	method := flow.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, flow.URL, strings.NewReader(flow.Body))
	if err != nil {
		c.logger.Warn("login flow request invalid", "url", flow.URL, "error", err)
		return ""
	}
	req.Header.Set("User-Agent", specmcp.UserAgent())
	if flow.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("login flow failed", "url", flow.URL, "error", err)
		return ""
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("login flow rejected", "url", flow.URL, "status", resp.StatusCode)
		return ""
	}

	pairs := make([]string, 0, len(resp.Cookies()))
	for _, cookie := range resp.Cookies() {
		pairs = append(pairs, cookie.Name+"="+cookie.Value)
	}
	return strings.Join(pairs, "; ")
}
