package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/specmcp/specmcp/cache"
)

// serverConfig holds all configurable MCP server settings.
// Loaded once at startup from SPECMCP_* environment variables.
type serverConfig struct {
	// Document source settings.
	SpecURL     string
	BearerToken string
	Username    string
	Password    string
	Cookie      string
	LoginURL    string
	LoginMethod string
	LoginBody   string

	// Cache settings.
	CacheDir     string
	CacheEnabled bool

	// Tool defaults.
	ListLimit   int
	SearchLimit int
	MaxLimit    int

	// HTTP settings.
	HTTPTimeout     time.Duration
	AllowPrivateIPs bool
}

// loadConfig reads configuration from SPECMCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		SpecURL:         os.Getenv("SPECMCP_SPEC_URL"),
		BearerToken:     os.Getenv("SPECMCP_BEARER_TOKEN"),
		Username:        os.Getenv("SPECMCP_USERNAME"),
		Password:        os.Getenv("SPECMCP_PASSWORD"),
		Cookie:          os.Getenv("SPECMCP_COOKIE"),
		LoginURL:        os.Getenv("SPECMCP_LOGIN_URL"),
		LoginMethod:     os.Getenv("SPECMCP_LOGIN_METHOD"),
		LoginBody:       os.Getenv("SPECMCP_LOGIN_BODY"),
		CacheDir:        envString("SPECMCP_CACHE_DIR", cache.DefaultDir()),
		CacheEnabled:    envBool("SPECMCP_CACHE_ENABLED", true),
		ListLimit:       envInt("SPECMCP_LIST_LIMIT", 100),
		SearchLimit:     envInt("SPECMCP_SEARCH_LIMIT", 20),
		MaxLimit:        envInt("SPECMCP_MAX_LIMIT", 500),
		HTTPTimeout:     envDuration("SPECMCP_HTTP_TIMEOUT", 30*time.Second),
		AllowPrivateIPs: envBool("SPECMCP_ALLOW_PRIVATE_IPS", false),
	}
}

// source assembles the document source from the loaded settings.
func (c *serverConfig) source() cache.Source {
	s := cache.Source{
		URL:         c.SpecURL,
		BearerToken: c.BearerToken,
		Username:    c.Username,
		Password:    c.Password,
		Cookie:      c.Cookie,
	}
	if c.LoginURL != "" {
		s.Login = &cache.LoginFlow{
			URL:    c.LoginURL,
			Method: c.LoginMethod,
			Body:   c.LoginBody,
		}
	}
	return s
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
