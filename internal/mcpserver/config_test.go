package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SPECMCP_SPEC_URL", "SPECMCP_CACHE_ENABLED", "SPECMCP_LIST_LIMIT",
		"SPECMCP_SEARCH_LIMIT", "SPECMCP_HTTP_TIMEOUT", "SPECMCP_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}

	cfg := loadConfig()
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 100, cfg.ListLimit)
	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, 500, cfg.MaxLimit)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.AllowPrivateIPs)
	assert.NotEmpty(t, cfg.CacheDir)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SPECMCP_SPEC_URL", "https://example.com/openapi.json")
	t.Setenv("SPECMCP_BEARER_TOKEN", "tok")
	t.Setenv("SPECMCP_CACHE_ENABLED", "false")
	t.Setenv("SPECMCP_SEARCH_LIMIT", "5")
	t.Setenv("SPECMCP_HTTP_TIMEOUT", "90s")
	t.Setenv("SPECMCP_LOGIN_URL", "https://example.com/login")
	t.Setenv("SPECMCP_LOGIN_BODY", `{"user":"u"}`)

	cfg := loadConfig()
	assert.Equal(t, "https://example.com/openapi.json", cfg.SpecURL)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 90*time.Second, cfg.HTTPTimeout)

	source := cfg.source()
	assert.Equal(t, "tok", source.BearerToken)
	if assert.NotNil(t, source.Login) {
		assert.Equal(t, "https://example.com/login", source.Login.URL)
		assert.Equal(t, `{"user":"u"}`, source.Login.Body)
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SPECMCP_CACHE_ENABLED", "maybe")
	t.Setenv("SPECMCP_SEARCH_LIMIT", "-3")
	t.Setenv("SPECMCP_HTTP_TIMEOUT", "soon")

	cfg := loadConfig()
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestSourceWithoutLoginFlow(t *testing.T) {
	cfg := &serverConfig{SpecURL: "https://example.com/spec"}
	assert.Nil(t, cfg.source().Login)
}
