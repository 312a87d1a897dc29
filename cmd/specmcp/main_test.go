package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"srve", "serve"},
		{"sreve", "serve"},
		{"fetc", "fetch"},
		{"fletch", "fetch"},
		{"clear-cach", "clear-cache"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"clearcacheall", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := suggestCommand(tt.input)
			if got != tt.expected {
				t.Errorf("suggestCommand(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

const cliTestSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "CLI Test API", "version": "2.1.0"},
  "servers": [{"url": "https://api.example.com/v1"}],
  "paths": {
    "/items": {
      "get": {"operationId": "listItems", "summary": "List items", "responses": {"200": {"description": "ok"}}}
    }
  }
}`

func TestHandleFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, cliTestSpec)
	}))
	defer srv.Close()

	dir := t.TempDir()
	err := handleFetch([]string{"-url", srv.URL, "-cache-dir", dir})
	require.NoError(t, err)

	// The fetch went through the cache, so an entry must now exist.
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHandleFetchMissingURL(t *testing.T) {
	err := handleFetch([]string{"-cache-dir", t.TempDir()})
	require.Error(t, err)
}

func TestHandleClearCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deadbeef.json"), []byte("{}"), 0o600))

	err := handleClearCache([]string{"-cache-dir", dir})
	require.NoError(t, err)

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
