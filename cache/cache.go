// Package cache keeps a local file-per-document copy of remote OAS
// documents. Obtain serves the cached copy whenever a cheap HEAD check
// confirms the remote's validator tokens (etag, last-modified) are
// unchanged, downloads fresh otherwise, and falls back to the last known
// good copy when the remote fails mid-refresh. Staleness decisions are
// conservative: any ambiguity means re-fetch.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/specmcp/specmcp"
	"github.com/specmcp/specmcp/document"
	"github.com/specmcp/specmcp/internal/fileutil"
	"github.com/specmcp/specmcp/specerrors"
)

// entryExt is the on-disk extension for cache entries; entries are
// serialized as JSON.
const entryExt = ".json"

// Doer is the HTTP capability the cache depends on. *http.Client
// satisfies it; the MCP server injects an SSRF-safe client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Entry is the persisted record for one document source: the validator
// tokens observed at capture time plus the full document content. Entries
// are replaced wholesale on refresh, never partially updated.
type Entry struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"lastModified,omitempty"`
	FetchedAt    time.Time `json:"fetchedAt"`
	Content      string    `json:"content"`
}

// Cache is an on-disk document cache. It holds no cross-request state:
// two concurrent Obtain calls for the same source may both refresh, and
// the last write wins.
type Cache struct {
	dir    string
	client Doer
	logger document.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient sets the HTTP capability used for all remote requests.
func WithHTTPClient(client Doer) Option {
	return func(c *Cache) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger document.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a cache rooted at dir. The directory is created lazily on
// first write.
func New(dir string, opts ...Option) *Cache {
	c := &Cache{
		dir:    dir,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: document.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultDir returns the process-wide cache directory: the user cache
// directory when available, the system temp directory otherwise.
func DefaultDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "specmcp")
	}
	return filepath.Join(os.TempDir(), "specmcp")
}

// Key returns the deterministic cache key for a document URL: the
// hex-encoded SHA-256 of the URL. At most one entry exists per URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) entryPath(url string) string {
	return filepath.Join(c.dir, Key(url)+entryExt)
}

// Obtain returns the current document for source. A cached entry is
// served when the remote's validators confirm it is current; otherwise the
// document is downloaded fresh and the entry replaced. When a refresh
// fails but an entry exists, the previous entry is served instead of an
// error: cache presence converts a remote outage into last-known-good.
func (c *Cache) Obtain(ctx context.Context, source Source) (*document.Document, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}

	entry, ok := c.readEntry(source.URL)
	if !ok {
		fresh, err := c.fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		c.writeEntry(fresh)
		return document.Parse([]byte(fresh.Content))
	}

	if c.isFresh(ctx, source, entry) {
		c.logger.Debug("cache fresh", "url", source.URL)
		return document.Parse([]byte(entry.Content))
	}

	fresh, err := c.fetch(ctx, source)
	if err != nil {
		// Refresh fallback: never fail while a previous entry exists.
		c.logger.Warn("refresh failed, serving cached document", "url", source.URL, "error", err)
		return document.Parse([]byte(entry.Content))
	}
	c.writeEntry(fresh)
	return document.Parse([]byte(fresh.Content))
}

// Clear deletes the entry for one source. Deleting an absent entry is a
// no-op.
func (c *Cache) Clear(source Source) error {
	err := os.Remove(c.entryPath(source.URL))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ClearAll deletes every entry in the cache directory. Per-file deletion
// races are ignored.
func (c *Cache) ClearAll() error {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), entryExt) {
			continue
		}
		_ = os.Remove(filepath.Join(c.dir, f.Name()))
	}
	return nil
}

// isFresh runs the lightweight freshness check: a HEAD request carrying
// the same auth material as a full fetch. Every failure mode (transport
// error, method unsupported, error status, missing validators) reports
// stale; freshness must be positively confirmed.
func (c *Cache) isFresh(ctx context.Context, source Source, entry *Entry) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, source.URL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", specmcp.UserAgent())
	c.ApplyAuth(ctx, req, source)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("freshness check failed", "url", source.URL, "error", err)
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Debug("freshness check inconclusive", "url", source.URL, "status", resp.StatusCode)
		return false
	}

	etag := resp.Header.Get("ETag")
	lastModified := resp.Header.Get("Last-Modified")
	if etag == "" && lastModified == "" {
		// No validators to compare against: assume stale.
		return false
	}

	if etag != entry.ETag {
		return false
	}
	if etag == "" && entry.ETag == "" && lastModified != entry.LastModified {
		return false
	}
	return true
}

// fetch performs the full document download and captures the response's
// validator tokens for the new entry.
func (c *Cache) fetch(ctx context.Context, source Source) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, &specerrors.FetchError{URL: source.URL, Cause: err}
	}
	req.Header.Set("User-Agent", specmcp.UserAgent())
	c.ApplyAuth(ctx, req, source)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &specerrors.FetchError{URL: source.URL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &specerrors.FetchError{
			URL:        source.URL,
			StatusCode: resp.StatusCode,
			Message:    "unexpected status",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &specerrors.FetchError{URL: source.URL, Message: "reading body", Cause: err}
	}

	return &Entry{
		URL:          source.URL,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
		FetchedAt:    time.Now().UTC(),
		Content:      string(body),
	}, nil
}

// readEntry loads the entry for url. Missing or undecodable files report
// no entry; a corrupt entry is indistinguishable from an absent one.
func (c *Cache) readEntry(url string) (*Entry, bool) {
	data, err := os.ReadFile(c.entryPath(url))
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("discarding corrupt cache entry", "url", url, "error", err)
		return nil, false
	}
	return &entry, true
}

// writeEntry persists an entry, creating the cache directory if needed.
// Persistence failures are logged, not raised: the document was already
// fetched and can still be served this session.
func (c *Cache) writeEntry(entry *Entry) {
	if err := os.MkdirAll(c.dir, fileutil.OwnerFullAccess); err != nil {
		c.logger.Warn("creating cache dir failed", "dir", c.dir, "error", err)
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("encoding cache entry failed", "url", entry.URL, "error", err)
		return
	}
	if err := os.WriteFile(c.entryPath(entry.URL), data, fileutil.OwnerReadWrite); err != nil {
		c.logger.Warn("writing cache entry failed", "url", entry.URL, "error", err)
	}
}
