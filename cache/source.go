package cache

import (
	"net/url"

	"github.com/specmcp/specmcp/specerrors"
)

// LoginFlow describes an HTTP call whose response cookies authenticate
// subsequent document fetches. The captured session cookies are appended
// after any statically configured cookie string.
type LoginFlow struct {
	// URL is the login endpoint.
	URL string
	// Method is the HTTP method; defaults to POST when empty.
	Method string
	// Body is the JSON request body sent to the login endpoint.
	Body string
}

// Source identifies a remote OAS document: a URL plus optional
// authentication material. A Source is immutable for the lifetime of a
// client session.
type Source struct {
	// URL locates the document. Required.
	URL string
	// BearerToken, when set, takes priority over Username/Password.
	BearerToken string
	// Username and Password supply basic auth.
	Username string
	Password string
	// Cookie is a statically configured cookie header value.
	Cookie string
	// Login, when set, is executed before each remote request and its
	// session cookies are merged with Cookie.
	Login *LoginFlow
}

// Validate checks that the source locates a fetchable document.
func (s Source) Validate() error {
	if s.URL == "" {
		return &specerrors.ConfigError{Option: "url", Message: "document URL is required"}
	}
	u, err := url.Parse(s.URL)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return &specerrors.ConfigError{
			Option:  "url",
			Value:   s.URL,
			Message: "must be an absolute http(s) URL",
		}
	}
	if s.Login != nil && s.Login.URL == "" {
		return &specerrors.ConfigError{Option: "login.url", Message: "login flow requires a URL"}
	}
	return nil
}
