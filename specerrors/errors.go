// Package specerrors provides structured error types for specmcp.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - FetchError: a full document fetch failed with no cache fallback
//   - VersionError: the document carries no recognizable version marker
//   - ReferenceError: $ref resolution failures, circular or external refs
//   - ConfigError: invalid document-source configuration
//
// # Usage with errors.Is
//
//	doc, err := c.Obtain(ctx, source)
//	if err != nil {
//	    if errors.Is(err, specerrors.ErrFetch) {
//	        // Remote unreachable and nothing cached
//	    }
//	}
package specerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrFetch indicates a full document fetch failed.
	ErrFetch = errors.New("fetch error")

	// ErrUnknownVersion indicates the document version could not be determined.
	ErrUnknownVersion = errors.New("unknown spec version")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrExternalReference indicates a $ref pointing outside the document.
	ErrExternalReference = errors.New("external reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// FetchError represents a failed document fetch with no usable cache
// fallback. It carries the HTTP status when the remote answered and the
// transport error when it did not.
type FetchError struct {
	// URL is the document URL that failed to fetch
	URL string
	// StatusCode is the HTTP status returned (0 for transport failures)
	StatusCode int
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FetchError) Error() string {
	msg := "fetch error"
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// VersionError represents a document that carries neither a Swagger 2.0
// marker nor an OpenAPI 3.x marker.
type VersionError struct {
	// Marker is the raw version value found, if any
	Marker string
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	if e.Marker == "" {
		return "unknown spec version: document has neither swagger nor openapi field"
	}
	return fmt.Sprintf("unknown spec version: %q", e.Marker)
}

// Is reports whether target matches this error type.
func (e *VersionError) Is(target error) bool {
	return target == ErrUnknownVersion
}

// ReferenceError represents a failure to resolve a $ref.
// This includes missing references, circular references, and external
// references, which this system does not support.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// IsExternal is true if the $ref points outside the current document
	IsExternal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	} else if e.IsExternal {
		msg = "external reference not supported"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference or ErrExternalReference
// when the corresponding flags are set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	if target == ErrCircularReference && e.IsCircular {
		return true
	}
	if target == ErrExternalReference && e.IsExternal {
		return true
	}
	return false
}

// ConfigError represents an invalid configuration or input.
// This includes missing required settings and conflicting auth material.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
