// Package document parses OpenAPI/Swagger documents and projects both
// supported shapes (OAS 2.0 and OAS 3.x) onto a single normalized view:
// title, base URL, endpoint table, and schema dictionary. All later
// lookup and search logic runs against the normalized view, so version
// branching is confined to this package.
package document

import (
	"fmt"
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/specmcp/specmcp/internal/httputil"
	"github.com/specmcp/specmcp/specerrors"
)

// Version discriminates the two supported document shapes.
type Version string

const (
	// VersionV2 is the legacy Swagger 2.0 shape.
	VersionV2 Version = "2.0"
	// VersionV3 is the OpenAPI 3.x shape.
	VersionV3 Version = "3.x"
)

// Endpoint is one HTTP operation of the document's endpoint table.
type Endpoint struct {
	// Method is the lowercase HTTP method key (get, put, post, ...).
	Method string
	// Path is the template path as it appears in the document.
	Path string
	// OperationID is the operation's operationId, if any.
	OperationID string
	// Summary is the operation summary, if any.
	Summary string
	// Description is the operation description, if any.
	Description string
	// Tags lists the operation's tags.
	Tags []string
	// Deprecated reports whether the operation is marked deprecated.
	Deprecated bool

	raw map[string]any
}

// Raw returns the underlying operation object. The returned map is shared
// with the document; callers must not mutate it.
func (e Endpoint) Raw() map[string]any {
	return e.raw
}

// Document is the normalized, in-memory view of one parsed OAS document.
// It is derived per cache refresh and never persisted.
type Document struct {
	// Version is the detected document shape.
	Version Version
	// Title is the document's info.title.
	Title string
	// APIVersion is the document's info.version.
	APIVersion string
	// Description is the document's info.description.
	Description string
	// BaseURL is the derived request base URL: host+scheme+basePath for
	// 2.0 documents, the first server URL for 3.x documents. May be empty
	// when the document does not declare one.
	BaseURL string

	endpoints []Endpoint
	byKey     map[string]int
	schemas   map[string]map[string]any
	raw       map[string]any
}

// Parse decodes an OAS document (YAML or JSON), detects its version, and
// builds the normalized view. It fails only on undecodable content or an
// unrecognized version marker.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	version, err := detectVersion(raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Version: version,
		raw:     raw,
		byKey:   make(map[string]int),
		schemas: make(map[string]map[string]any),
	}
	doc.normalizeInfo()
	doc.normalizeBaseURL()
	doc.normalizeEndpoints()
	doc.normalizeSchemas()
	return doc, nil
}

// detectVersion inspects the version marker fields. A "swagger" field must
// be exactly "2.0"; an "openapi" field must start with "3.".
func detectVersion(raw map[string]any) (Version, error) {
	if marker, ok := raw["swagger"].(string); ok {
		if marker == "2.0" {
			return VersionV2, nil
		}
		return "", &specerrors.VersionError{Marker: marker}
	}
	if marker, ok := raw["openapi"].(string); ok {
		if strings.HasPrefix(marker, "3.") {
			return VersionV3, nil
		}
		return "", &specerrors.VersionError{Marker: marker}
	}
	return "", &specerrors.VersionError{}
}

// Raw returns the decoded document. The returned map is shared with the
// document; callers must not mutate it.
func (d *Document) Raw() map[string]any {
	return d.raw
}

// Endpoints returns every operation in the endpoint table, ordered by path
// and then by method.
func (d *Document) Endpoints() []Endpoint {
	return d.endpoints
}

// Endpoint looks up one operation by method and path. The method is
// matched case-insensitively.
func (d *Document) Endpoint(method, path string) (Endpoint, bool) {
	i, ok := d.byKey[endpointKey(httputil.NormalizeMethod(method), path)]
	if !ok {
		return Endpoint{}, false
	}
	return d.endpoints[i], true
}

// Schema returns the named schema fragment from the schema dictionary
// (definitions for 2.0, components/schemas for 3.x).
func (d *Document) Schema(name string) (map[string]any, bool) {
	s, ok := d.schemas[name]
	return s, ok
}

// SchemaNames returns the sorted names of the schema dictionary.
func (d *Document) SchemaNames() []string {
	names := make([]string, 0, len(d.schemas))
	for name := range d.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaRefPrefix returns the intra-document pointer prefix under which
// named schemas live for this document shape.
func (d *Document) SchemaRefPrefix() string {
	if d.Version == VersionV2 {
		return "#/definitions/"
	}
	return "#/components/schemas/"
}

func endpointKey(method, path string) string {
	return method + " " + path
}

func (d *Document) normalizeInfo() {
	info, _ := d.raw["info"].(map[string]any)
	d.Title = stringField(info, "title")
	d.APIVersion = stringField(info, "version")
	d.Description = stringField(info, "description")
}

func (d *Document) normalizeBaseURL() {
	if d.Version == VersionV2 {
		host := stringField(d.raw, "host")
		if host == "" {
			return
		}
		scheme := "https"
		if schemes, ok := d.raw["schemes"].([]any); ok && len(schemes) > 0 {
			if s, ok := schemes[0].(string); ok && s != "" {
				scheme = s
			}
		}
		d.BaseURL = scheme + "://" + host + stringField(d.raw, "basePath")
		return
	}

	if servers, ok := d.raw["servers"].([]any); ok && len(servers) > 0 {
		if server, ok := servers[0].(map[string]any); ok {
			d.BaseURL = stringField(server, "url")
		}
	}
}

func (d *Document) normalizeEndpoints() {
	paths, ok := d.raw["paths"].(map[string]any)
	if !ok {
		return
	}

	pathKeys := make([]string, 0, len(paths))
	for p := range paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	for _, p := range pathKeys {
		item, ok := paths[p].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httputil.OperationMethods {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			ep := Endpoint{
				Method:      method,
				Path:        p,
				OperationID: stringField(op, "operationId"),
				Summary:     stringField(op, "summary"),
				Description: stringField(op, "description"),
				Tags:        stringSlice(op, "tags"),
				Deprecated:  boolField(op, "deprecated"),
				raw:         op,
			}
			d.byKey[endpointKey(method, p)] = len(d.endpoints)
			d.endpoints = append(d.endpoints, ep)
		}
	}
}

func (d *Document) normalizeSchemas() {
	var dict map[string]any
	if d.Version == VersionV2 {
		dict, _ = d.raw["definitions"].(map[string]any)
	} else if components, ok := d.raw["components"].(map[string]any); ok {
		dict, _ = components["schemas"].(map[string]any)
	}
	for name, fragment := range dict {
		if m, ok := fragment.(map[string]any); ok {
			d.schemas[name] = m
		}
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func stringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
