// Package resolver expands $ref pointers in schema fragments into
// self-contained structures. Resolution is a total function: circular or
// unresolvable references degrade to placeholder or original fragments
// instead of failing, so callers never have to handle resolution errors.
package resolver

import (
	"strconv"
	"strings"

	"github.com/specmcp/specmcp/document"
	"github.com/specmcp/specmcp/specerrors"
)

// localRefPrefix is the only supported reference form: an intra-document
// JSON Pointer. Anything else (external files, URLs) is rejected.
const localRefPrefix = "#/"

// Resolver expands references against one document. The zero value is not
// usable; construct with New or NewWithLogger.
type Resolver struct {
	logger document.Logger
}

// New creates a resolver that discards diagnostics.
func New() *Resolver {
	return &Resolver{logger: document.NopLogger{}}
}

// NewWithLogger creates a resolver that reports unresolvable references
// through the given logger. A nil logger disables diagnostics.
func NewWithLogger(logger document.Logger) *Resolver {
	if logger == nil {
		return New()
	}
	return &Resolver{logger: logger}
}

// Resolve returns a copy of fragment with every reference substituted by
// its target, recursively. Unresolvable references are returned as-is and
// circular references become placeholder fragments naming the cycle; the
// call itself never fails. The root document is never mutated.
func (r *Resolver) Resolve(root, fragment map[string]any) map[string]any {
	if fragment == nil {
		return nil
	}
	return r.resolve(root, fragment, map[string]bool{})
}

// resolve carries the visited-pointer set for one traversal branch. The
// set accumulates along a single reference chain so cycles of any length
// are caught, but each fan-out into a sibling branch receives its own
// copy: cycle state from one property must not suppress resolution of
// another property referencing the same target.
func (r *Resolver) resolve(root, fragment map[string]any, visited map[string]bool) map[string]any {
	if ref, ok := fragment["$ref"].(string); ok {
		return r.resolveRef(root, fragment, ref, visited)
	}

	out := shallowCopy(fragment)

	if props, ok := out["properties"].(map[string]any); ok {
		resolved := make(map[string]any, len(props))
		for name, prop := range props {
			if m, ok := prop.(map[string]any); ok {
				resolved[name] = r.resolve(root, m, copyVisited(visited))
			} else {
				resolved[name] = prop
			}
		}
		out["properties"] = resolved
	}

	switch items := out["items"].(type) {
	case map[string]any:
		out["items"] = r.resolve(root, items, copyVisited(visited))
	case []any:
		out["items"] = r.resolveSlice(root, items, visited)
	}

	// additionalProperties may also be a boolean; only fragments recurse.
	if extra, ok := out["additionalProperties"].(map[string]any); ok {
		out["additionalProperties"] = r.resolve(root, extra, copyVisited(visited))
	}

	for _, keyword := range []string{"allOf", "oneOf", "anyOf"} {
		if members, ok := out[keyword].([]any); ok {
			out[keyword] = r.resolveSlice(root, members, visited)
		}
	}

	if not, ok := out["not"].(map[string]any); ok {
		out["not"] = r.resolve(root, not, copyVisited(visited))
	}

	return out
}

// resolveRef substitutes one reference: walk the pointer, merge sibling
// keywords over the target (siblings win on collision, matching permissive
// OpenAPI tooling), then keep resolving inside the merged result.
func (r *Resolver) resolveRef(root, fragment map[string]any, ref string, visited map[string]bool) map[string]any {
	if visited[ref] {
		return circularPlaceholder(ref)
	}

	target, err := walkPointer(root, ref)
	if err != nil {
		r.logger.Warn("unresolvable reference", "ref", ref, "error", err)
		return shallowCopy(fragment)
	}
	targetMap, ok := target.(map[string]any)
	if !ok {
		r.logger.Warn("reference target is not an object", "ref", ref)
		return shallowCopy(fragment)
	}

	merged := shallowCopy(targetMap)
	for key, value := range fragment {
		if key != "$ref" {
			merged[key] = value
		}
	}

	branch := copyVisited(visited)
	branch[ref] = true
	return r.resolve(root, merged, branch)
}

// resolveSlice resolves each fragment member of an ordered sequence, each
// in its own branch of the visited set.
func (r *Resolver) resolveSlice(root map[string]any, members []any, visited map[string]bool) []any {
	out := make([]any, len(members))
	for i, member := range members {
		if m, ok := member.(map[string]any); ok {
			out[i] = r.resolve(root, m, copyVisited(visited))
		} else {
			out[i] = member
		}
	}
	return out
}

// circularPlaceholder is the fragment emitted in place of a reference that
// is already on the current resolution path.
func circularPlaceholder(ref string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "circular reference to " + ref,
	}
}

// walkPointer resolves an intra-document JSON Pointer segment by segment.
// Only references starting with "#/" are supported; anything else is an
// external reference this system rejects.
func walkPointer(root map[string]any, ref string) (any, error) {
	if !strings.HasPrefix(ref, localRefPrefix) {
		return nil, &specerrors.ReferenceError{Ref: ref, IsExternal: true}
	}

	segments := strings.Split(strings.TrimPrefix(ref, localRefPrefix), "/")
	current := any(root)
	for i, segment := range segments {
		segment = unescapePointerToken(segment)

		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, &specerrors.ReferenceError{
					Ref:     ref,
					Message: "missing key: " + segment,
				}
			}
			current = next

		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, &specerrors.ReferenceError{
					Ref:     ref,
					Message: "invalid array index: " + segment,
				}
			}
			current = node[index]

		default:
			return nil, &specerrors.ReferenceError{
				Ref:     ref,
				Message: "cannot traverse into scalar at segment " + strings.Join(segments[:i], "/"),
			}
		}
	}
	return current, nil
}

// unescapePointerToken unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

func shallowCopy(fragment map[string]any) map[string]any {
	out := make(map[string]any, len(fragment))
	for key, value := range fragment {
		out[key] = value
	}
	return out
}

func copyVisited(visited map[string]bool) map[string]bool {
	out := make(map[string]bool, len(visited)+1)
	for ref := range visited {
		out[ref] = true
	}
	return out
}
