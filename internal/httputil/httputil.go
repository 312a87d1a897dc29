// Package httputil provides HTTP-related constants and helpers shared by
// the document model and the request executor.
package httputil

import "strings"

// HTTP method constants as they appear as operation keys in OAS path items.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// OperationMethods lists the eight HTTP-method keys a path item may carry,
// in the order operations are reported.
var OperationMethods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

// operationMethodSet is the lookup form of OperationMethods.
var operationMethodSet = func() map[string]bool {
	set := make(map[string]bool, len(OperationMethods))
	for _, m := range OperationMethods {
		set[m] = true
	}
	return set
}()

// IsOperationMethod reports whether key is one of the eight HTTP-method
// keys, regardless of case.
func IsOperationMethod(key string) bool {
	return operationMethodSet[strings.ToLower(key)]
}

// NormalizeMethod lowercases a method name so user-provided values like
// "GET" match OAS operation keys.
func NormalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}
