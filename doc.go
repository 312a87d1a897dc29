// Package specmcp exposes a remote OpenAPI/Swagger document to MCP
// (Model Context Protocol) clients, letting AI assistants search, inspect,
// and invoke the endpoints the document describes.
//
// The library consists of four primary packages:
//
//   - document: parse and normalize OAS 2.0 and 3.x documents into a
//     single shared view (endpoints, schemas, base URL)
//   - resolver: expand $ref pointers into self-contained schemas with
//     cycle protection
//   - cache: a validator-aware on-disk cache for the remote document,
//     refreshed only when a cheap HEAD check says the remote changed
//   - specerrors: structured error types for programmatic handling
//
// The MCP stdio server lives in cmd/specmcp and internal/mcpserver.
//
// # Quick Start
//
// Obtain a document through the cache and resolve a schema:
//
//	c := cache.New(cache.DefaultDir())
//	doc, err := c.Obtain(ctx, cache.Source{URL: "https://api.example.com/openapi.json"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	user, ok := doc.Schema("User")
//	if ok {
//		expanded := resolver.New().Resolve(doc.Raw(), user)
//		fmt.Println(expanded)
//	}
//
// # Supported Versions
//
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.x: https://spec.openapis.org/oas/v3.0.0.html
package specmcp
