// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: Accepts either the static API key (X-API-Key) or an HS256 bearer
//     token whose "roles" claim lists the granted scopes. RequireScope guards
//     individual routes with the "read" or "write" scope.
//   - rayid: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// These middleware components are registered globally or per-route group
// in cmd/start.go.
package middleware
