// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides the cross-cutting concerns that sit between a request and the
// asset handlers.
//
// # Components
//
//   - Auth: Validates the X-Api-Key header so only the editor frontend can
//     reach the asset endpoints. An empty configured key disables the check.
//   - RayID: Assigns a unique request id (RayID) to every incoming request,
//     injecting it into the context and response headers so refresh and
//     ingestion log lines can be correlated per request.
//
// Both are registered globally in the main application setup.
package middleware
