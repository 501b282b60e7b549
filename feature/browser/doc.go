// Package browser implements the asset browser feature: the serving
// surface of the asset subsystem.
//
// # Components
//
//   - Service: ingestion (busy-refusing file routing), clean-all with
//     confirmation, snapshot persistence into the asset bucket, and the
//     display filter fan-out.
//   - Handler: exposes the HTTP endpoints under /assets.
//   - Feature: registers the feature with the application loader.
//
// # HTTP Endpoints
//
//   - GET  /assets           : items by handler title
//   - GET  /assets/handlers  : registry descriptors
//   - POST /assets/refresh   : trigger a (possibly coalesced) refresh pass
//   - POST /assets/ingest    : multipart file ingestion
//   - POST /assets/clean     : prune unused assets
//   - GET  /assets/snapshot  : current snapshot
//   - POST /assets/snapshot  : persist snapshot to the bucket
//   - POST /assets/restore   : restore persisted snapshot
//   - PUT  /assets/filter    : display-only search filter
package browser
