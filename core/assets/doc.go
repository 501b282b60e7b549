// Package assets contains the core of the asset subsystem: the handler
// contract, the category registry and the refresh coordinator.
//
// # Registry
//
// The Registry is the append-only set of asset category descriptors
// (textures, audio, scripts, ...). Each descriptor gets a runtime-unique
// generated id at registration and carries the live handler instance while
// the category is mounted. The registry is constructed at startup and
// passed explicitly wherever it is needed; there is no package-level
// global.
//
// # Coordinator
//
// The Coordinator is a small state machine (Idle, Refreshing, Refreshing
// with a pending rerun) that serializes refresh passes:
//
//   - Handlers are refreshed strictly sequentially, in registration order,
//     so aggregate progress stays monotonic.
//   - A RefreshAll arriving while a pass is running coalesces into a single
//     pending follow-up pass; the boolean flag guarantees at most one extra
//     pass regardless of how many requests arrived.
//   - A failing or panicking handler is logged and skipped; it never aborts
//     the pass for its siblings.
//
// # Snapshot
//
// Snapshot/Restore serialize per-handler item lists (id, key, base64,
// style only) for embedding in the project-save document.
package assets
