// Package scripts implements the visual-script graph asset category.
//
// Graph documents live in the project database rather than object storage;
// each item's payload is the base64-encoded node-graph JSON. Dropped
// .graph/.json files are upserted by base name, and Clean prunes graphs
// with an empty source.
//
// The category is only mounted when the project database is available.
package scripts
