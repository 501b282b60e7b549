// Package textures implements the texture asset category.
//
// Items mirror the image objects stored under the texture prefix of the
// asset bucket. Objects small enough are inlined as base64 previews during
// refresh; per-item loading progress is published through the handler's
// update observable so the coordinator can report fractional progress.
//
// The handler implements the optional DropTarget, Cleaner and Filterable
// capabilities: dropped image files are uploaded to the prefix, Clean
// prunes objects that can never back a texture item, and the filter is a
// display-only search string.
package textures
