package assets

import (
	"sync"

	"github.com/google/uuid"
)

// Descriptor describes one registered asset category. Registration data is
// immutable once created; only the live instance changes as the hosting
// surface mounts and unmounts the category.
type Descriptor struct {
	// Title is the user-facing name. Not validated for uniqueness; the
	// last registration wins in title-keyed lookups.
	Title string
	// Identifier is the stable category key ("textures", "scripts", ...).
	Identifier string
	// New constructs a fresh handler for this category.
	New func() Handler

	generatedID string

	mu       sync.RWMutex
	instance Handler
}

// GeneratedID returns the runtime-unique id assigned at registration.
func (d *Descriptor) GeneratedID() string { return d.generatedID }

// Instance returns the currently mounted handler, or nil.
func (d *Descriptor) Instance() Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.instance
}

func (d *Descriptor) setInstance(h Handler) {
	d.mu.Lock()
	d.instance = h
	d.mu.Unlock()
}

// Registry is the append-only set of asset category descriptors. It lives
// for the application's lifetime and is passed explicitly to the
// coordinator and the serving surface; descriptors are never removed.
type Registry struct {
	mu          sync.RWMutex
	descriptors []*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register assigns a fresh generated id to d and appends it. The returned
// descriptor is the registry's own entry.
func (r *Registry) Register(d Descriptor) *Descriptor {
	entry := &Descriptor{
		Title:       d.Title,
		Identifier:  d.Identifier,
		New:         d.New,
		generatedID: uuid.NewString(),
	}
	r.mu.Lock()
	r.descriptors = append(r.descriptors, entry)
	r.mu.Unlock()
	return entry
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Live returns the descriptors that currently have a mounted handler,
// in registration order.
func (r *Registry) Live() []*Descriptor {
	var out []*Descriptor
	for _, d := range r.Descriptors() {
		if d.Instance() != nil {
			out = append(out, d)
		}
	}
	return out
}

// LookupByIdentifier returns the first descriptor with the given
// identifier, or nil.
func (r *Registry) LookupByIdentifier(identifier string) *Descriptor {
	for _, d := range r.Descriptors() {
		if d.Identifier == identifier {
			return d
		}
	}
	return nil
}

// LookupByTitle returns the descriptor with the given title. With duplicate
// titles the last registration wins.
func (r *Registry) LookupByTitle(title string) *Descriptor {
	ds := r.Descriptors()
	for i := len(ds) - 1; i >= 0; i-- {
		if ds[i].Title == title {
			return ds[i]
		}
	}
	return nil
}

// Mount attaches a live handler to the descriptor with the given
// identifier. Unknown identifiers are ignored.
func (r *Registry) Mount(identifier string, h Handler) {
	if d := r.LookupByIdentifier(identifier); d != nil {
		d.setInstance(h)
	}
}

// Unmount detaches the live handler, if any.
func (r *Registry) Unmount(identifier string) {
	if d := r.LookupByIdentifier(identifier); d != nil {
		d.setInstance(nil)
	}
}

// MountAll constructs and mounts a handler for every descriptor that has a
// constructor and no live instance yet.
func (r *Registry) MountAll() {
	for _, d := range r.Descriptors() {
		if d.New != nil && d.Instance() == nil {
			d.setInstance(d.New())
		}
	}
}
