package assets

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy is returned when a mutating request arrives while another
// operation holds the asset subsystem. The request is dropped, never queued.
var ErrBusy = errors.New("asset subsystem busy, retry later")

// Item is a single asset entry. It is owned exclusively by its Handler;
// the coordinator only reads item lists and replaces them wholesale.
type Item struct {
	ID     string            `json:"id"`
	Key    string            `json:"key"`
	Base64 string            `json:"base64,omitempty"`
	Style  map[string]string `json:"style,omitempty"`
}

// File is a dropped or programmatically supplied file routed to handlers
// during ingestion. Every handler decides for itself which files it wants.
type File struct {
	Name string
	Data []byte
}

// Scope narrows a refresh to a single object within a handler.
// Object-scoped refreshes are considered lightweight and suppress the
// aggregate progress task.
type Scope struct {
	Key string
}

// UpdateFunc receives fractional progress from a handler while its own
// refresh is running, e.g. per-item preview loading.
type UpdateFunc func(loaded, total int)

// Handler is one pluggable asset category (textures, audio, scripts, ...).
// Implementations must be safe for use from the single coordinating flow;
// item lists are never mutated from two passes at once because passes are
// strictly serialized by the Coordinator.
type Handler interface {
	// Items returns the handler's current item list.
	Items() []Item
	// ReplaceItems replaces the item list wholesale. Called by the
	// coordinator for force-clears and by the registry on restore.
	ReplaceItems(items []Item)
	// Refresh rebuilds (or, with a scope, partially updates) the item list.
	Refresh(ctx context.Context, scope *Scope) error
	// OnUpdate subscribes fn to fractional refresh progress. The returned
	// cancel removes the subscription; it is safe to call more than once.
	OnUpdate(fn UpdateFunc) (cancel func())
}

// Cleaner is implemented by handlers that can prune unused or broken assets.
type Cleaner interface {
	Clean(ctx context.Context) error
}

// DropTarget is implemented by handlers that accept dropped files.
type DropTarget interface {
	OnDropFiles(ctx context.Context, files []File) error
}

// Filterable is implemented by handlers with a display-only search filter.
// Setting a filter must never trigger a refresh.
type Filterable interface {
	SetFilter(text string)
}

// Confirmer is the confirmation dialog collaborator awaited before a
// destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// AutoConfirm approves every prompt. Used by non-interactive surfaces.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(ctx context.Context, message string) (bool, error) {
	return true, nil
}

// Updates implements the OnUpdate observable. Handlers embed it and call
// Publish from their refresh path.
type Updates struct {
	mu   sync.Mutex
	next int
	subs map[int]UpdateFunc
}

// OnUpdate registers fn and returns its cancel.
func (u *Updates) OnUpdate(fn UpdateFunc) (cancel func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.subs == nil {
		u.subs = make(map[int]UpdateFunc)
	}
	id := u.next
	u.next++
	u.subs[id] = fn
	return func() {
		u.mu.Lock()
		delete(u.subs, id)
		u.mu.Unlock()
	}
}

// Publish fans the current fraction out to all subscribers.
func (u *Updates) Publish(loaded, total int) {
	u.mu.Lock()
	fns := make([]UpdateFunc, 0, len(u.subs))
	for _, fn := range u.subs {
		fns = append(fns, fn)
	}
	u.mu.Unlock()

	for _, fn := range fns {
		fn(loaded, total)
	}
}
