package assets

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// RefreshOptions narrows a single refresh pass.
type RefreshOptions struct {
	// Target restricts the pass to the descriptor with this identifier.
	// Empty refreshes every handler.
	Target string
	// Scope performs an object-scoped refresh. Suppresses the aggregate
	// progress task.
	Scope *Scope
	// Force clears each matching handler's item list immediately before
	// its refresh, forcing a full rebuild.
	Force bool
}

// Coordinator serializes refresh passes over the registry.
//
// At most one pass executes at a time. A RefreshAll arriving while a pass
// is in flight coalesces: it sets a boolean pending-rerun flag and returns
// immediately. When the running pass finishes, the flag buys exactly one
// extra full, unfiltered, unforced pass no matter how many requests arrived
// in the meantime.
type Coordinator struct {
	registry *Registry
	sink     ProgressSink
	logger   *zap.Logger

	mu           sync.Mutex
	inFlight     bool
	pendingRerun bool
}

// NewCoordinator creates a coordinator over the given registry. A nil sink
// disables progress feedback.
func NewCoordinator(registry *Registry, sink ProgressSink, logger *zap.Logger) *Coordinator {
	if sink == nil {
		sink = NopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{registry: registry, sink: sink, logger: logger}
}

// InFlight reports whether a refresh pass is currently executing.
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// RefreshAll refreshes every matching live handler in registration order,
// strictly sequentially. It returns true once the pass (and any coalesced
// follow-up pass) has completed, or false immediately if the request was
// coalesced into an already running pass.
func (c *Coordinator) RefreshAll(ctx context.Context, opts RefreshOptions) bool {
	c.mu.Lock()
	if c.inFlight {
		// Coalesce: guarantee one more full pass, drop this request's
		// own target and force flags.
		c.pendingRerun = true
		c.mu.Unlock()
		return false
	}
	c.inFlight = true
	c.mu.Unlock()

	for {
		c.runPass(ctx, opts)

		c.mu.Lock()
		if c.pendingRerun {
			c.pendingRerun = false
			c.mu.Unlock()
			opts = RefreshOptions{}
			continue
		}
		c.inFlight = false
		c.mu.Unlock()
		return true
	}
}

// ForceRefresh clears matching handlers' item lists and refreshes them.
func (c *Coordinator) ForceRefresh(ctx context.Context, target string) bool {
	return c.RefreshAll(ctx, RefreshOptions{Target: target, Force: true})
}

func (c *Coordinator) runPass(ctx context.Context, opts RefreshOptions) {
	descriptors := c.registry.Descriptors()

	var task ProgressTask
	if opts.Scope == nil {
		task = c.sink.Open(float64(len(descriptors)), "Refreshing assets")
	}

	for i, d := range descriptors {
		if opts.Target != "" && d.Identifier != opts.Target {
			continue
		}
		h := d.Instance()
		if h == nil {
			continue
		}
		if opts.Force {
			h.ReplaceItems(nil)
		}

		c.refreshOne(ctx, d, h, opts.Scope, task, i)

		if task != nil {
			task.Update(float64(i+1), d.Title)
		}
	}

	if task != nil {
		task.Close(0)
	}
}

// refreshOne runs a single handler's refresh with failure isolation: an
// error or panic is logged and the pass moves on to the next handler.
// While the refresh runs, the handler's update observable feeds fractional
// progress into the aggregate task; the subscription is dropped on every
// exit path.
func (c *Coordinator) refreshOne(ctx context.Context, d *Descriptor, h Handler, scope *Scope, task ProgressTask, index int) {
	if task != nil {
		cancel := h.OnUpdate(func(loaded, total int) {
			if total <= 0 {
				return
			}
			task.Update(float64(index)+float64(loaded)/float64(total), d.Title)
		})
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("Asset handler panicked during refresh",
				zap.String("handler", d.Title),
				zap.Any("panic", r))
		}
	}()

	if err := h.Refresh(ctx, scope); err != nil {
		c.logger.Warn("Asset handler refresh failed",
			zap.String("handler", d.Title),
			zap.Error(err))
	}
}
