package view

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/7ntys/chaos-lab/internal/loader"
	"github.com/7ntys/chaos-lab/internal/logging"
	"github.com/7ntys/chaos-lab/internal/menu"
)

// Loader performs a single catalog load. *loader.Client satisfies it.
type Loader interface {
	Load(ctx context.Context) loader.Result
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) loader.Result

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) loader.Result {
	return f(ctx)
}

// Ticket identifies the mount a load was started for.
type Ticket struct {
	generation uint64
}

// Controller owns a view's State across mount and unmount.
//
// Begin marks the view as mounted and hands out a Ticket; Settle applies a
// result only while that same mount is alive. Unmount never aborts an
// in-flight request; late results are simply dropped.
type Controller struct {
	loader Loader
	logger zerolog.Logger

	mu         sync.Mutex
	state      State
	mounted    bool
	generation uint64
	onSettle   func(State)

	grouped menu.Memo
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logging.ComponentLogger(l, "view")
	}
}

// WithSettleHook registers fn to be called, outside the lock, after a result is applied.
func WithSettleHook(fn func(State)) ControllerOption {
	return func(c *Controller) {
		c.onSettle = fn
	}
}

// NewController creates an unmounted controller in the Loading state.
func NewController(l Loader, opts ...ControllerOption) *Controller {
	c := &Controller{
		loader: l,
		logger: zerolog.Nop(),
		state:  Loading(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin mounts the view and returns the ticket for its single load.
// If the view is already mounted it returns the current ticket and false,
// and the caller must not start another load.
func (c *Controller) Begin() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return Ticket{generation: c.generation}, false
	}

	c.generation++
	c.mounted = true
	c.state = Loading()
	c.logger.Debug().Uint64("generation", c.generation).Msg("view mounted")
	return Ticket{generation: c.generation}, true
}

// Settle applies r if t still belongs to the live mount and reports whether it did.
func (c *Controller) Settle(t Ticket, r loader.Result) bool {
	c.mu.Lock()
	if !c.mounted || t.generation != c.generation || !c.state.IsLoading() {
		live := c.mounted
		current := c.generation
		c.mu.Unlock()
		c.logger.Debug().
			Uint64("generation", t.generation).
			Uint64("current_generation", current).
			Bool("mounted", live).
			Msg("discarding stale load result")
		return false
	}

	c.state = c.state.Settle(r)
	settled := c.state
	hook := c.onSettle
	c.mu.Unlock()

	if msg, failed := settled.Error(); failed {
		c.logger.Info().Str("error", msg).Msg("view settled with error")
	} else {
		c.logger.Debug().
			Int("items", len(settled.Items())).
			Int("specials", len(settled.Specials())).
			Msg("view settled")
	}

	if hook != nil {
		hook(settled)
	}
	return true
}

// Load runs the controller's loader for t and settles the result.
func (c *Controller) Load(ctx context.Context, t Ticket) bool {
	return c.Settle(t, c.loader.Load(ctx))
}

// Mount begins a mount and runs its load on a new goroutine. The returned
// channel is closed once the load has settled, whether the result was applied
// or discarded. Mounting an already mounted controller returns a closed channel.
func (c *Controller) Mount(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	ticket, ok := c.Begin()
	if !ok {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		c.Load(ctx, ticket)
	}()
	return done
}

// Unmount tears the view down. Pending results for the current mount will be discarded.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted {
		return
	}
	c.mounted = false
	c.logger.Debug().Uint64("generation", c.generation).Msg("view unmounted")
}

// Mounted reports whether the view is currently mounted.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Grouped returns the category grouping of the current items, rebuilt only
// when the items slice changes.
func (c *Controller) Grouped() menu.Grouped {
	return c.grouped.Get(c.State().Items())
}
