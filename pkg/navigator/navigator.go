// Package navigator is the high-level navigation facade. It turns
// screen intents ("open this path", "go to this route with these
// params", "back") into resolved routes, keeps the history stack, and
// drives the app shell through the Host boundary. A middleware chain
// wraps every navigation, which is where metrics, tracing and dev
// tooling hook in.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// ErrNoHistory reports a Back call with nothing underneath the current
// entry.
var ErrNoHistory = errors.New("history has no previous entry")

// Host is the surface the navigator drives: whatever renders screens.
// MountRoute is called once per successful navigation with the fully
// resolved route. Returning an error aborts the navigation; the
// history stack is left as it was.
type Host interface {
	MountRoute(ctx context.Context, route router.Resolved) error
}

// HostFunc adapts a function to the Host interface.
type HostFunc func(ctx context.Context, route router.Resolved) error

// MountRoute implements Host.
func (f HostFunc) MountRoute(ctx context.Context, route router.Resolved) error {
	return f(ctx, route)
}

// Navigator coordinates resolution, history and the host. It is safe
// for concurrent use.
type Navigator struct {
	registry *router.Registry
	host     Host
	logger   *slog.Logger
	fallback string // route id used when a path resolves to nothing

	mu  sync.RWMutex
	mws []Middleware

	history *history
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithHost sets the screen host the navigator mounts routes on.
func WithHost(h Host) Option {
	return func(n *Navigator) {
		n.host = h
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = l
	}
}

// WithFallback names the route opened when a path matches nothing,
// typically a not-found screen. The route must resolve without
// required params. Resolution failures other than a plain miss are
// never redirected to the fallback.
func WithFallback(routeID string) Option {
	return func(n *Navigator) {
		n.fallback = routeID
	}
}

// New creates a navigator over the given registry.
func New(reg *router.Registry, opts ...Option) *Navigator {
	n := &Navigator{
		registry: reg,
		logger:   slog.Default(),
		history:  newHistory(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.host == nil {
		n.host = HostFunc(func(context.Context, router.Resolved) error { return nil })
	}
	return n
}

// Use appends middleware to the navigation chain. Middleware runs in
// the order added, outermost first.
func (n *Navigator) Use(mw ...Middleware) {
	n.mu.Lock()
	n.mws = append(n.mws, mw...)
	n.mu.Unlock()
}

// Registry returns the underlying route registry.
func (n *Navigator) Registry() *router.Registry {
	return n.registry
}

// OpenOptions configures a single navigation.
type OpenOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Params override or supplement values captured from the path.
	Params map[string]any
}

// OpenOption is a functional option for Open and Go.
type OpenOption func(*OpenOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() OpenOption {
	return func(o *OpenOptions) {
		o.Replace = true
	}
}

// WithParams overrides or supplements route params for this navigation.
func WithParams(params map[string]any) OpenOption {
	return func(o *OpenOptions) {
		o.Params = params
	}
}

// Open resolves path against the registry and navigates to the result.
// A miss falls back to the configured fallback route when one is set;
// every other resolution error is returned as-is.
func (n *Navigator) Open(ctx context.Context, path string, opts ...OpenOption) (router.Resolved, error) {
	var o OpenOptions
	for _, opt := range opts {
		opt(&o)
	}

	ev := &Event{Op: OpOpen, Path: path, Replace: o.Replace, ctx: ctx}
	err := n.run(ev, func() error {
		res, err := n.registry.Resolve(path, router.WithParams(o.Params))
		if err != nil {
			if n.fallback == "" || !errors.Is(err, router.ErrNotFound) {
				return err
			}
			if res, err = n.registry.Make(n.fallback, nil); err != nil {
				return fmt.Errorf("fallback route: %w", err)
			}
		}
		return n.commit(ev, res)
	})
	if err != nil {
		return router.Resolved{}, err
	}
	return *ev.Route, nil
}

// Go navigates to a route by id with typed params, the structured
// counterpart of Open. Params are validated against the route schema
// before anything is mounted.
func (n *Navigator) Go(ctx context.Context, routeID string, params map[string]any, opts ...OpenOption) (router.Resolved, error) {
	var o OpenOptions
	for _, opt := range opts {
		opt(&o)
	}

	res, err := n.registry.Make(routeID, params)
	if err != nil {
		return router.Resolved{}, err
	}
	path, err := n.registry.ToPath(res)
	if err != nil {
		return router.Resolved{}, err
	}

	ev := &Event{Op: OpGo, Path: path, Replace: o.Replace, ctx: ctx}
	err = n.run(ev, func() error {
		return n.commit(ev, res)
	})
	if err != nil {
		return router.Resolved{}, err
	}
	return res, nil
}

// Back re-mounts the previous history entry and drops the current one.
func (n *Navigator) Back(ctx context.Context) (router.Resolved, error) {
	prev, ok := n.history.previous()
	if !ok {
		return router.Resolved{}, ErrNoHistory
	}

	path, err := n.registry.ToPath(prev.Route)
	if err != nil {
		// The route table changed underneath the stack; still navigate,
		// just without a display path.
		path = ""
	}

	ev := &Event{Op: OpBack, Path: path, ctx: ctx}
	err = n.run(ev, func() error {
		if err := n.host.MountRoute(ev.Context(), prev.Route); err != nil {
			return fmt.Errorf("mounting %s: %w", prev.Route.RouteID, err)
		}
		n.history.dropTop()
		ev.Route = &prev.Route
		ev.EntryKey = prev.Key
		ev.Depth = n.history.depth()
		n.logger.Debug("navigated back", "route", prev.Route.RouteID, "depth", ev.Depth)
		return nil
	})
	if err != nil {
		return router.Resolved{}, err
	}
	return prev.Route, nil
}

// Current returns the active route, if any navigation has happened.
func (n *Navigator) Current() (router.Resolved, bool) {
	entry, ok := n.history.current()
	if !ok {
		return router.Resolved{}, false
	}
	return entry.Route, true
}

// Depth returns the history stack depth.
func (n *Navigator) Depth() int {
	return n.history.depth()
}

// History returns a copy of the history stack, oldest first.
func (n *Navigator) History() []Entry {
	return n.history.entries()
}

// commit mounts the resolved route and records it in history. Mount
// errors leave the stack untouched.
func (n *Navigator) commit(ev *Event, res router.Resolved) error {
	if err := n.host.MountRoute(ev.Context(), res); err != nil {
		return fmt.Errorf("mounting %s: %w", res.RouteID, err)
	}

	var entry Entry
	if ev.Replace {
		entry = n.history.replace(res)
	} else {
		entry = n.history.push(res)
	}
	ev.Route = &res
	ev.EntryKey = entry.Key
	ev.Depth = n.history.depth()
	n.logger.Debug("navigated",
		"op", ev.Op, "path", ev.Path, "route", res.RouteID, "depth", ev.Depth)
	return nil
}

// run sends the event through the middleware chain with base at the
// center.
func (n *Navigator) run(ev *Event, base func() error) error {
	n.mu.RLock()
	mws := n.mws
	n.mu.RUnlock()

	handler := base
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], handler
		handler = func() error { return mw.Handle(ev, next) }
	}
	return handler()
}
