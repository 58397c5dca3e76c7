package navigator

import (
	"context"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Navigation operations as reported on Event.Op.
const (
	OpOpen = "open"
	OpGo   = "go"
	OpBack = "back"
)

// Event describes one navigation as it moves through the middleware
// chain. Path and Op are set before the chain runs; Route, EntryKey
// and Depth are filled in once the navigation commits, so middleware
// reads them after calling next.
type Event struct {
	// Op is the operation, one of OpOpen, OpGo or OpBack.
	Op string

	// Path is the canonical path being navigated to. Empty for a Back
	// whose target can no longer be rendered as a path.
	Path string

	// Replace reports whether this navigation replaces the current
	// history entry instead of pushing.
	Replace bool

	// Route is the resolved route. Nil until the navigation commits.
	Route *router.Resolved

	// EntryKey is the history entry key for the committed navigation.
	EntryKey string

	// Depth is the history depth after the navigation committed.
	Depth int

	ctx context.Context
}

// Context returns the context the navigation was started with.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// SetContext replaces the context carried by the event. Middleware uses
// this to propagate deadlines or trace spans to everything downstream,
// including the host mount.
func (e *Event) SetContext(ctx context.Context) {
	e.ctx = ctx
}

// Middleware wraps navigations. Call next to continue the chain;
// returning without calling it cancels the navigation. The error from
// next is the navigation outcome, which middleware may observe or
// replace.
type Middleware interface {
	Handle(ev *Event, next func() error) error
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(ev *Event, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ev *Event, next func() error) error {
	return f(ev, next)
}
