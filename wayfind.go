// Package wayfind provides the public API for the Wayfind navigation
// resolver.
//
// This is the recommended import for most applications:
//
//	import "github.com/wayfind-dev/wayfind"
//
// Usage:
//
//	app, err := wayfind.New(wayfind.Config{
//	    RoutesFS: screensFS,
//	    Fallback: "not-found",
//	    Host:     myHost,
//	})
//	res, err := app.Open(ctx, "/users/42")
//
// The heavy lifting lives in the subpackages: pkg/router holds the
// registry and resolver, pkg/navigator the history stack and host
// boundary, pkg/deeplink the platform URL listener and association
// files. This package ties them together behind one App and re-exports
// the types callers touch every day.
package wayfind

import (
	"github.com/wayfind-dev/wayfind/pkg/navigator"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// =============================================================================
// Route table types (re-export from pkg/router)
// =============================================================================

// Definition declares a route: a stable id, a path pattern and the
// parameter schema.
type Definition = router.Definition

// Schema maps parameter names to their specs.
type Schema = router.Schema

// ParamSpec describes a single route parameter.
type ParamSpec = router.ParamSpec

// Kind identifies the value type of a route parameter.
type Kind = router.Kind

// Parameter kinds.
const (
	KindString = router.KindString
	KindInt    = router.KindInt
	KindEnum   = router.KindEnum
)

// Resolved is the outcome of a successful resolution: a route identity
// plus fully typed parameter values.
type Resolved = router.Resolved

// Params holds resolved parameter values keyed by name.
type Params = router.Params

// Bind copies resolved parameter values into a struct via `param` tags.
//
//	type detailParams struct {
//	    ID int64 `param:"id"`
//	}
//	var p detailParams
//	err := wayfind.Bind(res.Params, &p)
func Bind(p Params, target any) error {
	return router.Bind(p, target)
}

// =============================================================================
// Errors (re-export from pkg/router and pkg/navigator)
// =============================================================================

// Registration errors.
var (
	ErrDuplicateRouteID = router.ErrDuplicateRouteID
	ErrAmbiguousPattern = router.ErrAmbiguousPattern
	ErrInvalidPattern   = router.ErrInvalidPattern
	ErrSchemaMismatch   = router.ErrSchemaMismatch
	ErrRegistryFrozen   = router.ErrRegistryFrozen
)

// Resolution errors.
var (
	ErrMalformedPath = router.ErrMalformedPath
	ErrNotFound      = router.ErrNotFound
	ErrNoHistory     = navigator.ErrNoHistory
)

// MissingParamError reports a required parameter with no value.
type MissingParamError = router.MissingParamError

// ParamTypeMismatchError reports a parameter value that failed schema
// coercion.
type ParamTypeMismatchError = router.ParamTypeMismatchError

// =============================================================================
// Navigation types (re-export from pkg/navigator)
// =============================================================================

// Host is the rendering surface the navigator drives.
type Host = navigator.Host

// HostFunc adapts a function to the Host interface.
type HostFunc = navigator.HostFunc

// Middleware wraps navigations.
type Middleware = navigator.Middleware

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc = navigator.MiddlewareFunc

// Event describes one navigation as it moves through the middleware
// chain.
type Event = navigator.Event

// Entry is one record on the history stack.
type Entry = navigator.Entry

// OpenOption configures a single navigation.
type OpenOption = navigator.OpenOption

// WithReplace replaces the current history entry instead of pushing.
var WithReplace = navigator.WithReplace

// WithParams overrides or supplements route params for a navigation.
var WithParams = navigator.WithParams
