package navtest

import (
	"reflect"
	"testing"

	"github.com/wayfind-dev/wayfind"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Table is the part of a route registry round-trip assertions need.
// *router.Registry satisfies it.
type Table interface {
	Resolve(path string, opts ...router.ResolveOption) (router.Resolved, error)
	PathFor(id string, params map[string]any) (string, error)
}

// ExpectRoute asserts that a resolution landed on the given route id.
//
// Example:
//
//	navtest.ExpectRoute(t, res, "user-detail")
func ExpectRoute(tb testing.TB, res wayfind.Resolved, wantID string) {
	tb.Helper()
	if res.RouteID != wantID {
		tb.Errorf("route = %q, want %q", res.RouteID, wantID)
	}
}

// ExpectParam asserts a resolved param value. Int params resolve to
// int64, so pass int64(42), not 42.
//
// Example:
//
//	navtest.ExpectParam(t, res, "id", int64(42))
func ExpectParam(tb testing.TB, res wayfind.Resolved, name string, want any) {
	tb.Helper()
	got, ok := res.Params[name]
	if !ok {
		tb.Errorf("param %q absent, want %v", name, want)
		return
	}
	if !reflect.DeepEqual(got, want) {
		tb.Errorf("param %q = %v (%T), want %v (%T)", name, got, got, want, want)
	}
}

// ExpectNoParam asserts that a param is absent from the resolution,
// the state optional params have when no value was supplied.
func ExpectNoParam(tb testing.TB, res wayfind.Resolved, name string) {
	tb.Helper()
	if got, ok := res.Params[name]; ok {
		tb.Errorf("param %q = %v, want absent", name, got)
	}
}

// ExpectCurrent asserts the app's active route.
func ExpectCurrent(tb testing.TB, app *App, wantID string) {
	tb.Helper()
	cur, ok := app.Current()
	if !ok {
		tb.Errorf("no current route, want %q", wantID)
		return
	}
	if cur.RouteID != wantID {
		tb.Errorf("current route = %q, want %q", cur.RouteID, wantID)
	}
}

// ExpectDepth asserts the app's history depth.
func ExpectDepth(tb testing.TB, app *App, want int) {
	tb.Helper()
	if got := len(app.History()); got != want {
		tb.Errorf("history depth = %d, want %d", got, want)
	}
}

// ExpectMounts asserts the full sequence of route ids mounted on the
// recording host, oldest first.
//
// Example:
//
//	app.Open("/")
//	app.Open("/settings")
//	navtest.ExpectMounts(t, app, "home", "settings")
func ExpectMounts(tb testing.TB, app *App, ids ...string) {
	tb.Helper()
	mounts := app.Mounts()
	if len(mounts) != len(ids) {
		tb.Errorf("mounted %d routes, want %d", len(mounts), len(ids))
		return
	}
	for i, want := range ids {
		if mounts[i].RouteID != want {
			tb.Errorf("mount %d = %q, want %q", i, mounts[i].RouteID, want)
		}
	}
}

// ExpectRoundTrip asserts that resolving a path and rendering the
// result's canonical path gives back the original. Canonical paths are
// stable identifiers, so share links survive resolve/render cycles.
//
// Example:
//
//	navtest.ExpectRoundTrip(t, app.Registry(), "/users/42")
func ExpectRoundTrip(tb testing.TB, table Table, path string) {
	tb.Helper()
	res, err := table.Resolve(path)
	if err != nil {
		tb.Errorf("round trip: Resolve(%q): %v", path, err)
		return
	}
	back, err := table.PathFor(res.RouteID, res.Params)
	if err != nil {
		tb.Errorf("round trip: PathFor(%q, %v): %v", res.RouteID, res.Params, err)
		return
	}
	if back != path {
		tb.Errorf("round trip: %q resolved to %q but rendered back as %q", path, res.RouteID, back)
	}
}
