package navtest

import (
	"context"
	"io/fs"
	"sync"
	"testing"

	"github.com/wayfind-dev/wayfind"
)

// AppBuilder allows fluent construction of test apps.
type AppBuilder struct {
	cfg wayfind.Config
}

// NewApp creates a new app builder for testing.
//
// Example:
//
//	app := navtest.NewApp().
//	    WithRoutes(wayfind.Definition{ID: "home", Pattern: "/"}).
//	    Build(t)
func NewApp() *AppBuilder {
	return &AppBuilder{}
}

// WithRoutes adds literal route definitions.
func (b *AppBuilder) WithRoutes(defs ...wayfind.Definition) *AppBuilder {
	b.cfg.Routes = append(b.cfg.Routes, defs...)
	return b
}

// WithScreens sets a screens file system to scan for routes, typically
// a testing/fstest.MapFS or an embedded tree.
func (b *AppBuilder) WithScreens(fsys fs.FS) *AppBuilder {
	b.cfg.RoutesFS = fsys
	return b
}

// WithManifest sets a route manifest path.
func (b *AppBuilder) WithManifest(path string) *AppBuilder {
	b.cfg.Manifest = path
	return b
}

// WithFallback sets the fallback route id.
func (b *AppBuilder) WithFallback(id string) *AppBuilder {
	b.cfg.Fallback = id
	return b
}

// WithSchemes sets the custom URL schemes accepted for deep links.
func (b *AppBuilder) WithSchemes(schemes ...string) *AppBuilder {
	b.cfg.Schemes = append(b.cfg.Schemes, schemes...)
	return b
}

// WithDomains sets the associated domains accepted for universal
// links.
func (b *AppBuilder) WithDomains(domains ...string) *AppBuilder {
	b.cfg.Domains = append(b.cfg.Domains, domains...)
	return b
}

// WithDynamicRoutes leaves the registry open for registration after
// Build.
func (b *AppBuilder) WithDynamicRoutes() *AppBuilder {
	b.cfg.DynamicRoutes = true
	return b
}

// Build assembles the app on a recording host and fails the test on
// any registration error. Use wayfind.New directly to test the error
// paths of registration itself.
func (b *AppBuilder) Build(tb testing.TB) *App {
	tb.Helper()

	host := NewRecordingHost()
	cfg := b.cfg
	cfg.Host = host

	app, err := wayfind.New(cfg)
	if err != nil {
		tb.Fatalf("navtest: building app: %v", err)
	}
	return &App{App: app, tb: tb, host: host}
}

// App wraps a wayfind.App with test-friendly navigation methods that
// fail the test instead of returning errors. The embedded App is still
// available for exercising error paths.
type App struct {
	*wayfind.App
	tb   testing.TB
	host *RecordingHost
}

// Host returns the recording host the app mounts routes on.
func (a *App) Host() *RecordingHost {
	return a.host
}

// Open resolves a path and navigates to it, failing the test on error.
func (a *App) Open(path string, opts ...wayfind.OpenOption) wayfind.Resolved {
	a.tb.Helper()
	res, err := a.App.Open(context.Background(), path, opts...)
	if err != nil {
		a.tb.Fatalf("navtest: Open(%q): %v", path, err)
	}
	return res
}

// Go navigates to a route by id, failing the test on error.
func (a *App) Go(routeID string, params map[string]any, opts ...wayfind.OpenOption) wayfind.Resolved {
	a.tb.Helper()
	res, err := a.App.Go(context.Background(), routeID, params, opts...)
	if err != nil {
		a.tb.Fatalf("navtest: Go(%q): %v", routeID, err)
	}
	return res
}

// Back pops the history stack, failing the test on error.
func (a *App) Back() wayfind.Resolved {
	a.tb.Helper()
	res, err := a.App.Back(context.Background())
	if err != nil {
		a.tb.Fatalf("navtest: Back: %v", err)
	}
	return res
}

// OpenURL feeds a platform URL through the deep-link listener, failing
// the test on error.
func (a *App) OpenURL(raw string) wayfind.Resolved {
	a.tb.Helper()
	res, err := a.App.OpenURL(context.Background(), raw)
	if err != nil {
		a.tb.Fatalf("navtest: OpenURL(%q): %v", raw, err)
	}
	return res
}

// Mounts returns every route mounted so far, oldest first.
func (a *App) Mounts() []wayfind.Resolved {
	return a.host.Mounts()
}

// Reset clears the recorded mounts. Navigation history is unaffected.
func (a *App) Reset() {
	a.host.Reset()
}

// RecordingHost is a navigator host that records every mounted route.
// The zero value is not usable; call NewRecordingHost.
type RecordingHost struct {
	mu     sync.Mutex
	mounts []wayfind.Resolved
	err    error
}

// NewRecordingHost creates an empty recording host.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{}
}

// MountRoute records the route, or returns the configured failure.
func (h *RecordingHost) MountRoute(_ context.Context, route wayfind.Resolved) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.mounts = append(h.mounts, route)
	return nil
}

// Mounts returns a copy of the recorded mounts, oldest first.
func (h *RecordingHost) Mounts() []wayfind.Resolved {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]wayfind.Resolved, len(h.mounts))
	copy(out, h.mounts)
	return out
}

// Reset clears the recorded mounts and any configured failure.
func (h *RecordingHost) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mounts = nil
	h.err = nil
}

// FailWith makes every subsequent mount return err, until Reset.
func (h *RecordingHost) FailWith(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}
