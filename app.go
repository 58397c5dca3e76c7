package wayfind

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wayfind-dev/wayfind/pkg/deeplink"
	"github.com/wayfind-dev/wayfind/pkg/navigator"
	"github.com/wayfind-dev/wayfind/pkg/router"
	"github.com/wayfind-dev/wayfind/pkg/weblink"
)

// =============================================================================
// App Type
// =============================================================================

// App is the assembled navigation stack: a populated route registry, a
// navigator driving the configured host, and a deep-link listener in
// front of it.
//
// Create an App with wayfind.New():
//
//	//go:embed app/screens
//	var screensFS embed.FS
//
//	app, err := wayfind.New(wayfind.Config{
//	    RoutesFS: screensFS,
//	    Fallback: "not-found",
//	    Host:     host,
//	    Schemes:  []string{"myapp"},
//	    Domains:  []string{"links.example.com"},
//	})
//	res, err := app.Open(ctx, "/users/42")
type App struct {
	registry *router.Registry
	nav      *navigator.Navigator
	listener *deeplink.Listener

	config Config
	logger *slog.Logger
}

// New builds the registry from the configured route sources, wires the
// navigator and deep-link listener, and returns the ready application.
// Registration errors (duplicate ids, ambiguous or invalid patterns,
// schema mismatches) are returned immediately; they indicate a broken
// route table and should abort start-up.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := router.New()
	if err := registerSources(registry, cfg); err != nil {
		return nil, err
	}
	if cfg.Fallback != "" {
		if _, err := registry.Make(cfg.Fallback, nil); err != nil {
			return nil, fmt.Errorf("fallback route %q: %w", cfg.Fallback, err)
		}
	}
	if !cfg.DynamicRoutes {
		registry.Freeze()
	}

	navOpts := []navigator.Option{navigator.WithLogger(logger)}
	if cfg.Host != nil {
		navOpts = append(navOpts, navigator.WithHost(cfg.Host))
	}
	if cfg.Fallback != "" {
		navOpts = append(navOpts, navigator.WithFallback(cfg.Fallback))
	}
	nav := navigator.New(registry, navOpts...)

	listener := deeplink.NewListener(nav,
		deeplink.WithSchemes(cfg.Schemes...),
		deeplink.WithDomains(cfg.Domains...),
		deeplink.WithLogger(logger),
	)

	logger.Debug("wayfind app ready", "routes", registry.Len())
	return &App{
		registry: registry,
		nav:      nav,
		listener: listener,
		config:   cfg,
		logger:   logger,
	}, nil
}

// registerSources populates the registry from every configured source:
// scanned tree first, then manifest, then literal definitions, so a
// project mixing sources gets file routes at file specificity and
// manifest/literal routes layered on top.
func registerSources(registry *router.Registry, cfg Config) error {
	if cfg.RoutesFS != nil {
		defs, err := router.NewScanner(cfg.RoutesFS).Scan()
		if err != nil {
			return fmt.Errorf("scanning routes: %w", err)
		}
		if err := registry.Register(defs...); err != nil {
			return err
		}
	}
	if cfg.Manifest != "" {
		defs, err := router.LoadManifest(cfg.Manifest)
		if err != nil {
			return err
		}
		if err := registry.Register(defs...); err != nil {
			return err
		}
	}
	if len(cfg.Routes) > 0 {
		if err := registry.Register(cfg.Routes...); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Accessors
// =============================================================================

// Registry returns the route registry.
func (a *App) Registry() *router.Registry {
	return a.registry
}

// Navigator returns the navigation facade.
func (a *App) Navigator() *navigator.Navigator {
	return a.nav
}

// Listener returns the deep-link listener.
func (a *App) Listener() *deeplink.Listener {
	return a.listener
}

// Routes returns the registered definitions in registration order.
func (a *App) Routes() []Definition {
	return a.registry.Routes()
}

// Use appends middleware to the navigation chain.
func (a *App) Use(mw ...Middleware) {
	a.nav.Use(mw...)
}

// =============================================================================
// Navigation
// =============================================================================

// Open resolves a path and navigates to the result.
func (a *App) Open(ctx context.Context, path string, opts ...OpenOption) (Resolved, error) {
	return a.nav.Open(ctx, path, opts...)
}

// Go navigates to a route by id with typed params.
func (a *App) Go(ctx context.Context, routeID string, params map[string]any, opts ...OpenOption) (Resolved, error) {
	return a.nav.Go(ctx, routeID, params, opts...)
}

// Back re-mounts the previous history entry.
func (a *App) Back(ctx context.Context) (Resolved, error) {
	return a.nav.Back(ctx)
}

// Current returns the active route, if any navigation has happened.
func (a *App) Current() (Resolved, bool) {
	return a.nav.Current()
}

// History returns a copy of the history stack, oldest first.
func (a *App) History() []Entry {
	return a.nav.History()
}

// Resolve matches a path against the route table without navigating.
func (a *App) Resolve(path string, params map[string]any) (Resolved, error) {
	if params == nil {
		return a.registry.Resolve(path)
	}
	return a.registry.Resolve(path, router.WithParams(params))
}

// PathFor renders the canonical path for a route id and params, for
// link generation.
func (a *App) PathFor(routeID string, params map[string]any) (string, error) {
	return a.registry.PathFor(routeID, params)
}

// OpenURL feeds a platform URL (custom scheme or universal link)
// through the deep-link listener into the navigator.
func (a *App) OpenURL(ctx context.Context, rawURL string) (Resolved, error) {
	return a.listener.Handle(ctx, rawURL)
}

// =============================================================================
// Link domain
// =============================================================================

// LinkHandler returns the HTTP handler for the link domain: the
// /.well-known/ association files generated from the route table plus
// the resolve preview endpoint. Mount it on the server fronting the
// universal-link domain.
func (a *App) LinkHandler() http.Handler {
	server := weblink.New(a.registry, a.config.Links, weblink.WithLogger(a.logger))
	return server.Handler()
}
