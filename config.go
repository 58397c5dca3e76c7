package wayfind

import (
	"io/fs"
	"log/slog"

	"github.com/wayfind-dev/wayfind/pkg/deeplink"
	"github.com/wayfind-dev/wayfind/pkg/navigator"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config is the main application configuration.
// This is the user-friendly entry point for configuring a Wayfind app.
type Config struct {
	// Routes is a literal route table, registered in order. It can be
	// combined with RoutesFS and Manifest; every source feeds the same
	// registry, which rejects duplicates and ambiguity across all of
	// them.
	Routes []Definition

	// RoutesFS enables file-based discovery: the tree is scanned and
	// file paths become route ids and patterns. Typically os.DirFS on
	// the screens directory, or an embedded fs.
	RoutesFS fs.FS

	// Manifest is the path to a routes.yaml or routes.json manifest,
	// the declarative alternative to file-based discovery. Manifests
	// are the only way to declare enum params.
	Manifest string

	// Fallback is the route id opened when a path matches nothing,
	// typically a not-found screen. The route must resolve without
	// required params. Empty means misses surface as errors.
	Fallback string

	// Host receives every successfully resolved route and mounts the
	// corresponding screen. Nil means navigations resolve and record
	// history without mounting anything, which is useful in tests.
	Host navigator.Host

	// DynamicRoutes keeps the registry open after start-up, so route
	// modules loaded later may register themselves. Registration stays
	// atomic: resolvers observe either the old table or the new one.
	// When false (the default) the registry is frozen once the sources
	// above are registered.
	DynamicRoutes bool

	// Schemes are the custom URL schemes accepted by the deep-link
	// listener, e.g. "myapp".
	Schemes []string

	// Domains are the associated HTTPS domains accepted by the
	// deep-link listener, e.g. "links.example.com".
	Domains []string

	// Links identifies the apps the site-association files delegate
	// to. Only needed when serving or publishing association files.
	Links deeplink.AssociationConfig

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}
