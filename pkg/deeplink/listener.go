// Package deeplink is the inbound boundary for platform URLs. A
// Listener turns custom-scheme links (myapp://settings) and universal
// links (https://links.example.com/settings) into in-app navigations,
// and the package generates and publishes the site-association files
// that make the HTTPS form work on iOS and Android.
package deeplink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/wayfind-dev/wayfind/pkg/middleware"
	"github.com/wayfind-dev/wayfind/pkg/navigator"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

var (
	// ErrSchemeNotAllowed reports a link whose scheme is not in the
	// allowlist.
	ErrSchemeNotAllowed = errors.New("deeplink: scheme not allowed")

	// ErrDomainNotAllowed reports an https link whose host is not an
	// associated domain.
	ErrDomainNotAllowed = errors.New("deeplink: domain not allowed")
)

// Listener receives platform URLs and feeds them into a navigator.
// Only links matching the configured schemes and domains are accepted;
// everything else is rejected before any resolution happens.
type Listener struct {
	nav     *navigator.Navigator
	schemes map[string]bool
	domains map[string]bool
	logger  *slog.Logger
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithSchemes sets the allowed custom URL schemes, e.g. "myapp".
func WithSchemes(schemes ...string) ListenerOption {
	return func(l *Listener) {
		for _, s := range schemes {
			l.schemes[s] = true
		}
	}
}

// WithDomains sets the associated domains accepted for https links,
// e.g. "links.example.com".
func WithDomains(domains ...string) ListenerOption {
	return func(l *Listener) {
		for _, d := range domains {
			l.domains[d] = true
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ListenerOption {
	return func(l *Listener) {
		l.logger = logger
	}
}

// NewListener creates a listener feeding the given navigator.
func NewListener(nav *navigator.Navigator, opts ...ListenerOption) *Listener {
	l := &Listener{
		nav:     nav,
		schemes: map[string]bool{},
		domains: map[string]bool{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Parse validates a platform URL and splits it into an in-app path and
// override params, without navigating. The query string becomes
// overrides; repeated keys keep their first value. The path is
// canonicalized with the same rules Resolve applies to external input.
func (l *Listener) Parse(raw string) (string, map[string]any, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", nil, fmt.Errorf("deeplink: parsing %q: %w", raw, err)
	}

	var path string
	switch {
	case u.Scheme == "https":
		if !l.domains[u.Host] {
			return "", nil, fmt.Errorf("%w: %q", ErrDomainNotAllowed, u.Host)
		}
		path = u.Path
	case l.schemes[u.Scheme]:
		// In myapp://settings/profile the first segment arrives as the
		// URL host.
		path = u.Path
		if u.Host != "" {
			path = "/" + u.Host + u.Path
		}
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrSchemeNotAllowed, u.Scheme)
	}
	if path == "" {
		path = "/"
	}

	result, err := routepath.Canonicalize(path)
	if err != nil {
		return "", nil, fmt.Errorf("deeplink: %w", err)
	}

	var overrides map[string]any
	if query := u.Query(); len(query) > 0 {
		overrides = make(map[string]any, len(query))
		for key, values := range query {
			if len(values) > 0 {
				overrides[key] = values[0]
			}
		}
	}
	return result.Path, overrides, nil
}

// Handle parses a platform URL and opens the resulting path on the
// navigator. Override params that do not belong to the matched route
// are dropped by the resolver, so tracking junk in the query string is
// harmless.
func (l *Listener) Handle(ctx context.Context, raw string) (router.Resolved, error) {
	path, overrides, err := l.Parse(raw)
	if err != nil {
		l.logger.Warn("deep link rejected", "url", raw, "error", err)
		middleware.RecordDeepLink("rejected")
		return router.Resolved{}, err
	}

	res, err := l.nav.Open(ctx, path, navigator.WithParams(overrides))
	if err != nil {
		l.logger.Warn("deep link failed", "url", raw, "path", path, "error", err)
		middleware.RecordDeepLink("failed")
		return router.Resolved{}, err
	}

	l.logger.Info("deep link opened", "url", raw, "path", path, "route", res.RouteID)
	middleware.RecordDeepLink("accepted")
	return res, nil
}
