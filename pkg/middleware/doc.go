// Package middleware provides production-grade middleware for navigation.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry distributed tracing middleware
//
// # Prometheus Metrics
//
// The Prometheus middleware collects metrics about navigation:
//   - wayfind_navigations_total: Navigations by operation, route and status
//   - wayfind_navigation_duration_seconds: Navigation duration histogram
//   - wayfind_navigation_errors_total: Navigation errors by operation and type
//   - wayfind_history_depth: Current history stack depth
//   - wayfind_deep_links_total: Deep links received by status
//
//	nav := navigator.New(registry)
//	nav.Use(middleware.Prometheus())
//
// Then expose metrics on a separate port:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware traces every navigation. Spans carry the
// operation, requested path, resolved route id and history depth, and
// the host mount runs inside the span so screen setup shows up in the
// trace.
//
//	nav.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithNavigationFilter(func(ev *navigator.Event) bool {
//	        return ev.Op != navigator.OpBack
//	    }),
//	))
//
// # Context Propagation
//
// The tracing middleware replaces the event context, so anything the
// host does during the mount inherits the trace:
//
//	host := navigator.HostFunc(func(ctx context.Context, route router.Resolved) error {
//	    // Database call inherits trace context
//	    row := db.QueryRowContext(ctx, "SELECT ...")
//	    return nil
//	})
package middleware
