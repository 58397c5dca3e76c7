// Package navtest provides testing helpers for navigation flows.
//
// The navtest package reduces boilerplate when testing apps built on
// wayfind by providing a fluent app builder, a recording host, and
// navigation assertions.
//
// # Quick Start
//
//	func TestOpenUserDetail(t *testing.T) {
//	    app := navtest.NewApp().
//	        WithRoutes(appRoutes()...).
//	        Build(t)
//
//	    res := app.Open("/users/42")
//	    navtest.ExpectRoute(t, res, "user-detail")
//	    navtest.ExpectParam(t, res, "id", int64(42))
//	}
//
// # Fluent App Builder
//
// The builder mirrors wayfind.Config and fails the test on any
// registration error:
//
//	app := navtest.NewApp().
//	    WithScreens(screensFS).
//	    WithFallback("not-found").
//	    WithSchemes("myapp").
//	    Build(t)
//
// # Recording Host
//
// Every navigation mounts on a recording host, so tests can assert on
// the full mount sequence:
//
//	app.Open("/")
//	app.Open("/settings")
//	navtest.ExpectMounts(t, app, "home", "settings")
//
// The host can also be primed to fail, for testing how the app treats
// mount errors:
//
//	app.Host().FailWith(errors.New("screen crashed"))
//	_, err := app.App.Open(context.Background(), "/settings")
//
// # Round Trips
//
// ExpectRoundTrip asserts that resolving a path and rendering the
// result's canonical path gives back the original:
//
//	navtest.ExpectRoundTrip(t, app.Registry(), "/users/42")
package navtest
