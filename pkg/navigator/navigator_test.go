package navigator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

type recordingHost struct {
	mu     sync.Mutex
	mounts []router.Resolved
	fail   map[string]error
}

func (h *recordingHost) MountRoute(_ context.Context, route router.Resolved) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fail[route.RouteID]; err != nil {
		return err
	}
	h.mounts = append(h.mounts, route)
	return nil
}

func (h *recordingHost) mounted() []router.Resolved {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]router.Resolved, len(h.mounts))
	copy(out, h.mounts)
	return out
}

func testRegistry(t *testing.T) *router.Registry {
	t.Helper()
	reg := router.New()
	err := reg.Register(
		router.Definition{ID: "home", Pattern: "/"},
		router.Definition{ID: "settings", Pattern: "/settings"},
		router.Definition{
			ID:      "user-detail",
			Pattern: "/users/:id",
			Params:  router.Schema{"id": {Kind: router.KindInt}},
		},
		router.Definition{ID: "not-found", Pattern: "/not-found"},
	)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return reg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestNavigator(t *testing.T, opts ...Option) (*Navigator, *recordingHost) {
	t.Helper()
	host := &recordingHost{fail: map[string]error{}}
	opts = append([]Option{WithHost(host), WithLogger(quietLogger())}, opts...)
	return New(testRegistry(t), opts...), host
}

func TestOpenMountsAndPushes(t *testing.T) {
	nav, host := newTestNavigator(t)
	ctx := context.Background()

	res, err := nav.Open(ctx, "/users/42")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if res.RouteID != "user-detail" {
		t.Fatalf("RouteID = %q, want user-detail", res.RouteID)
	}
	if got := res.Params.Int("id"); got != 42 {
		t.Errorf("id = %d, want 42", got)
	}

	mounts := host.mounted()
	if len(mounts) != 1 || mounts[0].RouteID != "user-detail" {
		t.Errorf("mounted = %+v, want one user-detail mount", mounts)
	}
	cur, ok := nav.Current()
	if !ok || cur.RouteID != "user-detail" {
		t.Errorf("Current = %+v ok=%v, want user-detail", cur, ok)
	}
	if nav.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", nav.Depth())
	}
}

func TestGoBuildsPathAndMounts(t *testing.T) {
	nav, host := newTestNavigator(t)

	var seenPath string
	nav.Use(MiddlewareFunc(func(ev *Event, next func() error) error {
		seenPath = ev.Path
		return next()
	}))

	res, err := nav.Go(context.Background(), "user-detail", map[string]any{"id": 7})
	if err != nil {
		t.Fatalf("Go: %v", err)
	}
	if res.RouteID != "user-detail" || res.Params.Int("id") != 7 {
		t.Fatalf("resolved = %+v, want user-detail id=7", res)
	}
	if seenPath != "/users/7" {
		t.Errorf("event path = %q, want /users/7", seenPath)
	}
	if len(host.mounted()) != 1 {
		t.Errorf("mounted %d routes, want 1", len(host.mounted()))
	}
}

func TestGoRejectsBadParams(t *testing.T) {
	nav, host := newTestNavigator(t)

	_, err := nav.Go(context.Background(), "user-detail", map[string]any{"id": "abc"})
	var mismatch *router.ParamTypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Go error = %v, want ParamTypeMismatchError", err)
	}
	if len(host.mounted()) != 0 {
		t.Errorf("host mounted %d routes, want none", len(host.mounted()))
	}
	if nav.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", nav.Depth())
	}
}

func TestOpenReplace(t *testing.T) {
	nav, _ := newTestNavigator(t)
	ctx := context.Background()

	if _, err := nav.Open(ctx, "/"); err != nil {
		t.Fatalf("Open /: %v", err)
	}
	if _, err := nav.Open(ctx, "/settings", WithReplace()); err != nil {
		t.Fatalf("Open /settings: %v", err)
	}

	if nav.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1 after replace", nav.Depth())
	}
	cur, _ := nav.Current()
	if cur.RouteID != "settings" {
		t.Errorf("Current = %q, want settings", cur.RouteID)
	}
}

func TestBack(t *testing.T) {
	nav, host := newTestNavigator(t)
	ctx := context.Background()

	if _, err := nav.Open(ctx, "/"); err != nil {
		t.Fatalf("Open /: %v", err)
	}
	if _, err := nav.Open(ctx, "/users/42"); err != nil {
		t.Fatalf("Open /users/42: %v", err)
	}

	res, err := nav.Back(ctx)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if res.RouteID != "home" {
		t.Errorf("Back resolved %q, want home", res.RouteID)
	}
	if nav.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", nav.Depth())
	}
	mounts := host.mounted()
	if len(mounts) != 3 || mounts[2].RouteID != "home" {
		t.Errorf("mounts = %+v, want home re-mounted last", mounts)
	}

	if _, err := nav.Back(ctx); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Back at depth 1 = %v, want ErrNoHistory", err)
	}
}

func TestOpenFallback(t *testing.T) {
	t.Run("miss uses fallback", func(t *testing.T) {
		nav, host := newTestNavigator(t, WithFallback("not-found"))
		res, err := nav.Open(context.Background(), "/nonexistent")
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if res.RouteID != "not-found" {
			t.Errorf("RouteID = %q, want not-found", res.RouteID)
		}
		if len(host.mounted()) != 1 {
			t.Errorf("mounted %d routes, want 1", len(host.mounted()))
		}
	})

	t.Run("no fallback configured", func(t *testing.T) {
		nav, _ := newTestNavigator(t)
		_, err := nav.Open(context.Background(), "/nonexistent")
		if !errors.Is(err, router.ErrNotFound) {
			t.Errorf("Open = %v, want ErrNotFound", err)
		}
	})

	t.Run("type mismatch is not redirected", func(t *testing.T) {
		nav, host := newTestNavigator(t, WithFallback("not-found"))
		_, err := nav.Open(context.Background(), "/users/abc")
		var mismatch *router.ParamTypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Open = %v, want ParamTypeMismatchError", err)
		}
		if len(host.mounted()) != 0 {
			t.Errorf("host mounted %d routes, want none", len(host.mounted()))
		}
	})
}

func TestMountErrorLeavesHistory(t *testing.T) {
	nav, host := newTestNavigator(t)
	ctx := context.Background()

	if _, err := nav.Open(ctx, "/"); err != nil {
		t.Fatalf("Open /: %v", err)
	}

	boom := errors.New("screen exploded")
	host.fail["settings"] = boom
	if _, err := nav.Open(ctx, "/settings"); !errors.Is(err, boom) {
		t.Fatalf("Open /settings = %v, want wrapped mount error", err)
	}

	if nav.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", nav.Depth())
	}
	cur, _ := nav.Current()
	if cur.RouteID != "home" {
		t.Errorf("Current = %q, want home", cur.RouteID)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	nav, _ := newTestNavigator(t)

	var order []string
	mw := func(name string) Middleware {
		return MiddlewareFunc(func(ev *Event, next func() error) error {
			order = append(order, name+":before")
			err := next()
			order = append(order, name+":after")
			return err
		})
	}
	nav.Use(mw("outer"), mw("inner"))

	if _, err := nav.Open(context.Background(), "/settings"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	want := []string{"outer:before", "inner:before", "inner:after", "outer:after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestMiddlewareCancelsNavigation(t *testing.T) {
	nav, host := newTestNavigator(t)

	denied := errors.New("not signed in")
	nav.Use(MiddlewareFunc(func(ev *Event, next func() error) error {
		return denied
	}))

	if _, err := nav.Open(context.Background(), "/settings"); !errors.Is(err, denied) {
		t.Fatalf("Open = %v, want %v", err, denied)
	}
	if len(host.mounted()) != 0 {
		t.Errorf("host mounted %d routes, want none", len(host.mounted()))
	}
	if nav.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", nav.Depth())
	}
}

func TestMiddlewareSeesCommittedEvent(t *testing.T) {
	nav, _ := newTestNavigator(t)

	var after Event
	nav.Use(MiddlewareFunc(func(ev *Event, next func() error) error {
		if ev.Route != nil {
			t.Error("Route set before next()")
		}
		err := next()
		after = *ev
		return err
	}))

	if _, err := nav.Open(context.Background(), "/users/42"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if after.Op != OpOpen {
		t.Errorf("Op = %q, want %q", after.Op, OpOpen)
	}
	if after.Route == nil || after.Route.RouteID != "user-detail" {
		t.Errorf("Route = %+v, want user-detail", after.Route)
	}
	if after.EntryKey == "" {
		t.Error("EntryKey is empty")
	}
	if after.Depth != 1 {
		t.Errorf("Depth = %d, want 1", after.Depth)
	}
}

func TestOpenWithParamOverrides(t *testing.T) {
	nav, _ := newTestNavigator(t)

	res, err := nav.Open(context.Background(), "/users/42",
		WithParams(map[string]any{"id": 7}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := res.Params.Int("id"); got != 7 {
		t.Errorf("id = %d, want override 7", got)
	}
}

func TestHistoryEntryKeysAreUnique(t *testing.T) {
	nav, _ := newTestNavigator(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := nav.Open(ctx, "/settings"); err != nil {
			t.Fatalf("Open: %v", err)
		}
	}

	entries := nav.History()
	if len(entries) != 3 {
		t.Fatalf("len(History) = %d, want 3", len(entries))
	}
	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.Key == "" {
			t.Fatal("entry has empty key")
		}
		if seen[entry.Key] {
			t.Fatalf("duplicate entry key %q", entry.Key)
		}
		seen[entry.Key] = true
		if entry.At.IsZero() {
			t.Error("entry has zero timestamp")
		}
	}
}
