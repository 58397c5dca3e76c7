package middleware

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/navigator"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func TestOpenTelemetryMiddleware_ReplacesEventContext(t *testing.T) {
	ev := &navigator.Event{Op: navigator.OpOpen, Path: "/projects"}

	extractorCalled := false
	mw := OpenTelemetry(
		WithIncludeParams(true),
		WithAttributeExtractor(func(*navigator.Event) []attribute.KeyValue {
			extractorCalled = true
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	err := mw.Handle(ev, func() error {
		if ev.Context() == context.Background() {
			t.Error("expected event context to carry the span")
		}
		_ = trace.SpanContextFromContext(ev.Context()) // Should not panic
		if SpanFromEvent(ev) == nil {
			t.Error("expected SpanFromEvent to return a span during execution")
		}
		ev.Route = &router.Resolved{
			RouteID: "project-detail",
			Params:  router.Params{"id": int64(7)},
		}
		ev.Depth = 1
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !extractorCalled {
		t.Error("expected attribute extractor to be called")
	}
}

func TestOpenTelemetryMiddleware_ErrorPropagates(t *testing.T) {
	ev := &navigator.Event{Op: navigator.OpOpen, Path: "/projects"}

	wantErr := errors.New("boom")
	err := OpenTelemetry().Handle(ev, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected error %v, got %v", wantErr, err)
	}
}

func TestOpenTelemetryMiddleware_FilterSkipsTracing(t *testing.T) {
	ev := &navigator.Event{Op: navigator.OpBack}

	nextCalled := false
	err := OpenTelemetry(
		WithNavigationFilter(func(ev *navigator.Event) bool {
			return ev.Op != navigator.OpBack
		}),
	).Handle(ev, func() error {
		nextCalled = true
		if ev.Context() != context.Background() {
			t.Error("expected event context untouched when filter skips tracing")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatal("expected next to be called")
	}
}

func TestFormatSpanName(t *testing.T) {
	tests := []struct {
		ev   navigator.Event
		want string
	}{
		{navigator.Event{Op: navigator.OpOpen, Path: "/users/42"}, "nav.open /users/42"},
		{navigator.Event{Op: navigator.OpGo, Path: "/"}, "nav.go /"},
		{navigator.Event{Op: navigator.OpBack}, "nav.back /"},
	}
	for _, tt := range tests {
		if got := formatSpanName(&tt.ev); got != tt.want {
			t.Errorf("formatSpanName(%q, %q) = %q, want %q", tt.ev.Op, tt.ev.Path, got, tt.want)
		}
	}
}
