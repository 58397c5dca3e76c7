package router

import (
	"testing"
	"testing/fstest"
)

func scanTree(t *testing.T, files ...string) []Definition {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, f := range files {
		fsys[f] = &fstest.MapFile{Data: []byte("package screens\n")}
	}
	defs, err := NewScanner(fsys).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return defs
}

func TestScannerDiscoversRoutes(t *testing.T) {
	defs := scanTree(t,
		"index.go",
		"settings.go",
		"users/index.go",
		"users/[id:int].go",
		"post/[id].go",
		"search/[[q]].go",
		"files/[...path].go",
		"docs/[[...rest]].go",
		"legacy/_id_.go",
		"legacy/_path___.go",
	)

	want := []struct {
		id      string
		pattern string
		params  Schema
	}{
		{"index", "/", nil},
		{"settings", "/settings", nil},
		{"users/index", "/users", nil},
		{"users/[id:int]", "/users/:id", Schema{"id": {Kind: KindInt}}},
		{"post/[id]", "/post/:id", Schema{"id": {Kind: KindInt}}},
		{"search/[[q]]", "/search/:q?", Schema{"q": {Kind: KindString, Optional: true}}},
		{"files/[...path]", "/files/*path", Schema{"path": {Kind: KindString}}},
		{"docs/[[...rest]]", "/docs/*rest", Schema{"rest": {Kind: KindString, Optional: true}}},
		{"legacy/_id_", "/legacy/:id", Schema{"id": {Kind: KindInt}}},
		{"legacy/_path___", "/legacy/*path", Schema{"path": {Kind: KindString}}},
	}

	byID := make(map[string]Definition, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}
	if len(defs) != len(want) {
		t.Fatalf("Scan returned %d routes, want %d: %+v", len(defs), len(want), defs)
	}
	for _, w := range want {
		def, ok := byID[w.id]
		if !ok {
			t.Errorf("route %q was not discovered", w.id)
			continue
		}
		if def.Pattern != w.pattern {
			t.Errorf("%s: pattern = %q, want %q", w.id, def.Pattern, w.pattern)
		}
		if len(def.Params) != len(w.params) {
			t.Errorf("%s: params = %+v, want %+v", w.id, def.Params, w.params)
			continue
		}
		for name, spec := range w.params {
			got := def.Params[name]
			if got.Kind != spec.Kind || got.Optional != spec.Optional {
				t.Errorf("%s: param %q = %+v, want %+v", w.id, name, got, spec)
			}
		}
		if def.Source == "" {
			t.Errorf("%s: Source is empty", w.id)
		}
	}
}

func TestScannerSkipsNonRoutes(t *testing.T) {
	defs := scanTree(t,
		"index.go",
		"_layout.go",
		"_middleware.go",
		"notes.txt",
		"readme_test.go",
		".hidden/secret.go",
		"_components/button.go",
		"users/[id].go",
	)

	if len(defs) != 2 {
		t.Fatalf("Scan returned %d routes, want 2: %+v", len(defs), defs)
	}
	for _, def := range defs {
		if def.ID != "index" && def.ID != "users/[id]" {
			t.Errorf("unexpected route %q", def.ID)
		}
	}
}

func TestScannerKindInference(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"id", KindInt},
		{"userId", KindInt},
		{"user_id", KindInt},
		{"page", KindInt},
		{"year", KindInt},
		{"uuid", KindString},
		{"ownerUuid", KindString},
		{"slug", KindString},
		{"title", KindString},
	}
	for _, tt := range tests {
		if got := inferKindFromName(tt.name); got != tt.want {
			t.Errorf("inferKindFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestScannerOutputRegisters(t *testing.T) {
	defs := scanTree(t,
		"index.go",
		"users/index.go",
		"users/[id:int].go",
		"files/[...path].go",
	)

	reg := New()
	if err := reg.Register(defs...); err != nil {
		t.Fatalf("Register scanned routes: %v", err)
	}

	res, err := reg.Resolve("/users/42")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.RouteID != "users/[id:int]" || res.Params.Int("id") != 42 {
		t.Errorf("got %+v", res)
	}
}

func TestScannerRejectsBadAnnotation(t *testing.T) {
	fsys := fstest.MapFS{
		"users/[id:uuid].go": &fstest.MapFile{Data: []byte("package screens\n")},
	}
	if _, err := NewScanner(fsys).Scan(); err == nil {
		t.Fatal("expected an error for an unknown kind annotation")
	}
}
