package routepath

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		query   string
		changed bool
	}{
		{"already canonical", "/users/42", "/users/42", "", false},
		{"empty input becomes root", "", "/", "", true},
		{"root stays root", "/", "/", "", false},
		{"missing leading slash", "settings", "/settings", "", true},
		{"collapse double slash", "/blog//post", "/blog/post", "", true},
		{"collapse many slashes", "/a///b////c", "/a/b/c", "", true},
		{"drop dot segments", "/blog/./post", "/blog/post", "", true},
		{"resolve dotdot", "/blog/../archive", "/archive", "", true},
		{"trailing slash removed", "/users/", "/users", "", true},
		{"query preserved", "/search/x?q=1&sort=asc", "/search/x", "q=1&sort=asc", false},
		{"escapes pass through", "/files/a%20b", "/files/a%20b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) returned error: %v", tt.input, err)
			}
			if got.Path != tt.want {
				t.Errorf("Path = %q, want %q", got.Path, tt.want)
			}
			if got.Query != tt.query {
				t.Errorf("Query = %q, want %q", got.Query, tt.query)
			}
			if got.Changed != tt.changed {
				t.Errorf("Changed = %v, want %v", got.Changed, tt.changed)
			}
		})
	}
}

func TestCanonicalizeRejections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"backslash", `/a\b`, ErrBackslash},
		{"literal NUL", "/a\x00b", ErrNULByte},
		{"encoded NUL", "/a%00b", ErrNULByte},
		{"encoded NUL uppercase position", "/%00", ErrNULByte},
		{"truncated escape", "/a%2", ErrBadEscape},
		{"non-hex escape", "/a%GG", ErrBadEscape},
		{"dotdot above root", "/../etc/passwd", ErrEscapesRoot},
		{"dotdot above root after pop", "/a/../../b", ErrEscapesRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canonicalize(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Canonicalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNavPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"relative path ok", "/users/42", "/users/42", nil},
		{"canonicalizes", "/users//42/", "/users/42", nil},
		{"keeps query", "/users/42?tab=posts", "/users/42?tab=posts", nil},
		{"http url rejected", "http://evil.example/x", "", ErrNotRelative},
		{"https url rejected", "https://evil.example/x", "", ErrNotRelative},
		{"scheme relative rejected", "//evil.example/x", "", ErrNotRelative},
		{"custom scheme rejected", "app://x", "", ErrNotRelative},
		{"bare word rejected", "users", "", ErrNotRelative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NavPath(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NavPath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NavPath(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NavPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeSegment(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		catchAll bool
		want     string
		wantErr  error
	}{
		{"plain", "report", false, "report", nil},
		{"space", "a%20b", false, "a b", nil},
		{"encoded slash rejected", "a%2Fb", false, "", ErrEncodedSlash},
		{"encoded slash ok in catch-all", "a%2Fb", true, "a/b", nil},
		{"literal slash ok in catch-all", "docs/guide", true, "docs/guide", nil},
		{"bad escape", "a%ZZ", false, "", ErrBadEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSegment(tt.value, tt.catchAll)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeSegment(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeSegment(%q) returned error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("DecodeSegment(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
