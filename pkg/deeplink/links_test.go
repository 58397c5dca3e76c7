package deeplink

import (
	"encoding/json"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

func TestWildcardPaths(t *testing.T) {
	tests := []struct {
		pattern string
		params  router.Schema
		want    []string
	}{
		{"/", nil, []string{"/"}},
		{"/settings", nil, []string{"/settings"}},
		{"/users/:id", nil, []string{"/users/*"}},
		{"/users/:id/posts", nil, []string{"/users/*"}},
		{"/archive/:year?/:month?", nil, []string{"/archive", "/archive/*"}},
		{"/files/*path", nil, []string{"/files/*"}},
		{"/docs/*rest", router.Schema{"rest": {Optional: true}}, []string{"/docs", "/docs/*"}},
		{"/:slug", nil, []string{"/*"}},
		{"/*everything", router.Schema{"everything": {Optional: true}}, []string{"/", "/*"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			def := router.Definition{Pattern: tt.pattern, Params: tt.params}
			got := wildcardPaths(def)
			if len(got) != len(tt.want) {
				t.Fatalf("wildcardPaths(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("wildcardPaths(%q) = %v, want %v", tt.pattern, got, tt.want)
				}
			}
		})
	}
}

func TestAppleSiteAssociation(t *testing.T) {
	reg := router.New()
	err := reg.Register(
		router.Definition{ID: "home", Pattern: "/"},
		router.Definition{ID: "user-detail", Pattern: "/users/:id"},
		router.Definition{ID: "user-posts", Pattern: "/users/:id/posts"},
		router.Definition{ID: "archive", Pattern: "/archive/:year?"},
	)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	raw, err := AppleSiteAssociation(reg, AssociationConfig{AppID: "ABCDE12345.com.example.app"})
	if err != nil {
		t.Fatalf("AppleSiteAssociation: %v", err)
	}

	var doc appleAssociation
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Applinks.Details) != 1 {
		t.Fatalf("details = %+v, want one entry", doc.Applinks.Details)
	}
	detail := doc.Applinks.Details[0]
	if detail.AppID != "ABCDE12345.com.example.app" {
		t.Errorf("appID = %q", detail.AppID)
	}

	// The two /users routes collapse into one wildcard entry.
	want := []string{"/", "/users/*", "/archive", "/archive/*"}
	if len(detail.Paths) != len(want) {
		t.Fatalf("paths = %v, want %v", detail.Paths, want)
	}
	for i := range want {
		if detail.Paths[i] != want[i] {
			t.Fatalf("paths = %v, want %v", detail.Paths, want)
		}
	}
}

func TestAppleSiteAssociationRequiresAppID(t *testing.T) {
	if _, err := AppleSiteAssociation(router.New(), AssociationConfig{}); err == nil {
		t.Fatal("expected error without AppID")
	}
}

func TestAssetLinks(t *testing.T) {
	cfg := AssociationConfig{
		Package:      "com.example.app",
		Fingerprints: []string{"AA:BB:CC"},
	}
	raw, err := AssetLinks(cfg)
	if err != nil {
		t.Fatalf("AssetLinks: %v", err)
	}

	var doc []assetLink
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc) != 1 {
		t.Fatalf("doc = %+v, want one statement", doc)
	}
	st := doc[0]
	if len(st.Relation) != 1 || st.Relation[0] != "delegate_permission/common.handle_all_urls" {
		t.Errorf("relation = %v", st.Relation)
	}
	if st.Target.Namespace != "android_app" || st.Target.PackageName != "com.example.app" {
		t.Errorf("target = %+v", st.Target)
	}
	if len(st.Target.Fingerprints) != 1 || st.Target.Fingerprints[0] != "AA:BB:CC" {
		t.Errorf("fingerprints = %v", st.Target.Fingerprints)
	}
}

func TestAssetLinksValidation(t *testing.T) {
	if _, err := AssetLinks(AssociationConfig{Fingerprints: []string{"AA"}}); err == nil {
		t.Error("expected error without Package")
	}
	if _, err := AssetLinks(AssociationConfig{Package: "com.example.app"}); err == nil {
		t.Error("expected error without fingerprints")
	}
}
