package deeplink

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// AssociationConfig identifies the apps the association files delegate
// to.
type AssociationConfig struct {
	// AppID is the Apple app identifier, "TEAMID.com.example.app".
	AppID string

	// Package is the Android application id, "com.example.app".
	Package string

	// Fingerprints are SHA-256 signing certificate fingerprints for the
	// Android app.
	Fingerprints []string
}

type appleAssociation struct {
	Applinks appleApplinks `json:"applinks"`
}

type appleApplinks struct {
	Apps    []string      `json:"apps"`
	Details []appleDetail `json:"details"`
}

type appleDetail struct {
	AppID string   `json:"appID"`
	Paths []string `json:"paths"`
}

type assetLink struct {
	Relation []string        `json:"relation"`
	Target   assetLinkTarget `json:"target"`
}

type assetLinkTarget struct {
	Namespace    string   `json:"namespace"`
	PackageName  string   `json:"package_name"`
	Fingerprints []string `json:"sha256_cert_fingerprints"`
}

// AppleSiteAssociation renders the apple-app-site-association document
// covering every route in the registry. Param and catch-all segments
// become wildcards, so the document stays valid as params change and
// only needs republishing when routes are added or removed.
func AppleSiteAssociation(reg *router.Registry, cfg AssociationConfig) ([]byte, error) {
	if cfg.AppID == "" {
		return nil, errors.New("deeplink: AppID is required for apple-app-site-association")
	}

	var paths []string
	seen := map[string]bool{}
	for _, def := range reg.Routes() {
		for _, p := range wildcardPaths(def) {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}

	doc := appleAssociation{
		Applinks: appleApplinks{
			Apps: []string{},
			Details: []appleDetail{
				{AppID: cfg.AppID, Paths: paths},
			},
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}

// AssetLinks renders the assetlinks.json document delegating URL
// handling on the link domain to the Android app.
func AssetLinks(cfg AssociationConfig) ([]byte, error) {
	if cfg.Package == "" {
		return nil, errors.New("deeplink: Package is required for assetlinks.json")
	}
	if len(cfg.Fingerprints) == 0 {
		return nil, errors.New("deeplink: at least one certificate fingerprint is required")
	}

	doc := []assetLink{
		{
			Relation: []string{"delegate_permission/common.handle_all_urls"},
			Target: assetLinkTarget{
				Namespace:    "android_app",
				PackageName:  cfg.Package,
				Fingerprints: cfg.Fingerprints,
			},
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}

// wildcardPaths converts a route pattern into apple-app-site-association
// path entries. The literal prefix is kept and everything from the
// first param on collapses into "*". Routes whose params can all be
// absent contribute the bare prefix too.
func wildcardPaths(def router.Definition) []string {
	if def.Pattern == "/" {
		return []string{"/"}
	}

	var literals []string
	prefixDone := false
	hasParams := false
	allOptional := true
	for _, seg := range strings.Split(strings.TrimPrefix(def.Pattern, "/"), "/") {
		switch {
		case strings.HasPrefix(seg, ":"):
			prefixDone = true
			hasParams = true
			if !strings.HasSuffix(seg, "?") {
				allOptional = false
			}
		case strings.HasPrefix(seg, "*"):
			prefixDone = true
			hasParams = true
			if !def.Params[strings.TrimPrefix(seg, "*")].Optional {
				allOptional = false
			}
		default:
			if !prefixDone {
				literals = append(literals, seg)
			}
		}
	}

	base := "/" + strings.Join(literals, "/")
	if !hasParams {
		return []string{base}
	}
	wildcard := base + "/*"
	if len(literals) == 0 {
		wildcard = "/*"
	}
	if allOptional {
		return []string{base, wildcard}
	}
	return []string{wildcard}
}
