package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"full", false},
		{"manifest", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if tmpl == nil {
					t.Error("Template should not be nil")
				}
				if tmpl.Name != tt.name {
					t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
				}
			}
		})
	}
}

func TestList(t *testing.T) {
	names := List()
	if len(names) < 3 {
		t.Errorf("Expected at least 3 templates, got %d", len(names))
	}

	expected := map[string]bool{
		"minimal":  false,
		"full":     false,
		"manifest": false,
	}

	for _, name := range names {
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("Template %q not found in list", name)
		}
	}
}

func TestTemplate_Create_Minimal(t *testing.T) {
	tmpDir := t.TempDir()

	tmpl, _ := Get("minimal")
	cfg := Config{
		ProjectName: "test-app",
		ModulePath:  "github.com/test/test-app",
		Description: "A test application",
		Scheme:      "testapp",
	}

	if err := tmpl.Create(tmpDir, cfg); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	expectedFiles := []string{
		"main.go",
		"go.mod",
		"wayfind.json",
	}

	for _, file := range expectedFiles {
		path := filepath.Join(tmpDir, file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("File %q not created", file)
		}
	}

	// Check content substitution
	goMod, _ := os.ReadFile(filepath.Join(tmpDir, "go.mod"))
	if !strings.Contains(string(goMod), "github.com/test/test-app") {
		t.Error("Module path not substituted in go.mod")
	}

	wayfindJSON, _ := os.ReadFile(filepath.Join(tmpDir, "wayfind.json"))
	if !strings.Contains(string(wayfindJSON), "test-app") {
		t.Error("Project name not substituted in wayfind.json")
	}
}

func TestTemplate_Create_Full(t *testing.T) {
	tmpDir := t.TempDir()

	tmpl, _ := Get("full")
	cfg := Config{
		ProjectName: "my-app",
		ModulePath:  "myapp",
		Description: "My awesome app",
		Scheme:      "myapp",
	}

	if err := tmpl.Create(tmpDir, cfg); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	expectedFiles := []string{
		"main.go",
		"go.mod",
		"wayfind.json",
		"README.md",
		"app/screens/index.go",
		"app/screens/not-found.go",
		"app/screens/users/[id].go",
		"app/screens/search/[[q]].go",
	}

	for _, file := range expectedFiles {
		path := filepath.Join(tmpDir, file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("File %q not created", file)
		}
	}

	// The scheme lands in both main.go and wayfind.json
	mainGo, _ := os.ReadFile(filepath.Join(tmpDir, "main.go"))
	if !strings.Contains(string(mainGo), `"myapp"`) {
		t.Error("Scheme not substituted in main.go")
	}

	readme, _ := os.ReadFile(filepath.Join(tmpDir, "README.md"))
	if !strings.Contains(string(readme), "my-app") {
		t.Error("Project name not in README")
	}
}

// The full template's screens tree must scan into a valid route table,
// otherwise every freshly created project starts broken.
func TestTemplate_Full_ScreensScan(t *testing.T) {
	tmpDir := t.TempDir()

	tmpl, _ := Get("full")
	if err := tmpl.Create(tmpDir, Config{
		ProjectName: "scan-app",
		ModulePath:  "scanapp",
		Scheme:      "scanapp",
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	defs, err := router.NewScanner(os.DirFS(filepath.Join(tmpDir, "app", "screens"))).Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	reg := router.New()
	if err := reg.Register(defs...); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Fallback named in the template's wayfind.json must be openable.
	if _, err := reg.Make("not-found", nil); err != nil {
		t.Errorf("fallback route: %v", err)
	}

	res, err := reg.Resolve("/users/42")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Params.Int("id") != 42 {
		t.Errorf("id = %v, want 42", res.Params["id"])
	}

	if _, err := reg.Resolve("/search"); err != nil {
		t.Errorf("optional-param route without value: %v", err)
	}
}

func TestTemplate_Create_Manifest(t *testing.T) {
	tmpDir := t.TempDir()

	tmpl, _ := Get("manifest")
	if err := tmpl.Create(tmpDir, Config{
		ProjectName: "my-manifest-app",
		ModulePath:  "manifestapp",
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	expectedFiles := []string{
		"main.go",
		"go.mod",
		"wayfind.json",
		"routes.yaml",
	}

	for _, file := range expectedFiles {
		path := filepath.Join(tmpDir, file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("File %q not created", file)
		}
	}

	// The manifest must load and register cleanly.
	defs, err := router.LoadManifest(filepath.Join(tmpDir, "routes.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest error: %v", err)
	}

	reg := router.New()
	if err := reg.Register(defs...); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := reg.Make("not-found", nil); err != nil {
		t.Errorf("fallback route: %v", err)
	}

	res, err := reg.Resolve("/users/9")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.Params.Int("id") != 9 {
		t.Errorf("id = %v, want 9", res.Params["id"])
	}
}

func TestTemplate_Description(t *testing.T) {
	for _, name := range List() {
		tmpl, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if tmpl.Description == "" {
			t.Errorf("Template %q should have description", name)
		}
	}
}
