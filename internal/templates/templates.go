package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// ModulePath is the Go module path.
	ModulePath string

	// Description is a short project description.
	Description string

	// Scheme is the custom URL scheme the app claims, e.g. "myapp".
	Scheme string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal":  minimalTemplate(),
	"full":     fullTemplate(),
	"manifest": manifestTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("W084").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, full, manifest")
	}
	return tmpl, nil
}

// List returns all available template names.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Create generates a project from the template.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}

		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Route table declared as Go literals, single file",
		Files: map[string]string{
			"main.go": `package main

import (
	"context"
	"fmt"
	"log"

	"github.com/wayfind-dev/wayfind"
)

func main() {
	app, err := wayfind.New(wayfind.Config{
		Routes: []wayfind.Definition{
			{ID: "home", Pattern: "/"},
			{ID: "settings", Pattern: "/settings"},
			{
				ID:      "user-detail",
				Pattern: "/users/:id",
				Params:  wayfind.Schema{"id": {Kind: wayfind.KindInt}},
			},
		},
		Host: wayfind.HostFunc(func(_ context.Context, route wayfind.Resolved) error {
			fmt.Printf("mounted %s %v\n", route.RouteID, route.Params)
			return nil
		}),
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := app.Open(ctx, "/users/42"); err != nil {
		log.Fatal(err)
	}

	link, err := app.PathFor("user-detail", map[string]any{"id": 7})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("share link:", link)
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/wayfind-dev/wayfind v0.1.0
`,
			"wayfind.json": `{
  "name": "{{.ProjectName}}",
  "version": "0.1.0"
}
`,
		},
	}
}

// fullTemplate returns the full template with a screens tree and deep
// links.
func fullTemplate() *Template {
	return &Template{
		Name:        "full",
		Description: "Screens directory with file-based routes and deep links",
		Files: map[string]string{
			"main.go": `package main

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/wayfind-dev/wayfind"
)

//go:embed app/screens
var screensFS embed.FS

func main() {
	screens, err := fs.Sub(screensFS, "app/screens")
	if err != nil {
		log.Fatal(err)
	}

	app, err := wayfind.New(wayfind.Config{
		RoutesFS: screens,
		Fallback: "not-found",
		Schemes:  []string{"{{.Scheme}}"},
		Host: wayfind.HostFunc(func(_ context.Context, route wayfind.Resolved) error {
			fmt.Printf("  mounted %s %v\n", route.RouteID, route.Params)
			return nil
		}),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("{{.ProjectName}}: %d routes. Type a path, a {{.Scheme}}:// link, 'back', or 'quit':\n", len(app.Routes()))
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		ctx := context.Background()
		switch {
		case line == "quit":
			return
		case line == "back":
			if _, err := app.Back(ctx); err != nil {
				fmt.Println(" ", err)
			}
		case strings.Contains(line, "://"):
			if _, err := app.OpenURL(ctx, line); err != nil {
				fmt.Println(" ", err)
			}
		case line != "":
			if _, err := app.Open(ctx, line); err != nil {
				fmt.Println(" ", err)
			}
		}
	}
}
`,
			"app/screens/index.go": `package screens

// Home is rendered at /.
const Home = "Home"
`,
			"app/screens/settings.go": `package screens

// Settings is rendered at /settings.
const Settings = "Settings"
`,
			"app/screens/not-found.go": `package screens

// NotFound is the fallback screen for paths that match nothing.
const NotFound = "Not found"
`,
			"app/screens/users/index.go": `package users

// List is rendered at /users.
const List = "Users"
`,
			"app/screens/users/[id].go": `package users

// Detail is rendered at /users/:id. The id param scans as an int.
const Detail = "User detail"
`,
			"app/screens/search/[[q]].go": `package search

// Results is rendered at /search/:q?, with or without a query.
const Results = "Search"
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/wayfind-dev/wayfind v0.1.0
`,
			"wayfind.json": `{
  "name": "{{.ProjectName}}",
  "version": "0.1.0",
  "routes": {
    "dir": "app/screens"
  },
  "fallback": "not-found",
  "links": {
    "schemes": ["{{.Scheme}}"]
  }
}
`,
			"README.md": `# {{.ProjectName}}

{{.Description}}

## Getting Started

` + "```" + `bash
# List the route table
wayfind routes

# Validate routes, fallback, and link config
wayfind check

# Try a path
wayfind resolve /users/42

# Run the app
go run .
` + "```" + `

## Project Structure

` + "```" + `
{{.ProjectName}}/
├── main.go              # Entry point wiring the navigation stack
├── app/
│   └── screens/         # One file per screen; paths become routes
│       ├── index.go             → /
│       ├── settings.go          → /settings
│       ├── not-found.go         → /not-found (fallback)
│       ├── users/index.go       → /users
│       ├── users/[id].go        → /users/:id
│       └── search/[[q]].go      → /search/:q?
├── wayfind.json         # Wayfind configuration
└── README.md
` + "```" + `

## Routes

Screen files are routes. Brackets declare dynamic segments:

- ` + "`[id]`" + ` is a required param (id-like names scan as ints)
- ` + "`[[q]]`" + ` is an optional param
- ` + "`[...path]`" + ` is a catch-all

Run ` + "`wayfind routes`" + ` after adding files to see the table.

## Deep Links

The app claims the ` + "`{{.Scheme}}://`" + ` scheme. Add associated
domains to ` + "`links.domains`" + ` in wayfind.json and run
` + "`wayfind links generate`" + ` to produce the site-association files.
`,
		},
	}
}

// manifestTemplate returns the manifest-driven template.
func manifestTemplate() *Template {
	return &Template{
		Name:        "manifest",
		Description: "Route table declared in routes.yaml",
		Files: map[string]string{
			"main.go": `package main

import (
	"context"
	"fmt"
	"log"

	"github.com/wayfind-dev/wayfind"
)

func main() {
	app, err := wayfind.New(wayfind.Config{
		Manifest: "routes.yaml",
		Fallback: "not-found",
		Host: wayfind.HostFunc(func(_ context.Context, route wayfind.Resolved) error {
			fmt.Printf("mounted %s %v\n", route.RouteID, route.Params)
			return nil
		}),
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := app.Open(ctx, "/users/42"); err != nil {
		log.Fatal(err)
	}
	if _, err := app.Open(ctx, "/no/such/screen"); err != nil {
		log.Fatal(err)
	}
}
`,
			"routes.yaml": `routes:
  - id: home
    pattern: /
  - id: settings
    pattern: /settings
  - id: user-detail
    pattern: /users/:id
    params:
      id: {kind: int}
  - id: not-found
    pattern: /not-found
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/wayfind-dev/wayfind v0.1.0
`,
			"wayfind.json": `{
  "name": "{{.ProjectName}}",
  "version": "0.1.0",
  "routes": {
    "manifest": "routes.yaml"
  },
  "fallback": "not-found"
}
`,
		},
	}
}
