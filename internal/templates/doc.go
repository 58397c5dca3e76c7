// Package templates provides project scaffolding templates.
//
// This package contains embedded templates for creating new Wayfind
// projects. Templates include all necessary files for a working
// navigation setup.
//
// # Available Templates
//
//   - minimal: Route table declared as Go literals, single file
//   - full: Screens directory with file-based routes and deep links
//   - manifest: Route table declared in routes.yaml
//
// # Usage
//
//	tmpl, err := templates.Get("full")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tmpl.Create(projectDir, config); err != nil {
//	    log.Fatal(err)
//	}
//
// # Template Variables
//
// Templates support variable substitution:
//
//	{{.ProjectName}}     - Name of the project
//	{{.ModulePath}}      - Go module path
//	{{.Description}}     - Project description
//	{{.Scheme}}          - Custom URL scheme the app claims
package templates
