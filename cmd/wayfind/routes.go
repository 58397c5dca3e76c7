package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func routesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `List every route in the project's route table.

The table comes from wayfind.json: either the screens directory is
scanned for route files, or the configured manifest is loaded. For
each route the id, pattern, params, and source are shown.

Examples:
  wayfind routes
  wayfind routes --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the table as JSON")

	return cmd
}

func runRoutes(asJSON bool) error {
	cfg, defs, err := loadTable()
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	if len(defs) == 0 {
		warn("No routes found")
		info("Add screen files under %s or routes to the manifest", cfg.RoutesPath())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATTERN\tPARAMS\tSOURCE")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			def.ID, def.Pattern, formatSchema(def.Params), def.Source)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	info("%d routes", len(defs))
	return nil
}

// loadTable loads the project config and its route definitions, from
// the manifest when one is configured and from the screens directory
// otherwise. Shared by routes, check, resolve, and links.
func loadTable() (*config.Config, []router.Definition, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return nil, nil, err
	}

	if manifest := cfg.ManifestPath(); manifest != "" {
		defs, err := router.LoadManifest(manifest)
		if err != nil {
			return nil, nil, errors.FromError(err, "W081").
				WithDetail("Loading " + manifest + " failed: " + err.Error())
		}
		return cfg, defs, nil
	}

	dir := cfg.RoutesPath()
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, errors.New("W080").
			WithDetail("Routes directory '" + dir + "' does not exist").
			WithSuggestion("Create it, or point routes.dir or routes.manifest in wayfind.json somewhere else")
	}
	defs, err := router.NewScanner(os.DirFS(dir)).Scan()
	if err != nil {
		return nil, nil, err
	}
	return cfg, defs, nil
}

// formatSchema renders a param schema as "id:int, tab:enum(a|b), q?:string".
func formatSchema(schema router.Schema) string {
	if len(schema) == 0 {
		return "-"
	}
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		spec := schema[name]
		text := name
		if spec.Optional {
			text += "?"
		}
		text += ":" + string(spec.Kind)
		if spec.Kind == router.KindEnum {
			text += "(" + strings.Join(spec.Enum, "|") + ")"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}
