package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func resolveCmd() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path against the route table",
		Long: `Resolve a path the way the app would and print the result.

Override params supply values for optional params the path leaves out
or replace captured ones, exactly like params passed alongside a path
at runtime. Overrides win over captured segments.

Examples:
  wayfind resolve /users/42
  wayfind resolve /search -p q=coffee
  wayfind resolve /feed/latest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0], params)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Override param as key=value (repeatable)")

	return cmd
}

func runResolve(path string, paramFlags []string) error {
	_, defs, err := loadTable()
	if err != nil {
		return err
	}

	reg := router.New()
	if err := reg.Register(defs...); err != nil {
		return errors.Classify(err)
	}

	overrides, err := parseParamFlags(paramFlags)
	if err != nil {
		return err
	}

	var res router.Resolved
	if len(overrides) > 0 {
		res, err = reg.Resolve(path, router.WithParams(overrides))
	} else {
		res, err = reg.Resolve(path)
	}
	if err != nil {
		return errors.Classify(err)
	}

	def, _ := reg.Lookup(res.RouteID)
	canonical, _ := reg.PathFor(res.RouteID, res.Params)

	fmt.Println()
	info("Route:    %s", res.RouteID)
	if def.Source != "" {
		info("Pattern:  %s  (%s)", def.Pattern, def.Source)
	} else {
		info("Pattern:  %s", def.Pattern)
	}
	if len(res.Params) > 0 {
		names := make([]string, 0, len(res.Params))
		for name := range res.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		pairs := make([]string, 0, len(names))
		for _, name := range names {
			pairs = append(pairs, fmt.Sprintf("%s=%v", name, res.Params[name]))
		}
		info("Params:   %s", strings.Join(pairs, "  "))
	}
	if canonical != "" {
		info("Path:     %s", canonical)
	}
	fmt.Println()
	return nil
}

// parseParamFlags turns repeated -p key=value flags into an override
// map. Values stay strings; the resolver coerces them per the schema.
func parseParamFlags(flags []string) (map[string]any, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	overrides := make(map[string]any, len(flags))
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", flag)
		}
		overrides[key] = value
	}
	return overrides, nil
}
