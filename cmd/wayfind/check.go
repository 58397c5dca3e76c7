package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/deeplink"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the route table and project config",
		Long: `Validate the whole project the way app start-up would.

Checks performed:
  • wayfind.json parses and its values are well-formed
  • every route registers: unique ids, valid patterns, schemas that
    line up with their patterns, no two routes matching the same path
  • the fallback route, if configured, is openable without params
  • the link config can generate the configured association files

Exits non-zero on the first failure, with the same coded error the
runtime would produce.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}

	return cmd
}

func runCheck() error {
	cfg, defs, err := loadTable()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	success("wayfind.json valid")

	reg := router.New()
	if err := reg.Register(defs...); err != nil {
		return errors.Classify(err)
	}
	success("%d routes registered", reg.Len())

	if cfg.Fallback != "" {
		if _, err := reg.Make(cfg.Fallback, nil); err != nil {
			return errors.Classify(fmt.Errorf("fallback route %q: %w", cfg.Fallback, err))
		}
		success("fallback '%s' resolvable", cfg.Fallback)
	}

	assoc := deeplink.AssociationConfig{
		AppID:        cfg.Links.AppID,
		Package:      cfg.Links.Package,
		Fingerprints: cfg.Links.Fingerprints,
	}
	if len(cfg.Links.Domains) > 0 {
		if assoc.AppID == "" && assoc.Package == "" {
			return errors.New("W041").
				WithDetail("links.domains is set but neither links.appId nor links.package is").
				WithSuggestion("Universal links need an app identity to delegate to")
		}
		if assoc.AppID != "" {
			if _, err := deeplink.AppleSiteAssociation(reg, assoc); err != nil {
				return errors.FromError(err, "W041")
			}
		}
		if assoc.Package != "" {
			if _, err := deeplink.AssetLinks(assoc); err != nil {
				return errors.FromError(err, "W041")
			}
		}
		success("link config complete")
	}

	fmt.Println()
	success("All checks passed")
	return nil
}
