package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/deeplink"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func linksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Generate and publish site-association files",
		Long: `Generate the /.well-known/ files that make universal links work.

apple-app-site-association delegates URLs on the link domain to the
iOS app; assetlinks.json does the same for Android. Both are derived
from the route table, so they only change when routes do.

Examples:
  wayfind links generate              # Write files into ./.well-known/
  wayfind links generate -o dist      # Write into dist/.well-known/
  wayfind links publish               # Upload to the configured bucket`,
	}

	cmd.AddCommand(
		linksGenerateCmd(),
		linksPublishCmd(),
	)

	return cmd
}

// =============================================================================
// wayfind links generate
// =============================================================================

func linksGenerateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write association files to a local directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinksGenerate(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".", "Directory to write .well-known/ into")

	return cmd
}

func runLinksGenerate(output string) error {
	_, reg, assoc, err := loadLinkSetup()
	if err != nil {
		return err
	}

	wellKnown := filepath.Join(output, ".well-known")
	if err := os.MkdirAll(wellKnown, 0755); err != nil {
		return err
	}

	wrote := 0
	if assoc.AppID != "" {
		doc, err := deeplink.AppleSiteAssociation(reg, assoc)
		if err != nil {
			return errors.FromError(err, "W041")
		}
		path := filepath.Join(wellKnown, "apple-app-site-association")
		if err := os.WriteFile(path, doc, 0644); err != nil {
			return err
		}
		success("Wrote %s", path)
		wrote++
	}
	if assoc.Package != "" {
		doc, err := deeplink.AssetLinks(assoc)
		if err != nil {
			return errors.FromError(err, "W041")
		}
		path := filepath.Join(wellKnown, "assetlinks.json")
		if err := os.WriteFile(path, doc, 0644); err != nil {
			return err
		}
		success("Wrote %s", path)
		wrote++
	}

	if wrote == 0 {
		return errors.New("W041").
			WithDetail("Neither links.appId nor links.package is set in wayfind.json").
			WithSuggestion("Set links.appId for iOS, links.package plus links.fingerprints for Android")
	}
	return nil
}

// =============================================================================
// wayfind links publish
// =============================================================================

func linksPublishCmd() *cobra.Command {
	var (
		bucket string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload association files to the link bucket",
		Long: `Render the association files and upload them to the S3 bucket
fronting the link domain.

The bucket comes from links.publish.bucket in wayfind.json unless
overridden. Credentials are read from the standard AWS environment
variables (AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinksPublish(bucket, prefix)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket to upload to (default: links.publish.bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket (default: links.publish.prefix)")

	return cmd
}

func runLinksPublish(bucket, prefix string) error {
	cfg, reg, assoc, err := loadLinkSetup()
	if err != nil {
		return err
	}

	if bucket == "" {
		bucket = cfg.Links.Publish.Bucket
	}
	if prefix == "" {
		prefix = cfg.Links.Publish.Prefix
	}
	if bucket == "" {
		return errors.New("W042").
			WithDetail("No bucket configured").
			WithSuggestion("Set links.publish.bucket in wayfind.json or pass --bucket")
	}

	client, err := s3ClientFromEnv()
	if err != nil {
		return errors.FromError(err, "W042").
			WithSuggestion("Export AWS_REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info("Publishing to s3://%s/%s", bucket, prefix)
	pub := deeplink.NewPublisher(client, bucket, prefix)
	if err := pub.Publish(ctx, reg, assoc); err != nil {
		return errors.FromError(err, "W042")
	}

	success("Association files published")
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// loadLinkSetup loads the config, registers the route table, and
// extracts the association identity, everything both link commands
// need.
func loadLinkSetup() (*config.Config, *router.Registry, deeplink.AssociationConfig, error) {
	cfg, defs, err := loadTable()
	if err != nil {
		return nil, nil, deeplink.AssociationConfig{}, err
	}
	reg := router.New()
	if err := reg.Register(defs...); err != nil {
		return nil, nil, deeplink.AssociationConfig{}, errors.Classify(err)
	}
	assoc := deeplink.AssociationConfig{
		AppID:        cfg.Links.AppID,
		Package:      cfg.Links.Package,
		Fingerprints: cfg.Links.Fingerprints,
	}
	return cfg, reg, assoc, nil
}

// s3ClientFromEnv builds an S3 client from the standard AWS
// environment variables. The shared-config credential chain is not
// consulted; publishing environments set these variables explicitly.
func s3ClientFromEnv() (*s3.Client, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		return nil, fmt.Errorf("AWS_REGION is not set")
	}

	access := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if access == "" || secret == "" {
		return nil, fmt.Errorf("AWS_ACCESS_KEY_ID or AWS_SECRET_ACCESS_KEY is not set")
	}
	session := os.Getenv("AWS_SESSION_TOKEN")

	awsCfg := aws.Config{
		Region: region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     access,
					SecretAccessKey: secret,
					SessionToken:    session,
					Source:          "environment",
				}, nil
			})),
	}
	return s3.NewFromConfig(awsCfg), nil
}
