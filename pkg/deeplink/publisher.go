package deeplink

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Association file keys under the publish prefix. Apple requires the
// file to be served without an extension.
const (
	appleAssociationKey = ".well-known/apple-app-site-association"
	assetLinksKey       = ".well-known/assetlinks.json"
)

// ObjectPutter is the part of the S3 client the publisher uses.
// *s3.Client satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads association files to the S3 bucket fronting the
// link domain.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	pub := deeplink.NewPublisher(s3.NewFromConfig(cfg), "links-example-com", "")
//	err := pub.Publish(ctx, registry, deeplink.AssociationConfig{...})
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *slog.Logger
}

// NewPublisher creates a publisher writing to bucket under the given
// key prefix ("" for the bucket root).
func NewPublisher(client ObjectPutter, bucket, prefix string) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger and returns the publisher.
func (p *Publisher) WithLogger(logger *slog.Logger) *Publisher {
	p.logger = logger
	return p
}

// Publish renders and uploads the association files for the platforms
// cfg describes: apple-app-site-association when AppID is set,
// assetlinks.json when Package is set. At least one platform must be
// configured.
func (p *Publisher) Publish(ctx context.Context, reg *router.Registry, cfg AssociationConfig) error {
	if cfg.AppID == "" && cfg.Package == "" {
		return fmt.Errorf("deeplink: nothing to publish, set AppID or Package")
	}

	if cfg.AppID != "" {
		doc, err := AppleSiteAssociation(reg, cfg)
		if err != nil {
			return err
		}
		if err := p.put(ctx, appleAssociationKey, doc); err != nil {
			return err
		}
	}

	if cfg.Package != "" {
		doc, err := AssetLinks(cfg)
		if err != nil {
			return err
		}
		if err := p.put(ctx, assetLinksKey, doc); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) put(ctx context.Context, key string, body []byte) error {
	fullKey := p.prefix + key
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(fullKey),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("max-age=300"),
	})
	if err != nil {
		return fmt.Errorf("deeplink: uploading %s: %w", fullKey, err)
	}
	p.logger.Info("published association file",
		"bucket", p.bucket, "key", fullKey, "bytes", len(body))
	return nil
}
