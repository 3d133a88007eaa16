package admin

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Publisher uploads menu exports for later deployment.
type Publisher interface {
	// Publish stores data and returns the object key it was written to.
	Publish(ctx context.Context, data []byte) (string, error)
}

// ObjectPutter is the subset of the S3 client used by the publisher.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
	logger zerolog.Logger
}

// NewS3Publisher creates a publisher writing "<prefix>menu-<timestamp>.json" objects.
func NewS3Publisher(client ObjectPutter, bucket, prefix string, logger zerolog.Logger) Publisher {
	return &s3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
		logger: logger.With().Str("component", "s3-menu-publisher").Logger(),
	}
}

func (p *s3Publisher) Publish(ctx context.Context, data []byte) (string, error) {
	key := p.prefix + "menu-" + p.now().UTC().Format("20060102T150405Z") + ".json"

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("bucket", p.bucket).
			Str("key", key).
			Msg("failed to upload menu export")
		return "", fmt.Errorf("failed to upload menu export (bucket=%s, key=%s): %w", p.bucket, key, err)
	}

	p.logger.Info().
		Str("bucket", p.bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("menu export published")

	return key, nil
}
