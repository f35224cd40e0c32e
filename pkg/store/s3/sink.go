package s3

import (
	"bytes"
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/de-tools/asset-atlas/pkg/export"
)

// Sink delivers export files as S3 objects under a bucket/prefix.
type Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewSink(cfg awssdk.Config, bucket, prefix string) *Sink {
	return &Sink{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}
}

// LoadConfig resolves AWS credentials for the given shared-config profile.
func LoadConfig(ctx context.Context, profile, region string) (*awssdk.Config, error) {
	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithSharedConfigProfile(profile),
		config.WithDefaultRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	if _, err = awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("invalid AWS credentials for profile %s: %w", profile, err)
	}

	return &awsCfg, nil
}

func (s *Sink) Deliver(ctx context.Context, file export.File) error {
	key := file.Name
	if s.prefix != "" {
		key = fmt.Sprintf("%s/%s", s.prefix, file.Name)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(s.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(file.Data),
		ContentType: awssdk.String(file.MediaType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
