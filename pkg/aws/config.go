package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Settings selects the region, credentials and (for LocalStack) endpoint
// overrides used by every AWS client in the service.
type Settings struct {
	Region          string
	Endpoint        string // generic override, e.g. http://localstack:4566
	S3Endpoint      string // S3-only override, falls back to Endpoint
	AccessKeyID     string
	SecretAccessKey string
}

// LoadAWSConfig loads the SDK config for s. Static credentials are used only
// when at least one of the key fields is set; otherwise the default chain
// applies.
func LoadAWSConfig(ctx context.Context, s Settings) (sdkaws.Config, error) {
	region := s.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if s.AccessKeyID != "" || s.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// BaseEndpoint returns the generic endpoint override or nil.
func (s Settings) BaseEndpoint() *string {
	if s.Endpoint == "" {
		return nil
	}
	return sdkaws.String(s.Endpoint)
}

// S3BaseEndpoint returns the S3 endpoint override or nil.
func (s Settings) S3BaseEndpoint() *string {
	if s.S3Endpoint != "" {
		return sdkaws.String(s.S3Endpoint)
	}
	return s.BaseEndpoint()
}
