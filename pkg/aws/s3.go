package aws

import (
	"context"
	"fmt"
	"io"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultImageBucket holds uploaded product images.
const DefaultImageBucket = "product-images"

// imageCacheControl matches a one-hour CDN cache for uploaded images.
const imageCacheControl = "max-age=3600"

// S3PutAPI is the slice of the S3 client used for uploads.
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client creates a path-style S3 client, honouring the LocalStack
// endpoint override in s.
func NewS3Client(cfg sdkaws.Config, s Settings) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if ep := s.S3BaseEndpoint(); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

// S3ImageStore writes image objects to a single bucket and resolves their
// public addresses.
type S3ImageStore struct {
	client    S3PutAPI
	bucket    string
	endpoint  string
	cdnDomain string
}

// NewS3ImageStore returns a store for bucket. endpoint and cdnDomain only
// affect PublicURL.
func NewS3ImageStore(client S3PutAPI, bucket, endpoint, cdnDomain string) *S3ImageStore {
	if bucket == "" {
		bucket = DefaultImageBucket
	}
	return &S3ImageStore{client: client, bucket: bucket, endpoint: endpoint, cdnDomain: cdnDomain}
}

// Put stores body under key. Existing objects are never overwritten: the
// request carries If-None-Match: * and S3 rejects it when key already exists.
func (s *S3ImageStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        sdkaws.String(s.bucket),
		Key:           sdkaws.String(key),
		Body:          body,
		ContentLength: sdkaws.Int64(size),
		ContentType:   sdkaws.String(contentType),
		CacheControl:  sdkaws.String(imageCacheControl),
		IfNoneMatch:   sdkaws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// PublicURL resolves the address a browser can load key from.
func (s *S3ImageStore) PublicURL(key string) string {
	switch {
	case s.cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", strings.TrimRight(s.cdnDomain, "/"), key)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	}
}
