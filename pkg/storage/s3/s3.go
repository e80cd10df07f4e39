// File: pkg/storage/s3/s3.go
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"ossgate/internal/errs"
	"ossgate/pkg/storage"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Ceiling on a single HTTP exchange, independent of the per-operation timeout
const DefaultRequestTimeout = 12 * time.Second

// S3API is the subset of the SDK client the adapter drives; tests substitute a mock
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Options binds a client to one resolved endpoint
type Options struct {
	Region    string
	Endpoint  string
	PathStyle bool
	AccessKey string
	SecretKey string
	// Empty for service-level clients (bucket listing)
	Bucket         string
	RequestTimeout time.Duration
}

type S3Storage struct {
	client S3API
	bucket string
	bodies *bodyRecorder
	logger *slog.Logger
}

var _ storage.Client = (*S3Storage)(nil)

// Creates a client for any S3-compatible endpoint.
// Static credentials are used when both keys are set, otherwise the default chain.
func NewS3Storage(ctx context.Context, opts Options, logger *slog.Logger) (*S3Storage, error) {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	// CA bundle settings need the buildable client, so the recorder wraps it later
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(timeout)),
		// S3-compatible backends mostly reject the flexible checksum headers
		awsconfig.WithRequestChecksumCalculation(aws.RequestChecksumCalculationWhenRequired),
		awsconfig.WithResponseChecksumValidation(aws.ResponseChecksumValidationWhenRequired),
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "failed to load S3 client config", err)
	}

	var recorder *bodyRecorder
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = opts.PathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		recorder = newBodyRecorder(o.HTTPClient)
		o.HTTPClient = recorder
	})

	s := NewS3StorageWithClient(opts.Bucket, client, logger)
	s.bodies = recorder
	return s, nil
}

// Wraps a pre-built client; used by tests with a mock S3API
func NewS3StorageWithClient(bucket string, client S3API, logger *slog.Logger) *S3Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &S3Storage{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

func (s *S3Storage) ListObjects(ctx context.Context, params storage.ListParams) (storage.Listing, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if params.Prefix != "" {
		input.Prefix = aws.String(params.Prefix)
	}
	if params.Delimiter != "" {
		input.Delimiter = aws.String(params.Delimiter)
	}
	if params.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(params.MaxKeys)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return storage.Listing{}, s.providerError(err)
	}

	listing := storage.Listing{
		CommonPrefixes: make([]string, 0, len(out.CommonPrefixes)),
		Contents:       make([]storage.ListedObject, 0, len(out.Contents)),
	}
	for _, p := range out.CommonPrefixes {
		listing.CommonPrefixes = append(listing.CommonPrefixes, aws.ToString(p.Prefix))
	}
	for _, obj := range out.Contents {
		entry := storage.ListedObject{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		}
		if obj.LastModified != nil {
			entry.LastModified = obj.LastModified.UTC().Format(time.RFC3339Nano)
		}
		listing.Contents = append(listing.Contents, entry)
	}

	s.logger.Debug("Listed objects", "bucket", s.bucket, "prefix", params.Prefix, "prefixes", len(listing.CommonPrefixes), "objects", len(listing.Contents))
	return listing, nil
}

func (s *S3Storage) ListBuckets(ctx context.Context) ([]storage.BucketSummary, error) {
	out, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, s.providerError(err)
	}

	buckets := make([]storage.BucketSummary, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		summary := storage.BucketSummary{Name: aws.ToString(b.Name)}
		if b.CreationDate != nil {
			created := b.CreationDate.UTC().Format(time.RFC3339)
			summary.CreationDate = &created
		}
		buckets = append(buckets, summary)
	}
	return buckets, nil
}

func (s *S3Storage) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return s.providerError(err)
	}
	return nil
}

func (s *S3Storage) GetObject(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.providerError(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errs.Provider(fmt.Sprintf("failed to read object %s: %v", key, err), err)
	}
	return data, nil
}

func (s *S3Storage) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return s.providerError(err)
	}
	return nil
}

// Builds the provider error text: the SDK message followed by the raw response
// body, which is where redirect responses carry the corrected endpoint
func (s *S3Storage) providerError(err error) error {
	text := err.Error()
	if s.bodies != nil {
		if body := s.bodies.take(); body != "" {
			text += "\n" + body
		}
	}
	return errs.Provider(text, err)
}
