// File: internal/provider/factory/factory.go
package factory

import (
	"context"
	"log/slog"
	"ossgate/internal/errs"
	"ossgate/internal/provider/endpoint"
	"ossgate/pkg/storage"
	"ossgate/pkg/storage/s3"
	"time"
)

type clientConstructor func(ctx context.Context, opts s3.Options, logger *slog.Logger) (storage.Client, error)

// Factory builds storage clients bound to a resolved endpoint. Clients are
// built per call and never cached.
type Factory struct {
	logger         *slog.Logger
	requestTimeout time.Duration
	newClient      clientConstructor
}

func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{
		logger:         logger,
		requestTimeout: s3.DefaultRequestTimeout,
		newClient: func(ctx context.Context, opts s3.Options, logger *slog.Logger) (storage.Client, error) {
			client, err := s3.NewS3Storage(ctx, opts, logger)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

// Sets the HTTP request ceiling applied to every client built afterwards
func (f *Factory) WithRequestTimeout(d time.Duration) *Factory {
	if d > 0 {
		f.requestTimeout = d
	}
	return f
}

// Builds a client for object-level operations; the bucket is mandatory
func (f *Factory) Build(ctx context.Context, cfg storage.Config) (storage.Client, error) {
	if cfg.Bucket == "" {
		return nil, errs.MissingBucket()
	}
	return f.build(ctx, cfg, cfg.Bucket)
}

// Builds a client not bound to any bucket, for bucket listing
func (f *Factory) BuildService(ctx context.Context, cfg storage.Config) (storage.Client, error) {
	return f.build(ctx, cfg, "")
}

func (f *Factory) build(ctx context.Context, cfg storage.Config, bucket string) (storage.Client, error) {
	resolved, err := endpoint.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	providerLogger := f.logger.With("provider", cfg.Provider.String())
	providerLogger.Debug("Building storage client", "region", resolved.Region, "endpoint", resolved.URL, "path_style", resolved.PathStyle, "bucket", bucket)

	return f.newClient(ctx, s3.Options{
		Region:         resolved.Region,
		Endpoint:       resolved.URL,
		PathStyle:      resolved.PathStyle,
		AccessKey:      cfg.AccessKey,
		SecretKey:      cfg.SecretKey,
		Bucket:         bucket,
		RequestTimeout: f.requestTimeout,
	}, providerLogger)
}
