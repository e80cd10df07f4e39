// File: internal/service/storage_service.go
package service

import (
	"context"
	"log/slog"
	"ossgate/pkg/storage"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Maximum number of profiles queried at once by ListAllBuckets
const maxConcurrentProfiles = 4

// Gateway is the core the service drives
type Gateway interface {
	ListBuckets(ctx context.Context, cfg storage.Config) ([]storage.BucketSummary, error)
	ListObjects(ctx context.Context, cfg storage.Config, params *storage.ListParams) ([]storage.Item, error)
	Upload(ctx context.Context, cfg storage.Config, params storage.UploadParams) (string, error)
	Download(ctx context.Context, cfg storage.Config, key string) ([]byte, error)
	Delete(ctx context.Context, cfg storage.Config, key string) (string, error)
	CreateFolder(ctx context.Context, cfg storage.Config, params storage.CreateFolderParams) (string, error)
}

// ProfileSource resolves named connection profiles
type ProfileSource interface {
	Profile(name string) (storage.Config, error)
	ProfileNames() []string
}

// StorageService wraps every gateway outcome into the result envelope
type StorageService struct {
	gateway  Gateway
	profiles ProfileSource
	logger   *slog.Logger
}

func NewStorageService(gateway Gateway, profiles ProfileSource, logger *slog.Logger) *StorageService {
	return &StorageService{
		gateway:  gateway,
		profiles: profiles,
		logger:   logger.With("service", "StorageService"),
	}
}

// --- Profiles ---

// Resolves a profile into a config; a non-empty bucket overrides the profile's
func (s *StorageService) ProfileConfig(name, bucket string) (storage.Config, error) {
	cfg, err := s.profiles.Profile(name)
	if err != nil {
		return storage.Config{}, err
	}
	if bucket != "" {
		cfg.Bucket = bucket
	}
	return cfg, nil
}

func (s *StorageService) ProfileNames() []string {
	return s.profiles.ProfileNames()
}

// --- Bucket Operations ---

// ProfileBuckets is the bucket listing of one profile
type ProfileBuckets struct {
	Profile  string                                `json:"profile" yaml:"profile"`
	Provider string                                `json:"provider" yaml:"provider"`
	Result   storage.Result[[]storage.BucketSummary] `json:"result" yaml:"result"`
}

func (s *StorageService) ListBuckets(ctx context.Context, cfg storage.Config) storage.Result[[]storage.BucketSummary] {
	s.logger.Debug("Starting ListBuckets operation", "provider", cfg.Provider)

	buckets, err := s.gateway.ListBuckets(ctx, cfg)
	if err != nil {
		s.logger.Error("Failed to list buckets", "provider", cfg.Provider, "error", err)
	}
	return storage.Envelope(buckets, err, "")
}

// Lists buckets of several profiles concurrently. A failing profile is
// reported in its own envelope and does not fail the others.
func (s *StorageService) ListAllBuckets(ctx context.Context, profileNames []string) []ProfileBuckets {
	if len(profileNames) == 0 {
		return nil
	}

	s.logger.Debug("Starting ListAllBuckets operation", "profiles", profileNames)

	results := make([]ProfileBuckets, len(profileNames))
	var g errgroup.Group
	g.SetLimit(maxConcurrentProfiles)

	for i, name := range profileNames {
		g.Go(func() error {
			entry := ProfileBuckets{Profile: name}

			cfg, err := s.profiles.Profile(name)
			if err != nil {
				s.logger.Error("Failed to resolve profile", "profile", name, "error", err)
				entry.Result = storage.Failure[[]storage.BucketSummary](err)
				results[i] = entry
				return nil
			}

			entry.Provider = cfg.Provider.String()
			entry.Result = s.ListBuckets(ctx, cfg)
			if entry.Result.Success {
				s.logger.Debug("Successfully fetched buckets", "profile", name, "count", len(*entry.Result.Data))
			}
			results[i] = entry
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Profile < results[j].Profile
	})
	return results
}

// --- Object Operations ---

func (s *StorageService) ListObjects(ctx context.Context, cfg storage.Config, params *storage.ListParams) storage.Result[[]storage.Item] {
	s.logger.Debug("Starting ListObjects operation", "bucket", cfg.Bucket, "provider", cfg.Provider)

	items, err := s.gateway.ListObjects(ctx, cfg, params)
	if err != nil {
		s.logger.Error("Failed to list objects", "bucket", cfg.Bucket, "provider", cfg.Provider, "error", err)
	}
	return storage.Envelope(items, err, "")
}

func (s *StorageService) Upload(ctx context.Context, cfg storage.Config, params storage.UploadParams) storage.Result[string] {
	s.logger.Debug("Starting Upload operation", "bucket", cfg.Bucket, "provider", cfg.Provider, "file", params.FileName, "path", params.Path)

	key, err := s.gateway.Upload(ctx, cfg, params)
	if err != nil {
		s.logger.Error("Failed to upload file", "bucket", cfg.Bucket, "provider", cfg.Provider, "file", params.FileName, "error", err)
	}
	return storage.Envelope(key, err, "File uploaded")
}

func (s *StorageService) Download(ctx context.Context, cfg storage.Config, params storage.DownloadParams) storage.Result[[]byte] {
	s.logger.Debug("Starting Download operation", "bucket", cfg.Bucket, "provider", cfg.Provider, "key", params.Key)

	data, err := s.gateway.Download(ctx, cfg, params.Key)
	if err != nil {
		s.logger.Error("Failed to download file", "bucket", cfg.Bucket, "provider", cfg.Provider, "key", params.Key, "error", err)
	}
	return storage.Envelope(data, err, "File downloaded")
}

func (s *StorageService) Delete(ctx context.Context, cfg storage.Config, params storage.DeleteParams) storage.Result[string] {
	s.logger.Debug("Starting Delete operation", "bucket", cfg.Bucket, "provider", cfg.Provider, "key", params.Key)

	key, err := s.gateway.Delete(ctx, cfg, params.Key)
	if err != nil {
		s.logger.Error("Failed to delete file", "bucket", cfg.Bucket, "provider", cfg.Provider, "key", params.Key, "error", err)
	}
	return storage.Envelope(key, err, "File deleted")
}

func (s *StorageService) CreateFolder(ctx context.Context, cfg storage.Config, params storage.CreateFolderParams) storage.Result[string] {
	s.logger.Debug("Starting CreateFolder operation", "bucket", cfg.Bucket, "provider", cfg.Provider, "folder", params.FolderName, "path", params.Path)

	key, err := s.gateway.CreateFolder(ctx, cfg, params)
	if err != nil {
		s.logger.Error("Failed to create folder", "bucket", cfg.Bucket, "provider", cfg.Provider, "folder", params.FolderName, "error", err)
	}
	return storage.Envelope(key, err, "Folder created")
}
