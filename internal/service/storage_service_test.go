package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"ossgate/internal/errs"
	"ossgate/pkg/common"
	"ossgate/pkg/storage"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles map[string]storage.Config

func (p fakeProfiles) Profile(name string) (storage.Config, error) {
	cfg, ok := p[name]
	if !ok {
		return storage.Config{}, errs.New(errs.KindConfig, fmt.Sprintf("profile %q not found", name))
	}
	return cfg, nil
}

func (p fakeProfiles) ProfileNames() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fakeGateway answers bucket listings per provider and records object calls
type fakeGateway struct {
	mu      sync.Mutex
	buckets map[common.Provider][]storage.BucketSummary
	failFor map[common.Provider]error
	objects map[string][]byte
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		buckets: make(map[common.Provider][]storage.BucketSummary),
		failFor: make(map[common.Provider]error),
		objects: make(map[string][]byte),
	}
}

func (g *fakeGateway) ListBuckets(ctx context.Context, cfg storage.Config) ([]storage.BucketSummary, error) {
	if err := g.failFor[cfg.Provider]; err != nil {
		return nil, err
	}
	return g.buckets[cfg.Provider], nil
}

func (g *fakeGateway) ListObjects(ctx context.Context, cfg storage.Config, params *storage.ListParams) ([]storage.Item, error) {
	if cfg.Bucket == "" {
		return nil, errs.MissingBucket()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	items := make([]storage.Item, 0, len(g.objects))
	for key, data := range g.objects {
		items = append(items, storage.Item{Key: key, Size: uint64(len(data))})
	}
	return items, nil
}

func (g *fakeGateway) Upload(ctx context.Context, cfg storage.Config, params storage.UploadParams) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := params.FileName
	if params.Path != "" {
		key = params.Path + "/" + key
	}
	g.objects[key] = params.FileData
	return key, nil
}

func (g *fakeGateway) Download(ctx context.Context, cfg storage.Config, key string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	data, ok := g.objects[key]
	if !ok {
		return nil, errs.Provider("NoSuchKey: The specified key does not exist.", nil)
	}
	return data, nil
}

func (g *fakeGateway) Delete(ctx context.Context, cfg storage.Config, key string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.objects, key)
	return key, nil
}

func (g *fakeGateway) CreateFolder(ctx context.Context, cfg storage.Config, params storage.CreateFolderParams) (string, error) {
	return "", errs.OperationTimeout("create folder")
}

func newTestService(gw *fakeGateway, profiles fakeProfiles) *StorageService {
	return NewStorageService(gw, profiles, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProfileConfig(t *testing.T) {
	profiles := fakeProfiles{"prod": {Provider: common.Aliyun, Bucket: "photos"}}
	s := newTestService(newFakeGateway(), profiles)

	cfg, err := s.ProfileConfig("prod", "")
	require.NoError(t, err)
	assert.Equal(t, "photos", cfg.Bucket)

	cfg, err = s.ProfileConfig("prod", "archive")
	require.NoError(t, err)
	assert.Equal(t, "archive", cfg.Bucket)
	assert.Equal(t, "photos", profiles["prod"].Bucket, "profiles are not modified")

	_, err = s.ProfileConfig("missing", "")
	assert.True(t, errs.IsConfig(err))
}

func TestEnvelopesOnSuccess(t *testing.T) {
	s := newTestService(newFakeGateway(), nil)
	cfg := storage.Config{Provider: common.MinIO, Bucket: "scratch"}
	ctx := context.Background()

	up := s.Upload(ctx, cfg, storage.UploadParams{FileName: "a.txt", FileData: []byte("abc"), Path: "docs"})
	require.True(t, up.Success)
	assert.Equal(t, "docs/a.txt", *up.Data)
	assert.Equal(t, "File uploaded", up.Message)
	assert.Empty(t, up.Error)

	down := s.Download(ctx, cfg, storage.DownloadParams{Key: "docs/a.txt"})
	require.True(t, down.Success)
	assert.Equal(t, []byte("abc"), *down.Data)
	assert.Equal(t, "File downloaded", down.Message)

	del := s.Delete(ctx, cfg, storage.DeleteParams{Key: "docs/a.txt"})
	require.True(t, del.Success)
	assert.Equal(t, "File deleted", del.Message)

	list := s.ListObjects(ctx, cfg, nil)
	require.True(t, list.Success)
	assert.Empty(t, *list.Data)
}

func TestEnvelopesOnFailure(t *testing.T) {
	s := newTestService(newFakeGateway(), nil)
	ctx := context.Background()

	down := s.Download(ctx, storage.Config{Provider: common.MinIO, Bucket: "b"}, storage.DownloadParams{Key: "missing"})
	assert.False(t, down.Success)
	assert.Nil(t, down.Data)
	assert.Equal(t, "provider", down.Kind)
	assert.Contains(t, down.Error, "NoSuchKey")

	list := s.ListObjects(ctx, storage.Config{Provider: common.MinIO}, nil)
	assert.False(t, list.Success)
	assert.Equal(t, "config", list.Kind)
	assert.Equal(t, "missing bucket name", list.Error)

	folder := s.CreateFolder(ctx, storage.Config{Provider: common.MinIO, Bucket: "b"}, storage.CreateFolderParams{FolderName: "x"})
	assert.False(t, folder.Success)
	assert.Equal(t, "timeout", folder.Kind)
}

func TestListAllBuckets(t *testing.T) {
	gw := newFakeGateway()
	gw.buckets[common.Aliyun] = []storage.BucketSummary{{Name: "photos"}, {Name: "logs"}}
	gw.buckets[common.Tencent] = []storage.BucketSummary{{Name: "media-125"}}
	gw.failFor[common.Huawei] = errs.Provider("InvalidAccessKeyId: The access key does not exist", nil)

	profiles := fakeProfiles{
		"prod":    {Provider: common.Aliyun},
		"cos":     {Provider: common.Tencent},
		"obs":     {Provider: common.Huawei},
	}
	s := newTestService(gw, profiles)

	results := s.ListAllBuckets(context.Background(), []string{"prod", "obs", "ghost", "cos"})
	require.Len(t, results, 4)

	byName := make(map[string]ProfileBuckets)
	for _, r := range results {
		byName[r.Profile] = r
	}
	assert.Equal(t, []string{"cos", "ghost", "obs", "prod"}, []string{results[0].Profile, results[1].Profile, results[2].Profile, results[3].Profile})

	require.True(t, byName["prod"].Result.Success)
	assert.Len(t, *byName["prod"].Result.Data, 2)
	assert.Equal(t, "aliyun", byName["prod"].Provider)

	require.True(t, byName["cos"].Result.Success)
	assert.Equal(t, "media-125", (*byName["cos"].Result.Data)[0].Name)

	assert.False(t, byName["obs"].Result.Success)
	assert.Equal(t, "provider", byName["obs"].Result.Kind)

	assert.False(t, byName["ghost"].Result.Success)
	assert.Equal(t, "config", byName["ghost"].Result.Kind)
	assert.Empty(t, byName["ghost"].Provider)
}

func TestListAllBucketsEmpty(t *testing.T) {
	s := newTestService(newFakeGateway(), fakeProfiles{})
	assert.Nil(t, s.ListAllBuckets(context.Background(), nil))
}
