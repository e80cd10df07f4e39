package gateway

import (
	"context"
	"io"
	"log/slog"
	"ossgate/internal/errs"
	"ossgate/pkg/storage"
	"sort"
	"strings"
	"sync"
	"time"
)

// step is one scripted behaviour of the fake backend, consumed per call
type step func(ctx context.Context) error

func redirectTo(host string) step {
	return func(ctx context.Context) error {
		text := "operation error S3: ListObjectsV2, https response error StatusCode: 301, api error PermanentRedirect\n" +
			"<?xml version=\"1.0\" encoding=\"UTF-8\"?><Error><Code>PermanentRedirect</Code><Endpoint>" + host + "</Endpoint></Error>"
		return errs.Provider(text, nil)
	}
}

func failWith(text string) step {
	return func(ctx context.Context) error {
		return errs.Provider(text, nil)
	}
}

// Blocks without honouring ctx, then succeeds
func stall(d time.Duration) step {
	return func(ctx context.Context) error {
		time.Sleep(d)
		return nil
	}
}

// fakeBackend is an in-memory storage double that also acts as the builder
type fakeBackend struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	modified     map[string]string
	buckets      []storage.BucketSummary
	script       []step
	builds       []storage.Config
	calls        int
}

func newFakeBackend(script ...step) *fakeBackend {
	return &fakeBackend{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		modified:     make(map[string]string),
		script:       script,
	}
}

func (b *fakeBackend) Build(ctx context.Context, cfg storage.Config) (storage.Client, error) {
	if cfg.Bucket == "" {
		return nil, errs.MissingBucket()
	}
	return b.BuildService(ctx, cfg)
}

func (b *fakeBackend) BuildService(ctx context.Context, cfg storage.Config) (storage.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.builds = append(b.builds, cfg)
	return &fakeClient{backend: b}, nil
}

func (b *fakeBackend) Builds() []storage.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]storage.Config(nil), b.builds...)
}

func (b *fakeBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// Records the call and runs the next scripted step, if any
func (b *fakeBackend) next(ctx context.Context) error {
	b.mu.Lock()
	b.calls++
	var s step
	if len(b.script) > 0 {
		s = b.script[0]
		b.script = b.script[1:]
	}
	b.mu.Unlock()

	if s == nil {
		return nil
	}
	return s(ctx)
}

type fakeClient struct {
	backend *fakeBackend
}

func (c *fakeClient) ListObjects(ctx context.Context, params storage.ListParams) (storage.Listing, error) {
	if err := c.backend.next(ctx); err != nil {
		return storage.Listing{}, err
	}
	b := c.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var listing storage.Listing
	seen := make(map[string]bool)
	for _, key := range keys {
		if !strings.HasPrefix(key, params.Prefix) {
			continue
		}
		rest := key[len(params.Prefix):]
		if i := strings.Index(rest, params.Delimiter); params.Delimiter != "" && i >= 0 {
			cp := params.Prefix + rest[:i+len(params.Delimiter)]
			if !seen[cp] {
				seen[cp] = true
				listing.CommonPrefixes = append(listing.CommonPrefixes, cp)
			}
			continue
		}
		listing.Contents = append(listing.Contents, storage.ListedObject{
			Key:          key,
			Size:         int64(len(b.objects[key])),
			LastModified: b.modified[key],
		})
	}
	return listing, nil
}

func (c *fakeClient) ListBuckets(ctx context.Context) ([]storage.BucketSummary, error) {
	if err := c.backend.next(ctx); err != nil {
		return nil, err
	}
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	return append([]storage.BucketSummary(nil), c.backend.buckets...), nil
}

func (c *fakeClient) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	if err := c.backend.next(ctx); err != nil {
		return err
	}
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	c.backend.objects[key] = append([]byte(nil), data...)
	c.backend.contentTypes[key] = contentType
	return nil
}

func (c *fakeClient) GetObject(ctx context.Context, key string) ([]byte, error) {
	if err := c.backend.next(ctx); err != nil {
		return nil, err
	}
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	data, ok := c.backend.objects[key]
	if !ok {
		return nil, errs.Provider("NoSuchKey: The specified key does not exist.", nil)
	}
	return append([]byte(nil), data...), nil
}

func (c *fakeClient) DeleteObject(ctx context.Context, key string) error {
	if err := c.backend.next(ctx); err != nil {
		return err
	}
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	delete(c.backend.objects, key)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shortTimeouts() Timeouts {
	return Timeouts{
		List:     50 * time.Millisecond,
		Transfer: 50 * time.Millisecond,
		Control:  50 * time.Millisecond,
	}
}
