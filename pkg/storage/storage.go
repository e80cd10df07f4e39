// File: pkg/storage/storage.go
package storage

import "context"

// Client is the storage surface the gateway drives. One client is bound to
// one resolved endpoint and (for object operations) one bucket; it is built
// fresh per call and discarded afterwards.
type Client interface {
	// Returns a single page of the bucket listing
	ListObjects(ctx context.Context, params ListParams) (Listing, error)

	// Lists the buckets visible to the credentials (no bucket binding required)
	ListBuckets(ctx context.Context) ([]BucketSummary, error)

	PutObject(ctx context.Context, key string, data []byte, contentType string) error

	GetObject(ctx context.Context, key string) ([]byte, error)

	// Deleting a missing key is not an error
	DeleteObject(ctx context.Context, key string) error
}
