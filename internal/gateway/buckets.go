// File: internal/gateway/buckets.go
package gateway

import (
	"context"
	"ossgate/internal/provider/endpoint"
	"ossgate/pkg/storage"
)

// Lists the buckets visible to the credentials. Providers with a dedicated
// service host are pointed at it first; no bucket is required.
func (g *Gateway) ListBuckets(ctx context.Context, cfg storage.Config) ([]storage.BucketSummary, error) {
	serviceCfg := endpoint.ForBucketListing(cfg)

	buckets, err := attemptWithRecovery(ctx, g, opListBuckets, serviceCfg, g.builder.BuildService, g.timeouts.Control,
		func(ctx context.Context, client storage.Client) ([]storage.BucketSummary, error) {
			return client.ListBuckets(ctx)
		})
	if err != nil {
		return nil, err
	}

	for i := range buckets {
		if buckets[i].CreationDate != nil {
			buckets[i].CreationDate = normalizeTimestamp(*buckets[i].CreationDate)
		}
	}
	return buckets, nil
}
