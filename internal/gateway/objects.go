// File: internal/gateway/objects.go
package gateway

import (
	"context"
	"ossgate/internal/errs"
	"ossgate/pkg/storage"
)

// Lists one page under the prefix. Common prefixes become directory items,
// contents become file items.
func (g *Gateway) ListObjects(ctx context.Context, cfg storage.Config, params *storage.ListParams) ([]storage.Item, error) {
	p := params.WithDefaults()

	listing, err := attemptWithRecovery(ctx, g, opListObjects, cfg, g.builder.Build, g.timeouts.List,
		func(ctx context.Context, client storage.Client) (storage.Listing, error) {
			return client.ListObjects(ctx, p)
		})
	if err != nil {
		return nil, err
	}

	return toItems(listing), nil
}

func toItems(listing storage.Listing) []storage.Item {
	items := make([]storage.Item, 0, len(listing.CommonPrefixes)+len(listing.Contents))
	for _, prefix := range listing.CommonPrefixes {
		items = append(items, storage.Item{
			Key:         prefix,
			IsDirectory: true,
		})
	}
	for _, obj := range listing.Contents {
		size := uint64(0)
		if obj.Size > 0 {
			size = uint64(obj.Size)
		}
		items = append(items, storage.Item{
			Key:          obj.Key,
			Size:         size,
			LastModified: normalizeTimestamp(obj.LastModified),
		})
	}
	return items
}

// Stores the file and returns its key
func (g *Gateway) Upload(ctx context.Context, cfg storage.Config, params storage.UploadParams) (string, error) {
	if params.FileName == "" {
		return "", errs.New(errs.KindInvalidInput, "file name is required")
	}
	key := objectKey(params.Path, params.FileName)
	contentType := detectContentType(params.FileName, params.ContentType, params.FileData)

	_, err := attemptWithRecovery(ctx, g, opUpload, cfg, g.builder.Build, g.timeouts.Transfer,
		func(ctx context.Context, client storage.Client) (struct{}, error) {
			return struct{}{}, client.PutObject(ctx, key, params.FileData, contentType)
		})
	if err != nil {
		return "", err
	}

	g.logger.Info("Uploaded object", "provider", cfg.Provider.String(), "bucket", cfg.Bucket, "key", key, "bytes", len(params.FileData), "content_type", contentType)
	return key, nil
}

func (g *Gateway) Download(ctx context.Context, cfg storage.Config, key string) ([]byte, error) {
	if key == "" {
		return nil, errs.New(errs.KindInvalidInput, "object key is required")
	}

	return attemptWithRecovery(ctx, g, opDownload, cfg, g.builder.Build, g.timeouts.Transfer,
		func(ctx context.Context, client storage.Client) ([]byte, error) {
			return client.GetObject(ctx, key)
		})
}

// Removes the object; deleting a missing key succeeds the same way
func (g *Gateway) Delete(ctx context.Context, cfg storage.Config, key string) (string, error) {
	if key == "" {
		return "", errs.New(errs.KindInvalidInput, "object key is required")
	}

	_, err := attemptWithRecovery(ctx, g, opDelete, cfg, g.builder.Build, g.timeouts.Control,
		func(ctx context.Context, client storage.Client) (struct{}, error) {
			return struct{}{}, client.DeleteObject(ctx, key)
		})
	if err != nil {
		return "", err
	}

	g.logger.Info("Deleted object", "provider", cfg.Provider.String(), "bucket", cfg.Bucket, "key", key)
	return key, nil
}

// Creates a zero-byte folder marker and returns its key
func (g *Gateway) CreateFolder(ctx context.Context, cfg storage.Config, params storage.CreateFolderParams) (string, error) {
	if params.FolderName == "" {
		return "", errs.New(errs.KindInvalidInput, "folder name is required")
	}
	key := folderKey(params.Path, params.FolderName)

	_, err := attemptWithRecovery(ctx, g, opCreateFolder, cfg, g.builder.Build, g.timeouts.Control,
		func(ctx context.Context, client storage.Client) (struct{}, error) {
			return struct{}{}, client.PutObject(ctx, key, []byte{}, "")
		})
	if err != nil {
		return "", err
	}
	return key, nil
}
