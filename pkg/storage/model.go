// File: pkg/storage/model.go
package storage

import (
	"fmt"
	"ossgate/pkg/common"
)

// Config is the uniform connection shape shared by every provider.
// Empty strings mean "not set". It is passed by value; a redirect correction
// produces a new value instead of mutating the caller's copy.
type Config struct {
	Provider  common.Provider `json:"provider" yaml:"provider" mapstructure:"provider" validate:"required"`
	AccessKey string          `json:"access_key" yaml:"access_key" mapstructure:"access_key"`
	SecretKey string          `json:"secret_key" yaml:"secret_key" mapstructure:"secret_key"`
	Region    string          `json:"region,omitempty" yaml:"region,omitempty" mapstructure:"region"`
	// Absolute URL or bare host; always takes precedence over provider defaults
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty" mapstructure:"bucket"`
}

// Returns a copy of the config pointed at a corrected endpoint and region
func (c Config) WithCorrection(endpoint, region string) Config {
	c.Endpoint = endpoint
	c.Region = region
	return c
}

// Returns a copy of the config with secrets masked, safe for logs and output
func (c Config) Redacted() Config {
	if c.AccessKey != "" {
		c.AccessKey = maskSecret(c.AccessKey)
	}
	if c.SecretKey != "" {
		c.SecretKey = "****"
	}
	return c
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// ResolvedEndpoint is the effective region/endpoint pair for one attempt.
// An empty URL means the SDK resolves the endpoint natively (AWS).
type ResolvedEndpoint struct {
	Region string
	URL    string
	// Path-style addressing (bucket in the path rather than the host)
	PathStyle bool
}

// ListParams controls a single-page object listing
type ListParams struct {
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	// Forwarded to the provider as the page size; 0 uses the provider default
	MaxKeys int32 `json:"max_keys,omitempty" yaml:"max_keys,omitempty" validate:"gte=0"`
}

const DefaultDelimiter = "/"

// Returns params with defaults applied; a nil receiver yields the defaults
func (p *ListParams) WithDefaults() ListParams {
	out := ListParams{Delimiter: DefaultDelimiter}
	if p == nil {
		return out
	}
	out.Prefix = p.Prefix
	out.MaxKeys = p.MaxKeys
	if p.Delimiter != "" {
		out.Delimiter = p.Delimiter
	}
	return out
}

// Item is one entry of an object listing: either a directory (common prefix)
// or a file (content entry)
type Item struct {
	Key  string `json:"key" yaml:"key"`
	Size uint64 `json:"size" yaml:"size"`
	// RFC 3339; nil for directories and for timestamps that could not be parsed
	LastModified *string `json:"last_modified" yaml:"last_modified"`
	IsDirectory  bool    `json:"is_directory" yaml:"is_directory"`
}

type BucketSummary struct {
	Name         string  `json:"name" yaml:"name"`
	CreationDate *string `json:"creation_date" yaml:"creation_date"`
}

type UploadParams struct {
	FileName    string `json:"file_name" validate:"required"`
	FileData    []byte `json:"file_data"`
	ContentType string `json:"content_type,omitempty"`
	Path        string `json:"path,omitempty"`
}

type DownloadParams struct {
	Key string `json:"key" validate:"required"`
}

type DeleteParams struct {
	Key string `json:"key" validate:"required"`
}

type CreateFolderParams struct {
	FolderName string `json:"folder_name" validate:"required"`
	Path       string `json:"path,omitempty"`
}

// Listing is the raw single page a Client returns
type Listing struct {
	CommonPrefixes []string
	Contents       []ListedObject
}

type ListedObject struct {
	Key  string
	Size int64
	// Raw timestamp text as reported by the backend, possibly empty
	LastModified string
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes) // Fallback if extremely large
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
