// File: internal/provider/endpoint/resolve.go
package endpoint

import (
	"ossgate/internal/errs"
	"ossgate/internal/provider/registry"
	"ossgate/pkg/storage"
	"strings"
)

// Region reported when the caller supplied an endpoint without a region
const CustomRegion = "custom"

// Computes the effective region and endpoint for one attempt.
// An explicit cfg.Endpoint wins over every provider default and is used verbatim.
func Resolve(cfg storage.Config) (storage.ResolvedEndpoint, error) {
	rule, ok := registry.GetRule(cfg.Provider)
	if !ok {
		return storage.ResolvedEndpoint{}, errs.UnsupportedProvider(string(cfg.Provider))
	}

	if cfg.Endpoint != "" {
		region := cfg.Region
		if region == "" {
			region = CustomRegion
		}
		return storage.ResolvedEndpoint{Region: region, URL: cfg.Endpoint, PathStyle: rule.PathStyle}, nil
	}

	region := rule.EffectiveRegion(cfg.Region)
	return storage.ResolvedEndpoint{
		Region:    region,
		URL:       rule.EndpointFor(region),
		PathStyle: rule.PathStyle,
	}, nil
}

// Rewrites the config for bucket listing on providers whose service API lives on
// a dedicated host. Configs with an explicit endpoint are left alone.
func ForBucketListing(cfg storage.Config) storage.Config {
	rule, ok := registry.GetRule(cfg.Provider)
	if !ok || rule.ListBuckets == nil || cfg.Endpoint != "" {
		return cfg
	}

	region := ""
	if rule.ListBuckets.KeepRegion {
		region = rule.EffectiveRegion(cfg.Region)
	}
	return cfg.WithCorrection(rule.ListBuckets.URL, region)
}

// Prepends https:// to bare hosts
func EnsureScheme(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}
