// File: internal/provider/endpoint/infer.go
package endpoint

import (
	"ossgate/internal/provider/registry"
	"ossgate/pkg/common"
	"strings"
)

// Recovers the provider's region code from an endpoint host using the rule's
// hostname pattern. Returns false when the host does not have the expected shape.
func InferRegion(provider common.Provider, endpoint string) (string, bool) {
	rule, ok := registry.GetRule(provider)
	if !ok {
		return "", false
	}

	host := hostOf(endpoint)
	if host == "" {
		return "", false
	}

	pattern := rule.RegionPattern
	switch pattern.Kind {
	case registry.PatternBetween:
		return between(host, pattern.Prefix, pattern.Suffix)
	case registry.PatternSegment:
		return segment(host, pattern.Prefix)
	case registry.PatternAfterPrefix:
		return afterPrefix(host, pattern.Prefix)
	default:
		return "", false
	}
}

// Strips a scheme:// prefix and everything from the first slash
func hostOf(endpoint string) string {
	host := strings.TrimSpace(endpoint)
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	return host
}

// The prefix is part of the region code (aliyun regions are "oss-cn-...")
func between(host, prefix, suffix string) (string, bool) {
	start := strings.Index(host, prefix)
	end := strings.Index(host, suffix)
	if start < 0 || end < 0 || end <= start {
		return "", false
	}
	return host[start:end], true
}

func segment(host, first string) (string, bool) {
	parts := strings.Split(host, ".")
	if len(parts) < 3 || parts[0] != first || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func afterPrefix(host, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(host, prefix)
	if !ok {
		return "", false
	}
	if i := strings.Index(rest, "."); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
