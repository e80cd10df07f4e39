// File: internal/provider/registry/registry.go
package registry

import (
	"fmt"
	"ossgate/pkg/common"
	"sort"
	"strings"
	"sync"
)

// PatternKind selects how a region code is recovered from an endpoint host
type PatternKind int

const (
	// No inference possible for this provider
	PatternNone PatternKind = iota
	// Substring from the first Prefix up to the first Suffix, Prefix included
	PatternBetween
	// Second dot-separated segment, when the first segment equals Prefix
	PatternSegment
	// Text after the literal Prefix, up to the first dot
	PatternAfterPrefix
)

// RegionPattern describes the provider's hostname shape
type RegionPattern struct {
	Kind   PatternKind
	Prefix string
	Suffix string
}

// ServiceEndpoint overrides the endpoint used for bucket listing on providers
// whose service-level API lives on a different host than their objects
type ServiceEndpoint struct {
	URL string
	// When false the region is cleared and resolves to the custom placeholder
	KeepRegion bool
}

// Rule is one row of the provider rule table.
// The {region} placeholder in EndpointTemplate is replaced with the effective region.
type Rule struct {
	Provider      common.Provider
	DisplayName   string
	DefaultRegion string
	// Empty means SDK-native resolution (no custom endpoint)
	EndpointTemplate string
	// Region-specific endpoints consulted before the template (e.g. Qiniu zones)
	ZoneEndpoints map[string]string
	// Fixed values ignore the configured region entirely
	FixedRegion   string
	FixedEndpoint string
	PathStyle     bool
	RegionPattern RegionPattern
	ListBuckets   *ServiceEndpoint
	// Regions offered to users, for display only
	Regions []string
}

var (
	providerRegistry = make(map[common.Provider]Rule)
	registryMu       sync.RWMutex
)

// Adds a rule to the table; called from init() for the built-in providers
func RegisterProvider(rule Rule) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := common.ParseProvider(string(rule.Provider))
	if name == "" {
		panic("provider rule registered without a name")
	}
	if _, exists := providerRegistry[name]; exists {
		panic(fmt.Sprintf("provider %s already registered", name))
	}
	if rule.FixedEndpoint == "" && rule.EndpointTemplate != "" && !strings.Contains(rule.EndpointTemplate, "{region}") && len(rule.ZoneEndpoints) == 0 {
		panic(fmt.Sprintf("provider %s endpoint template has no {region} placeholder", name))
	}

	rule.Provider = name
	providerRegistry[name] = rule
}

// Returns a sorted list of all registered provider names
func GetSupportedProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		providers = append(providers, string(name))
	}
	sort.Strings(providers)
	return providers
}

func IsSupported(provider common.Provider) bool {
	_, exists := GetRule(provider)
	return exists
}

func GetRule(provider common.Provider) (Rule, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	rule, exists := providerRegistry[common.ParseProvider(string(provider))]
	return rule, exists
}

// Returns a copy of every rule, sorted by provider name
func GetAllRules() []Rule {
	registryMu.RLock()
	defer registryMu.RUnlock()

	rules := make([]Rule, 0, len(providerRegistry))
	for _, r := range providerRegistry {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Provider < rules[j].Provider
	})
	return rules
}

// Computes the endpoint URL for the given region; empty for SDK-native providers
func (r Rule) EndpointFor(region string) string {
	if r.FixedEndpoint != "" {
		return r.FixedEndpoint
	}
	if ep, ok := r.ZoneEndpoints[region]; ok {
		return ep
	}
	if r.EndpointTemplate == "" {
		return ""
	}
	return strings.ReplaceAll(r.EndpointTemplate, "{region}", region)
}

// Returns the region to use when the caller did not configure one
func (r Rule) EffectiveRegion(configured string) string {
	if r.FixedRegion != "" {
		return r.FixedRegion
	}
	if configured != "" {
		return configured
	}
	return r.DefaultRegion
}

// ProviderInfo is the public catalogue view of a rule
type ProviderInfo struct {
	Name             string   `json:"name" yaml:"name"`
	DisplayName      string   `json:"display_name" yaml:"display_name"`
	DefaultRegion    string   `json:"default_region" yaml:"default_region"`
	EndpointTemplate string   `json:"endpoint_template,omitempty" yaml:"endpoint_template,omitempty"`
	PathStyle        bool     `json:"path_style" yaml:"path_style"`
	Regions          []string `json:"regions" yaml:"regions"`
}

// Returns the catalogue of every registered provider, sorted by name
func Catalogue() []ProviderInfo {
	rules := GetAllRules()
	infos := make([]ProviderInfo, 0, len(rules))
	for _, r := range rules {
		tmpl := r.EndpointTemplate
		if r.FixedEndpoint != "" {
			tmpl = r.FixedEndpoint
		}
		infos = append(infos, ProviderInfo{
			Name:             string(r.Provider),
			DisplayName:      r.DisplayName,
			DefaultRegion:    r.EffectiveRegion(""),
			EndpointTemplate: tmpl,
			PathStyle:        r.PathStyle,
			Regions:          append([]string(nil), r.Regions...),
		})
	}
	return infos
}
