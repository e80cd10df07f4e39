// File: pkg/formatter/storage_formatter.go
package formatter

import (
	"fmt"
	"ossgate/internal/provider/registry"
	"ossgate/pkg/storage"
	"sort"
	"strings"
)

type StorageFormatter struct{}

func NewStorageFormatter() *StorageFormatter {
	return &StorageFormatter{}
}

// BucketRow is one line of a multi-profile bucket listing
type BucketRow struct {
	Profile  string
	Provider string
	Bucket   storage.BucketSummary
}

func (f *StorageFormatter) FormatBucketList(rows []BucketRow) string {
	table := NewTable([]string{"BUCKET NAME", "PROFILE", "PROVIDER", "CREATED"})

	for _, row := range rows {
		table.AddRow([]string{
			row.Bucket.Name,
			row.Profile,
			row.Provider,
			formatDate(row.Bucket.CreationDate),
		})
	}

	return table.String()
}

func (f *StorageFormatter) FormatItemList(bucket, prefix string, items []storage.Item) string {
	var sb strings.Builder

	location := bucket
	if prefix != "" {
		location += "/" + strings.TrimPrefix(prefix, "/")
	}
	sb.WriteString(FormatHeaderSection("Objects in " + location))
	sb.WriteString("\n\n")

	table := NewTable([]string{"KEY", "TYPE", "SIZE", "LAST MODIFIED"})
	var dirs, files int
	var total int64
	for _, item := range items {
		kind, size := "FILE", storage.FormatBytes(int64(item.Size))
		if item.IsDirectory {
			kind, size = "DIR", "-"
			dirs++
		} else {
			files++
			total += int64(item.Size)
		}
		table.AddRow([]string{item.Key, kind, size, formatDate(item.LastModified)})
	}

	sb.WriteString(table.String())
	sb.WriteString(fmt.Sprintf("\n%d directories, %d files, %s\n", dirs, files, storage.FormatBytes(total)))
	return sb.String()
}

func (f *StorageFormatter) FormatProviders(providers []registry.ProviderInfo) string {
	table := NewTable([]string{"PROVIDER", "NAME", "DEFAULT REGION", "ENDPOINT", "REGIONS"})

	for _, p := range providers {
		endpoint := p.EndpointTemplate
		if endpoint == "" {
			endpoint = "(SDK-native)"
		}
		table.AddRow([]string{
			p.Name,
			p.DisplayName,
			p.DefaultRegion,
			endpoint,
			fmt.Sprintf("%d", len(p.Regions)),
		})
	}

	return table.String()
}

// Formats one provider's region catalogue
func (f *StorageFormatter) FormatProviderDetails(p registry.ProviderInfo) string {
	var sb strings.Builder

	sb.WriteString(FormatHeaderSection("Provider: " + p.DisplayName))
	sb.WriteString("\n\n")
	sb.WriteString(FormatSectionTitle("Overview"))
	sb.WriteString("\n")

	overview := NewTable([]string{"Parameter", "Value"})
	overview.AddRow([]string{"Identifier", p.Name})
	overview.AddRow([]string{"Default Region", p.DefaultRegion})
	overview.AddRow([]string{"Endpoint", p.EndpointTemplate})
	overview.AddRow([]string{"Path Style", fmt.Sprintf("%t", p.PathStyle)})
	sb.WriteString(overview.String())
	sb.WriteString("\n\n")

	if len(p.Regions) > 0 {
		sb.WriteString(FormatSectionTitle("Regions"))
		sb.WriteString("\n")
		regions := NewTable([]string{"Region"})
		for _, r := range p.Regions {
			regions.AddRow([]string{r})
		}
		sb.WriteString(regions.String())
		sb.WriteString("\n")
	}

	return sb.String()
}

// Formats flattened config settings as a key/value table
func (f *StorageFormatter) FormatSettings(settings map[string]any) string {
	flat := make(map[string]string)
	flatten("", settings, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := NewTable([]string{"KEY", "VALUE"})
	for _, k := range keys {
		table.AddRow([]string{k, flat[k]})
	}
	return table.String()
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = fmt.Sprint(v)
	}
}

func formatDate(ts *string) string {
	if ts == nil {
		return "-"
	}
	return *ts
}
