// File: internal/gateway/timestamps.go
package gateway

import "time"

// Tried in order; the first layout that parses wins
var timestampLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC3339Nano,
}

// Normalizes a backend timestamp to RFC 3339 UTC; nil when nothing parses
func normalizeTimestamp(raw string) *string {
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			out := t.UTC().Format(time.RFC3339)
			return &out
		}
	}
	return nil
}
