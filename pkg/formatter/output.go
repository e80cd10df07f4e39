// File: pkg/formatter/output.go
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Writes v as json or yaml; table output is rendered by the caller
func Encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (expected %s, %s or %s)", format, OutputTable, OutputJSON, OutputYAML)
	}
}

var secretKeys = map[string]bool{"access_key": true, "secret_key": true}

// Returns a copy of nested settings with credential values masked
func RedactSettings(settings map[string]any) map[string]any {
	out := make(map[string]any, len(settings))
	for k, v := range settings {
		switch val := v.(type) {
		case map[string]any:
			out[k] = RedactSettings(val)
		default:
			if secretKeys[k] {
				out[k] = "****"
			} else {
				out[k] = v
			}
		}
	}
	return out
}
