// File: internal/provider/endpoint/extract.go
package endpoint

import "strings"

const (
	endpointOpenTag  = "<Endpoint>"
	endpointCloseTag = "</Endpoint>"
)

// Scans provider error text for the corrected endpoint embedded in a redirect
// response body. Only the first <Endpoint> element is considered; a blank value
// counts as absent.
func ExtractEndpoint(text string) (string, bool) {
	start := strings.Index(text, endpointOpenTag)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(endpointOpenTag):]

	end := strings.Index(rest, endpointCloseTag)
	if end < 0 {
		return "", false
	}

	value := strings.TrimSpace(rest[:end])
	if value == "" {
		return "", false
	}
	return value, true
}
