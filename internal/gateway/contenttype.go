// File: internal/gateway/contenttype.go
package gateway

import (
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const defaultContentType = "application/octet-stream"

// Picks the upload content type: the caller's value, then the file extension,
// then content sniffing
func detectContentType(fileName, explicit string, data []byte) string {
	if explicit != "" {
		return explicit
	}
	if byExt := mime.TypeByExtension(filepath.Ext(fileName)); byExt != "" {
		return byExt
	}
	if len(data) > 0 {
		if sniffed := mimetype.Detect(data); sniffed != nil {
			return sniffed.String()
		}
	}
	return defaultContentType
}
