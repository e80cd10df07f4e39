// File: internal/gateway/keys.go
package gateway

import "strings"

// Joins an optional path prefix and a name, trimming one trailing slash from the prefix
func objectKey(path, name string) string {
	if path == "" {
		return name
	}
	return strings.TrimSuffix(path, "/") + "/" + name
}

// Folder markers are zero-byte objects whose key ends in "/"
func folderKey(path, name string) string {
	return objectKey(path, name) + "/"
}
