package models

import (
	"path"
	"regexp"
	"strings"
)

// Image is an attachment referenced by URI: a local path, file://, http(s):// or s3://.
type Image struct {
	URI string
}

var extRe = regexp.MustCompile(`\.(\w+)$`)

// FileName is the last path segment of the URI.
func (i Image) FileName() string {
	u := i.URI
	if idx := strings.IndexAny(u, "?#"); idx >= 0 && strings.Contains(u, "://") {
		u = u[:idx]
	}
	return path.Base(strings.ReplaceAll(u, `\`, "/"))
}

// ContentType derives "image/<ext>" from the file name, defaulting to image/jpeg.
func (i Image) ContentType() string {
	m := extRe.FindStringSubmatch(i.FileName())
	if m == nil {
		return "image/jpeg"
	}
	return "image/" + strings.ToLower(m[1])
}
