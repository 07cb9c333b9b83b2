package storage

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename reduces a client-supplied filename to ASCII-safe
// characters so it can be embedded in an object key.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	if name == "" {
		name = "file"
	}
	return name
}

// BuildKey derives the canonical object key for a profile asset. The upload
// timestamp prefixes the original filename so replacements never collide.
func BuildKey(purpose, uid, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d_%s", purpose, uid, now.Unix(), SanitizeFilename(filename))
}

// KeyFromURL recovers an object key from a previously minted signed URL.
// Only needed for legacy records that stored no canonical key; new records
// carry the key alongside the URL. Handles both path-style URLs
// (/{bucket}/{key}) and virtual-hosted ones (/{key}).
func KeyFromURL(rawURL, bucket string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse blob URL: %w", err)
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		p = u.Path
	}
	p = strings.TrimPrefix(p, "/")
	if bucket != "" && strings.HasPrefix(p, bucket+"/") {
		p = strings.TrimPrefix(p, bucket+"/")
	}
	if p == "" {
		return "", fmt.Errorf("blob URL has no object key: %s", rawURL)
	}
	return p, nil
}
