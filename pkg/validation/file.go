package validation

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxUploadSize caps profile asset uploads (résumés, pictures, logos).
const MaxUploadSize = 10 << 20 // 10 MiB

// Magic byte signatures for the accepted upload types.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// CheckUpload validates an upload in three layers: extension whitelist,
// magic bytes matching the extension, and sniffed MIME whitelist. Returns
// the sniffed content type on success.
func CheckUpload(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}
	if len(data) > MaxUploadSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	signatures, ok := magicBytes[ext]
	if !ok {
		return "", fmt.Errorf("file extension not allowed: %s", ext)
	}

	matched := false
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			matched = true
			break
		}
	}
	if !matched {
		return "", fmt.Errorf("file content does not match extension %s", ext)
	}

	contentType := http.DetectContentType(data)
	// DetectContentType reports media types with parameters for some files
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if !allowedMIMETypes[contentType] {
		return "", fmt.Errorf("MIME type not allowed: %s", contentType)
	}

	return contentType, nil
}

// IsImage reports whether the sniffed content type is a raster image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
