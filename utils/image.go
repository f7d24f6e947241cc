package utils

import (
	"fmt"
	"net/http"
	"time"
)

// ExtensionForMIME maps an image mime type to a filename extension.
// Defaults to jpeg when the type is missing or unrecognized.
func ExtensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}

// ThumbnailFilename builds the export filename for a thumbnail download,
// unique per call via a millisecond timestamp.
func ThumbnailFilename(mimeType string) string {
	return fmt.Sprintf("thumbcraft-thumbnail-%d.%s", time.Now().UnixMilli(), ExtensionForMIME(mimeType))
}

// DetectImageMIME sniffs the content type of uploaded bytes.
func DetectImageMIME(data []byte) string {
	return http.DetectContentType(data)
}

// IsAllowedUploadMIME reports whether the sniffed type is accepted for the
// source image upload (png/jpeg only).
func IsAllowedUploadMIME(mimeType string) bool {
	switch mimeType {
	case "image/png", "image/jpeg":
		return true
	default:
		return false
	}
}
