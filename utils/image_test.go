package utils

import (
	"regexp"
	"strings"
	"testing"
)

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		expected string
	}{
		{"png", "image/png", "png"},
		{"jpeg", "image/jpeg", "jpeg"},
		{"jpg alias", "image/jpg", "jpeg"},
		{"webp", "image/webp", "webp"},
		{"empty defaults to jpeg", "", "jpeg"},
		{"unknown defaults to jpeg", "application/octet-stream", "jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtensionForMIME(tt.mimeType); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestThumbnailFilename(t *testing.T) {
	name := ThumbnailFilename("image/png")

	pattern := regexp.MustCompile(`^thumbcraft-thumbnail-\d+\.png$`)
	if !pattern.MatchString(name) {
		t.Errorf("Unexpected filename shape: %s", name)
	}

	if !strings.HasSuffix(ThumbnailFilename(""), ".jpeg") {
		t.Error("Missing mime type should default to a .jpeg filename")
	}
}

func TestIsAllowedUploadMIME(t *testing.T) {
	tests := []struct {
		mimeType string
		allowed  bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"image/gif", false},
		{"image/webp", false},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			if got := IsAllowedUploadMIME(tt.mimeType); got != tt.allowed {
				t.Errorf("IsAllowedUploadMIME(%q) = %v, want %v", tt.mimeType, got, tt.allowed)
			}
		})
	}
}

func TestDetectImageMIME(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	if got := DetectImageMIME(pngHeader); got != "image/png" {
		t.Errorf("Expected image/png, got %q", got)
	}

	jpegHeader := []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}
	if got := DetectImageMIME(jpegHeader); got != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %q", got)
	}
}
