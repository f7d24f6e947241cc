package services

import (
	"fmt"

	"thumbcraft/models"
)

// promptSuffix is appended to every thumbnail prompt. Text baked into the
// image ruins localization and gets penalized by YouTube, so forbid it.
const promptSuffix = "The image must be a high-contrast, eye-catching, professional YouTube thumbnail " +
	"with cinematic lighting and a 16:9 composition. " +
	"Do NOT include any text, logos, or watermarks in the image."

// BuildThumbnailPrompt constructs the initial thumbnail prompt from the
// generated title and selected style. The result is stored on the workspace
// and is free-standing from then on: the user may edit it and regenerate,
// and it is never re-derived automatically.
func BuildThumbnailPrompt(title string, style models.Style, hasSourceImage bool) string {
	var subject string
	if hasSourceImage {
		subject = fmt.Sprintf(
			"Incorporate the main subject from the provided reference image into a dynamic scene for a video titled %q.",
			title,
		)
	} else {
		subject = fmt.Sprintf("Create a thumbnail for a video titled %q.", title)
	}

	return fmt.Sprintf("%s Visual style: %s. %s", subject, style.Label(), promptSuffix)
}
