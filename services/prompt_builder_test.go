package services

import (
	"strings"
	"testing"

	"thumbcraft/models"
)

func TestBuildThumbnailPrompt(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		style     models.Style
		hasSource bool
		contains  []string
		excludes  []string
	}{
		{
			name:      "no source image",
			title:     "Top 10 Go Tips",
			style:     models.StyleCinematic,
			hasSource: false,
			contains:  []string{`"Top 10 Go Tips"`, "Cinematic", "Do NOT include any text"},
			excludes:  []string{"reference image"},
		},
		{
			name:      "with source image",
			title:     "My Morning Routine",
			style:     models.StyleVibrant,
			hasSource: true,
			contains:  []string{`"My Morning Routine"`, "reference image", "Vibrant", "Do NOT include any text"},
		},
		{
			name:      "bold graphic label",
			title:     "Speedrun World Record",
			style:     models.StyleBoldGraphic,
			hasSource: false,
			contains:  []string{"Bold & Graphic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildThumbnailPrompt(tt.title, tt.style, tt.hasSource)

			for _, want := range tt.contains {
				if !strings.Contains(prompt, want) {
					t.Errorf("Expected prompt to contain %q, got: %s", want, prompt)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(prompt, unwanted) {
					t.Errorf("Expected prompt to not contain %q, got: %s", unwanted, prompt)
				}
			}
		})
	}
}

func TestBuildThumbnailPrompt_Aspect(t *testing.T) {
	prompt := BuildThumbnailPrompt("Any Title", models.StyleMinimalist, false)
	if !strings.Contains(prompt, "16:9") {
		t.Errorf("Expected prompt to demand 16:9 composition, got: %s", prompt)
	}
}
