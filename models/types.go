package models

import (
	"fmt"
	"time"
)

// Style is one of the fixed thumbnail style labels selectable in the UI.
type Style string

const (
	StyleCinematic   Style = "cinematic"
	StyleVibrant     Style = "vibrant"
	StyleMinimalist  Style = "minimalist"
	StyleFuturistic  Style = "futuristic"
	StyleRetro       Style = "retro"
	StyleBoldGraphic Style = "bold-graphic"
)

// AllStyles lists every selectable style, in display order.
func AllStyles() []Style {
	return []Style{
		StyleCinematic,
		StyleVibrant,
		StyleMinimalist,
		StyleFuturistic,
		StyleRetro,
		StyleBoldGraphic,
	}
}

// Valid reports whether s is one of the known styles.
func (s Style) Valid() bool {
	for _, known := range AllStyles() {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form used inside prompts.
func (s Style) Label() string {
	switch s {
	case StyleCinematic:
		return "Cinematic"
	case StyleVibrant:
		return "Vibrant"
	case StyleMinimalist:
		return "Minimalist"
	case StyleFuturistic:
		return "Futuristic"
	case StyleRetro:
		return "Retro"
	case StyleBoldGraphic:
		return "Bold & Graphic"
	default:
		return string(s)
	}
}

// GeneratedTextAssets is the SEO title and description produced for an idea.
type GeneratedTextAssets struct {
	SEOTitle    string `json:"seoTitle"`
	Description string `json:"description"`
}

// EmbeddedImage is an image held inline as raw bytes plus its mime type.
// Bytes are base64-encoded only at the JSON boundary.
type EmbeddedImage struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// IsZero reports whether no image is present.
func (e EmbeddedImage) IsZero() bool {
	return len(e.Data) == 0
}

// SourceImage is the optional user-uploaded reference image.
type SourceImage struct {
	EmbeddedImage
	DisplayName string `json:"display_name"`
}

// GenerateRequest is the body of POST /api/workspace/:id/generate
type GenerateRequest struct {
	Idea  string `json:"idea" binding:"required"`
	Style Style  `json:"style"`
}

// PromptUpdateRequest is the body of POST /api/workspace/:id/thumbnail/prompt
type PromptUpdateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// EditRequest is the body of POST /api/workspace/:id/thumbnail/edit
type EditRequest struct {
	Instruction string `json:"instruction" binding:"required"`
}

// CreateWorkspaceResponse returns the new workspace ID
type CreateWorkspaceResponse struct {
	WorkspaceID string `json:"workspace_id"`
}

// WorkspaceState is the polling snapshot returned to the frontend.
// Text and thumbnail busy flags move independently so the two panels
// can finish rendering at different times.
type WorkspaceState struct {
	WorkspaceID string `json:"workspace_id"`

	Idea  string `json:"idea"`
	Style Style  `json:"style"`

	Busy          bool `json:"busy"`
	TextBusy      bool `json:"text_busy"`
	ThumbnailBusy bool `json:"thumbnail_busy"`

	TextAssets      *GeneratedTextAssets `json:"text_assets,omitempty"`
	ThumbnailPrompt string               `json:"thumbnail_prompt"`
	Thumbnail       *EmbeddedImage       `json:"thumbnail,omitempty"`

	SourceImageName string `json:"source_image_name,omitempty"`
	HasSourceImage  bool   `json:"has_source_image"`

	Error string `json:"error,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (s Style) String() string {
	return string(s)
}

// ParseStyle validates a raw style value, defaulting empty input to cinematic.
func ParseStyle(raw string) (Style, error) {
	if raw == "" {
		return StyleCinematic, nil
	}
	s := Style(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown style %q", raw)
	}
	return s, nil
}
