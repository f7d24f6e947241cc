package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"thumbcraft/models"
)

const textAssetsPrompt = `You are an expert YouTube content strategist.
For the following video idea, generate an SEO-optimized, click-worthy title
(under 70 characters) and an engaging video description (2-3 paragraphs,
including relevant keywords naturally).

Video idea: %s`

// Generator is the capability surface the orchestrator depends on.
// The production implementation talks to Gemini; tests swap in a mock.
type Generator interface {
	// GenerateTextAssets produces the SEO title and description for an idea.
	GenerateTextAssets(ctx context.Context, idea string) (models.GeneratedTextAssets, error)

	// GenerateImage creates one 16:9 JPEG thumbnail from a text prompt.
	GenerateImage(ctx context.Context, prompt string) (models.EmbeddedImage, error)

	// EditImage applies a natural-language instruction to an image and
	// returns the first image the model answers with.
	EditImage(ctx context.Context, image models.EmbeddedImage, instruction string) (models.EmbeddedImage, error)
}

// GeminiGateway implements Generator against the Gemini API.
type GeminiGateway struct {
	client     *genai.Client
	textModel  string
	imageModel string
	editModel  string
}

var _ Generator = (*GeminiGateway)(nil)

// NewGeminiGateway creates a gateway with its own Gemini client.
func NewGeminiGateway(ctx context.Context, apiKey, textModel, imageModel, editModel string) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGateway{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		editModel:  editModel,
	}, nil
}

// GenerateTextAssets asks for structured JSON with exactly the two fields
// the workspace needs, so the response is guaranteed to parse.
func (g *GeminiGateway) GenerateTextAssets(ctx context.Context, idea string) (models.GeneratedTextAssets, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"seoTitle":    {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
			},
			Required: []string{"seoTitle", "description"},
		},
	}

	prompt := fmt.Sprintf(textAssetsPrompt, idea)
	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), cfg)
	if err != nil {
		log.Printf("[Gateway] text generation failed: %v", err)
		return models.GeneratedTextAssets{}, &TextGenerationError{Err: err}
	}

	var assets models.GeneratedTextAssets
	raw := strings.TrimSpace(resp.Text())
	if err := json.Unmarshal([]byte(raw), &assets); err != nil {
		log.Printf("[Gateway] text generation returned unparseable payload: %v", err)
		return models.GeneratedTextAssets{}, &TextGenerationError{Err: err}
	}
	if assets.SEOTitle == "" || assets.Description == "" {
		log.Printf("[Gateway] text generation returned incomplete payload: %q", raw)
		return models.GeneratedTextAssets{}, &TextGenerationError{Err: fmt.Errorf("missing fields in response")}
	}

	return assets, nil
}

// GenerateImage requests exactly one image at 16:9, JPEG-encoded.
func (g *GeminiGateway) GenerateImage(ctx context.Context, prompt string) (models.EmbeddedImage, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "16:9",
		OutputMIMEType: "image/jpeg",
	})
	if err != nil {
		log.Printf("[Gateway] image generation failed: %v", err)
		return models.EmbeddedImage{}, &ImageGenerationError{Err: err}
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		log.Printf("[Gateway] image generation returned no images")
		return models.EmbeddedImage{}, &ImageGenerationError{Err: fmt.Errorf("provider returned zero images")}
	}

	img := resp.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return models.EmbeddedImage{
		MIMEType: mimeType,
		Data:     img.ImageBytes,
	}, nil
}

// EditImage sends the image plus instruction to an image-capable model and
// returns the first inline image found in the response parts. The model may
// refuse and answer with text only, which is reported as a refusal.
func (g *GeminiGateway) EditImage(ctx context.Context, image models.EmbeddedImage, instruction string) (models.EmbeddedImage, error) {
	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						Data:     image.Data,
						MIMEType: image.MIMEType,
					},
				},
				{Text: instruction},
			},
		},
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.editModel, contents, cfg)
	if err != nil {
		log.Printf("[Gateway] image edit failed: %v", err)
		return models.EmbeddedImage{}, &ImageEditError{Err: err}
	}

	if edited, ok := firstInlineImage(resp); ok {
		return edited, nil
	}

	log.Printf("[Gateway] image edit returned no image part")
	return models.EmbeddedImage{}, &ImageEditError{Refused: true}
}

// firstInlineImage scans response parts in order for inline image data.
func firstInlineImage(resp *genai.GenerateContentResponse) (models.EmbeddedImage, bool) {
	if resp == nil {
		return models.EmbeddedImage{}, false
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/jpeg"
				}
				return models.EmbeddedImage{
					MIMEType: mimeType,
					Data:     part.InlineData.Data,
				}, true
			}
		}
	}
	return models.EmbeddedImage{}, false
}
