package services

import (
	"context"

	"thumbcraft/models"
)

// mockGenerator is a function-field mock of Generator for orchestrator tests.
type mockGenerator struct {
	GenerateTextAssetsFunc func(ctx context.Context, idea string) (models.GeneratedTextAssets, error)
	GenerateImageFunc      func(ctx context.Context, prompt string) (models.EmbeddedImage, error)
	EditImageFunc          func(ctx context.Context, image models.EmbeddedImage, instruction string) (models.EmbeddedImage, error)

	textCalls  int
	imageCalls int
	editCalls  int
}

func (m *mockGenerator) GenerateTextAssets(ctx context.Context, idea string) (models.GeneratedTextAssets, error) {
	m.textCalls++
	if m.GenerateTextAssetsFunc != nil {
		return m.GenerateTextAssetsFunc(ctx, idea)
	}
	return models.GeneratedTextAssets{SEOTitle: "Test Title", Description: "Test description."}, nil
}

func (m *mockGenerator) GenerateImage(ctx context.Context, prompt string) (models.EmbeddedImage, error) {
	m.imageCalls++
	if m.GenerateImageFunc != nil {
		return m.GenerateImageFunc(ctx, prompt)
	}
	return models.EmbeddedImage{MIMEType: "image/jpeg", Data: []byte("generated")}, nil
}

func (m *mockGenerator) EditImage(ctx context.Context, image models.EmbeddedImage, instruction string) (models.EmbeddedImage, error) {
	m.editCalls++
	if m.EditImageFunc != nil {
		return m.EditImageFunc(ctx, image, instruction)
	}
	return models.EmbeddedImage{MIMEType: "image/jpeg", Data: []byte("edited")}, nil
}

var _ Generator = (*mockGenerator)(nil)
