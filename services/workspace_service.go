package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"thumbcraft/models"
)

// Workspace holds all UI-visible state for one browser session. Every field
// is owned by WorkspaceService and mutated only through its operations.
type Workspace struct {
	ID string

	mu sync.RWMutex

	idea  string
	style models.Style

	sourceImage *models.SourceImage

	textAssets      *models.GeneratedTextAssets
	thumbnailPrompt string
	thumbnail       models.EmbeddedImage

	// busy gates the primary action; textBusy and thumbnailBusy move
	// independently so the two panels can finish at different times.
	busy          bool
	textBusy      bool
	thumbnailBusy bool

	// At most one visible error; cleared when a new operation starts.
	errMsg string

	lastActive time.Time
}

// WorkspaceService owns all workspaces and drives the generation sequence.
type WorkspaceService struct {
	gen Generator

	workspaces map[string]*Workspace
	mu         sync.RWMutex

	ttl time.Duration
}

// NewWorkspaceService creates a workspace service backed by the given generator.
func NewWorkspaceService(gen Generator, ttl time.Duration) *WorkspaceService {
	return &WorkspaceService{
		gen:        gen,
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
	}
}

// Create registers a new empty workspace and returns it.
func (s *WorkspaceService) Create() *Workspace {
	ws := &Workspace{
		ID:         uuid.New().String(),
		style:      models.StyleCinematic,
		lastActive: time.Now(),
	}

	s.mu.Lock()
	s.workspaces[ws.ID] = ws
	s.mu.Unlock()

	log.Printf("[Workspace %s] created", ws.ID)
	return ws
}

// Get returns the workspace for id, or ErrWorkspaceNotFound.
func (s *WorkspaceService) Get(id string) (*Workspace, error) {
	s.mu.RLock()
	ws, exists := s.workspaces[id]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrWorkspaceNotFound
	}
	return ws, nil
}

// SetSourceImage stores the uploaded reference image, replacing any previous one.
func (s *WorkspaceService) SetSourceImage(id string, img models.EmbeddedImage, displayName string) error {
	ws, err := s.Get(id)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	ws.sourceImage = &models.SourceImage{EmbeddedImage: img, DisplayName: displayName}
	ws.lastActive = time.Now()
	ws.mu.Unlock()

	log.Printf("[Workspace %s] source image set (%s, %d bytes)", id, img.MIMEType, len(img.Data))
	return nil
}

// ClearSourceImage removes the uploaded reference image.
func (s *WorkspaceService) ClearSourceImage(id string) error {
	ws, err := s.Get(id)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	ws.sourceImage = nil
	ws.lastActive = time.Now()
	ws.mu.Unlock()

	return nil
}

// UpdateThumbnailPrompt stores a user edit of the thumbnail prompt. The
// prompt is free-standing once generated; it is never re-derived from the
// title behind the user's back.
func (s *WorkspaceService) UpdateThumbnailPrompt(id, prompt string) error {
	ws, err := s.Get(id)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	ws.thumbnailPrompt = prompt
	ws.lastActive = time.Now()
	ws.mu.Unlock()

	return nil
}

// StartGenerateAll validates and transitions the workspace into the busy
// state for a full generation run. It performs no provider calls itself;
// callers follow up with RunGenerateAll (usually on a goroutine).
func (s *WorkspaceService) StartGenerateAll(id, idea string, style models.Style) error {
	ws, err := s.Get(id)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	// The busy check comes first: while an operation runs, its state
	// (including the error slot) must not be touched. A thumbnail-only
	// operation also blocks a full run, since both write the thumbnail.
	if ws.busy || ws.thumbnailBusy {
		return ErrOperationInFlight
	}
	if strings.TrimSpace(idea) == "" {
		ws.errMsg = "Please enter a video idea first."
		return &ValidationError{Message: ws.errMsg}
	}
	if !style.Valid() {
		ws.errMsg = "Unknown thumbnail style."
		return &ValidationError{Message: ws.errMsg}
	}

	ws.idea = idea
	ws.style = style
	ws.busy = true
	ws.textBusy = true
	ws.thumbnailBusy = true
	ws.textAssets = nil
	ws.thumbnail = models.EmbeddedImage{}
	ws.thumbnailPrompt = ""
	ws.errMsg = ""
	ws.lastActive = time.Now()

	return nil
}

// RunGenerateAll executes the generation sequence: idea → text assets →
// thumbnail prompt → thumbnail image. The text call completes before prompt
// construction begins, since the prompt depends on the generated title. The
// busy flags are always cleared, whatever the step outcomes.
func (s *WorkspaceService) RunGenerateAll(ctx context.Context, id string) {
	ws, err := s.Get(id)
	if err != nil {
		return
	}

	defer func() {
		ws.mu.Lock()
		ws.thumbnailBusy = false
		ws.busy = false
		ws.lastActive = time.Now()
		ws.mu.Unlock()
	}()

	ws.mu.RLock()
	idea := ws.idea
	style := ws.style
	hasSource := ws.sourceImage != nil
	ws.mu.RUnlock()

	log.Printf("[Workspace %s] generating text assets", id)
	assets, err := s.gen.GenerateTextAssets(ctx, idea)

	ws.mu.Lock()
	ws.textBusy = false
	if err != nil {
		// A text failure short-circuits the rest: the thumbnail prompt
		// depends on the title, so the image step is skipped entirely.
		ws.errMsg = UserMessage(err)
		ws.mu.Unlock()
		return
	}
	ws.textAssets = &assets
	prompt := BuildThumbnailPrompt(assets.SEOTitle, style, hasSource)
	ws.thumbnailPrompt = prompt
	ws.mu.Unlock()

	log.Printf("[Workspace %s] generating thumbnail", id)
	s.produceThumbnail(ctx, ws, prompt)
}

// StartRegenerateThumbnail validates and transitions for a thumbnail-only run
// using the current, possibly user-edited prompt.
func (s *WorkspaceService) StartRegenerateThumbnail(id string) error {
	ws, err := s.Get(id)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.busy || ws.thumbnailBusy {
		return ErrOperationInFlight
	}
	if strings.TrimSpace(ws.thumbnailPrompt) == "" {
		ws.errMsg = "The thumbnail prompt is empty."
		return &ValidationError{Message: ws.errMsg}
	}

	ws.thumbnailBusy = true
	ws.errMsg = ""
	ws.lastActive = time.Now()

	return nil
}

// RunRegenerateThumbnail regenerates the thumbnail from the current prompt,
// still honoring the uploaded source image when one is present.
func (s *WorkspaceService) RunRegenerateThumbnail(ctx context.Context, id string) {
	ws, err := s.Get(id)
	if err != nil {
		return
	}

	defer func() {
		ws.mu.Lock()
		ws.thumbnailBusy = false
		ws.lastActive = time.Now()
		ws.mu.Unlock()
	}()

	ws.mu.RLock()
	prompt := ws.thumbnailPrompt
	ws.mu.RUnlock()

	log.Printf("[Workspace %s] regenerating thumbnail", id)
	s.produceThumbnail(ctx, ws, prompt)
}

// StartEditThumbnail validates and transitions for a quick edit of the
// current thumbnail.
func (s *WorkspaceService) StartEditThumbnail(id, instruction string) error {
	ws, err := s.Get(id)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.busy || ws.thumbnailBusy {
		return ErrOperationInFlight
	}
	if strings.TrimSpace(instruction) == "" {
		ws.errMsg = "Please enter an edit instruction."
		return &ValidationError{Message: ws.errMsg}
	}
	if ws.thumbnail.IsZero() {
		ws.errMsg = "There is no thumbnail to edit yet."
		return &ValidationError{Message: ws.errMsg}
	}

	ws.thumbnailBusy = true
	ws.errMsg = ""
	ws.lastActive = time.Now()

	return nil
}

// RunEditThumbnail applies the instruction to the current thumbnail, not the
// original upload, so edits accumulate on the latest image.
func (s *WorkspaceService) RunEditThumbnail(ctx context.Context, id, instruction string) {
	ws, err := s.Get(id)
	if err != nil {
		return
	}

	defer func() {
		ws.mu.Lock()
		ws.thumbnailBusy = false
		ws.lastActive = time.Now()
		ws.mu.Unlock()
	}()

	ws.mu.RLock()
	current := ws.thumbnail
	ws.mu.RUnlock()

	log.Printf("[Workspace %s] editing thumbnail: %q", id, instruction)
	edited, err := s.gen.EditImage(ctx, current, instruction)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err != nil {
		ws.errMsg = UserMessage(err)
		return
	}
	ws.thumbnail = edited
}

// produceThumbnail runs the image step shared by GenerateAll and
// RegenerateThumbnail: edit against the source image when one is uploaded,
// plain generation otherwise. The result replaces the thumbnail wholesale.
func (s *WorkspaceService) produceThumbnail(ctx context.Context, ws *Workspace, prompt string) {
	ws.mu.RLock()
	source := ws.sourceImage
	ws.mu.RUnlock()

	var (
		img models.EmbeddedImage
		err error
	)
	if source != nil {
		img, err = s.gen.EditImage(ctx, source.EmbeddedImage, prompt)
	} else {
		img, err = s.gen.GenerateImage(ctx, prompt)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err != nil {
		ws.errMsg = UserMessage(err)
		return
	}
	ws.thumbnail = img
}

// Thumbnail returns the current thumbnail image for export.
func (s *WorkspaceService) Thumbnail(id string) (models.EmbeddedImage, error) {
	ws, err := s.Get(id)
	if err != nil {
		return models.EmbeddedImage{}, err
	}

	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.thumbnail, nil
}

// Snapshot builds the polling state the frontend renders from.
func (s *WorkspaceService) Snapshot(id string) (models.WorkspaceState, error) {
	ws, err := s.Get(id)
	if err != nil {
		return models.WorkspaceState{}, err
	}

	ws.mu.RLock()
	defer ws.mu.RUnlock()

	state := models.WorkspaceState{
		WorkspaceID:     ws.ID,
		Idea:            ws.idea,
		Style:           ws.style,
		Busy:            ws.busy,
		TextBusy:        ws.textBusy,
		ThumbnailBusy:   ws.thumbnailBusy,
		ThumbnailPrompt: ws.thumbnailPrompt,
		Error:           ws.errMsg,
		UpdatedAt:       ws.lastActive,
	}
	if ws.textAssets != nil {
		assets := *ws.textAssets
		state.TextAssets = &assets
	}
	if !ws.thumbnail.IsZero() {
		thumb := ws.thumbnail
		state.Thumbnail = &thumb
	}
	if ws.sourceImage != nil {
		state.HasSourceImage = true
		state.SourceImageName = ws.sourceImage.DisplayName
	}

	return state, nil
}

// StartJanitor sweeps expired idle workspaces until ctx is done.
func (s *WorkspaceService) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *WorkspaceService) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ws := range s.workspaces {
		ws.mu.RLock()
		expired := !ws.busy && !ws.thumbnailBusy && ws.lastActive.Before(cutoff)
		ws.mu.RUnlock()
		if expired {
			delete(s.workspaces, id)
			log.Printf("[Workspace %s] expired, removed", id)
		}
	}
}
