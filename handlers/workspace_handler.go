package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"thumbcraft/config"
	"thumbcraft/models"
	"thumbcraft/services"
	"thumbcraft/utils"
)

// WorkspaceHandler exposes the publishing-asset workspace over HTTP.
type WorkspaceHandler struct {
	cfg        *config.Config
	workspaces *services.WorkspaceService
}

// NewWorkspaceHandler creates a workspace handler
func NewWorkspaceHandler(cfg *config.Config, workspaces *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		cfg:        cfg,
		workspaces: workspaces,
	}
}

// Create handles POST /api/workspace
func (h *WorkspaceHandler) Create(c *gin.Context) {
	ws := h.workspaces.Create()
	c.JSON(http.StatusCreated, models.CreateWorkspaceResponse{WorkspaceID: ws.ID})
}

// GetState handles GET /api/workspace/:id
func (h *WorkspaceHandler) GetState(c *gin.Context) {
	state, err := h.workspaces.Snapshot(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UploadSource handles POST /api/workspace/:id/source
func (h *WorkspaceHandler) UploadSource(c *gin.Context) {
	id := c.Param("id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required."})
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Image too large (max %d bytes).", h.cfg.MaxUploadBytes),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded image."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil || int64(len(data)) > h.cfg.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded image."})
		return
	}

	mimeType := utils.DetectImageMIME(data)
	if !utils.IsAllowedUploadMIME(mimeType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PNG and JPEG images are supported."})
		return
	}

	img := models.EmbeddedImage{MIMEType: mimeType, Data: data}
	if err := h.workspaces.SetSourceImage(id, img, fileHeader.Filename); err != nil {
		h.renderError(c, err)
		return
	}

	state, err := h.workspaces.Snapshot(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ClearSource handles DELETE /api/workspace/:id/source
func (h *WorkspaceHandler) ClearSource(c *gin.Context) {
	id := c.Param("id")
	if err := h.workspaces.ClearSourceImage(id); err != nil {
		h.renderError(c, err)
		return
	}

	state, err := h.workspaces.Snapshot(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Generate handles POST /api/workspace/:id/generate
func (h *WorkspaceHandler) Generate(c *gin.Context) {
	id := c.Param("id")

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	style, err := models.ParseStyle(string(req.Style))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown thumbnail style."})
		return
	}

	if err := h.workspaces.StartGenerateAll(id, req.Idea, style); err != nil {
		h.renderError(c, err)
		return
	}

	// Run the sequence in the background; the frontend polls GetState and
	// renders the text panel as soon as text_busy drops.
	go h.workspaces.RunGenerateAll(context.Background(), id)

	h.renderAccepted(c, id)
}

// UpdatePrompt handles POST /api/workspace/:id/thumbnail/prompt
func (h *WorkspaceHandler) UpdatePrompt(c *gin.Context) {
	id := c.Param("id")

	var req models.PromptUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.workspaces.UpdateThumbnailPrompt(id, req.Prompt); err != nil {
		h.renderError(c, err)
		return
	}

	state, err := h.workspaces.Snapshot(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Regenerate handles POST /api/workspace/:id/thumbnail/regenerate
func (h *WorkspaceHandler) Regenerate(c *gin.Context) {
	id := c.Param("id")

	if err := h.workspaces.StartRegenerateThumbnail(id); err != nil {
		h.renderError(c, err)
		return
	}

	go h.workspaces.RunRegenerateThumbnail(context.Background(), id)

	h.renderAccepted(c, id)
}

// Edit handles POST /api/workspace/:id/thumbnail/edit
func (h *WorkspaceHandler) Edit(c *gin.Context) {
	id := c.Param("id")

	var req models.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.workspaces.StartEditThumbnail(id, req.Instruction); err != nil {
		h.renderError(c, err)
		return
	}

	go h.workspaces.RunEditThumbnail(context.Background(), id, req.Instruction)

	h.renderAccepted(c, id)
}

// Download handles GET /api/workspace/:id/thumbnail/download
func (h *WorkspaceHandler) Download(c *gin.Context) {
	id := c.Param("id")

	thumb, err := h.workspaces.Thumbnail(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if thumb.IsZero() {
		c.JSON(http.StatusNotFound, gin.H{"error": "No thumbnail has been generated yet."})
		return
	}

	filename := utils.ThumbnailFilename(thumb.MIMEType)
	contentType := thumb.MIMEType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, thumb.Data)
}

// renderAccepted answers an async operation start with the busy snapshot.
func (h *WorkspaceHandler) renderAccepted(c *gin.Context, id string) {
	state, err := h.workspaces.Snapshot(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, state)
}

// renderError maps service errors to HTTP status codes.
func (h *WorkspaceHandler) renderError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, services.ErrWorkspaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
	case errors.Is(err, services.ErrOperationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[Handler] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.MsgUnknown})
	}
}
