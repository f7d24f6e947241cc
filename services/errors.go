package services

import "errors"

// User-safe messages surfaced to the frontend. The raw provider error is
// logged server-side only.
const (
	MsgTextGenerationFailed  = "Failed to generate video details from AI."
	MsgImageGenerationFailed = "Failed to generate thumbnail from AI."
	MsgImageEditFailed       = "Failed to edit image with AI."
	MsgImageEditRefused      = "The AI did not return an image. It may have refused the request."
	MsgUnknown               = "An unexpected error occurred."
)

// ValidationError blocks an operation before any provider call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TextGenerationError wraps a failed or malformed text-asset generation.
type TextGenerationError struct {
	Err error
}

func (e *TextGenerationError) Error() string {
	return MsgTextGenerationFailed
}

func (e *TextGenerationError) Unwrap() error {
	return e.Err
}

// ImageGenerationError wraps a failed text-to-image generation.
type ImageGenerationError struct {
	Err error
}

func (e *ImageGenerationError) Error() string {
	return MsgImageGenerationFailed
}

func (e *ImageGenerationError) Unwrap() error {
	return e.Err
}

// ImageEditError wraps a failed or refused image edit. Refused means the
// provider answered with text only and no image part.
type ImageEditError struct {
	Refused bool
	Err     error
}

func (e *ImageEditError) Error() string {
	if e.Refused {
		return MsgImageEditRefused
	}
	return MsgImageEditFailed
}

func (e *ImageEditError) Unwrap() error {
	return e.Err
}

// ErrOperationInFlight is returned when an operation is started on a
// workspace that already has one running.
var ErrOperationInFlight = errors.New("an operation is already in progress for this workspace")

// ErrWorkspaceNotFound is returned for unknown or expired workspace IDs.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// UserMessage maps any error to the message the frontend may display.
func UserMessage(err error) string {
	var (
		vErr  *ValidationError
		tErr  *TextGenerationError
		igErr *ImageGenerationError
		ieErr *ImageEditError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.As(err, &tErr):
		return tErr.Error()
	case errors.As(err, &igErr):
		return igErr.Error()
	case errors.As(err, &ieErr):
		return ieErr.Error()
	case errors.Is(err, ErrOperationInFlight):
		return err.Error()
	case errors.Is(err, ErrWorkspaceNotFound):
		return err.Error()
	default:
		return MsgUnknown
	}
}
