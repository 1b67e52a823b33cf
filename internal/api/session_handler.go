package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardians/training-tracker/internal/service"
	"guardians/training-tracker/internal/storage"
)

// SessionHandler serves session recording, listing and video uploads.
type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// RecordSession godoc
// @Summary Record a gym session or bullpen
// @Tags Sessions
// @Accept json
// @Produce json
// @Success 201 {object} gin.H "Session recorded"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /sessions [post]
func (h *SessionHandler) RecordSession(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(c, err, "Failed to save session")
		return
	}

	session, err := h.sessionService.RecordSession(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Failed to save session")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"sessionId": session.ID.Hex(),
		"session":   session,
	})
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	discipline := c.Query("discipline")
	if discipline == "" {
		discipline = c.Query("type")
	}
	sessions, err := h.sessionService.ListSessions(c.Request.Context(), userID, discipline)
	if err != nil {
		respondError(c, err, "Failed to fetch sessions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
}

// UploadVideo stores a raw video/* request body.
func (h *SessionHandler) UploadVideo(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if c.Request.ContentLength > storage.MaxVideoBytes {
		abortWithError(c, http.StatusRequestEntityTooLarge, "video exceeds 100 MB")
		return
	}
	if c.Request.ContentLength <= 0 {
		abortWithError(c, http.StatusLengthRequired, "Content-Length is required")
		return
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxVideoBytes)

	key, err := h.sessionService.UploadVideo(c.Request.Context(), userID, c.ContentType(), body, c.Request.ContentLength)
	if err != nil {
		respondError(c, err, "Failed to upload video")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "key": key})
}

type uploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// VideoUploadURL returns a presigned PUT URL for a direct upload.
func (h *SessionHandler) VideoUploadURL(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	url, key, err := h.sessionService.VideoUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, err, "Failed to create upload URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "uploadUrl": url, "key": key})
}
