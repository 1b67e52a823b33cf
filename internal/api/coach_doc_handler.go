package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardians/training-tracker/internal/service"
)

type CoachDocHandler struct {
	docService service.CoachDocService
}

func NewCoachDocHandler(docService service.CoachDocService) *CoachDocHandler {
	return &CoachDocHandler{docService: docService}
}

// Upload reads a text/plain or text/markdown body; the title comes from the query string.
func (h *CoachDocHandler) Upload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxCoachDocBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, "document exceeds 2 MB")
			return
		}
		abortWithError(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	doc, err := h.docService.Upload(c.Request.Context(), userID, c.Query("title"), c.GetHeader("Content-Type"), body)
	if err != nil {
		respondError(c, err, "Failed to upload coach document")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "doc": doc})
}

func (h *CoachDocHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	docs, err := h.docService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch coach documents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "docs": docs})
}
