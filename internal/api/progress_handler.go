package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guardians/training-tracker/internal/service"
)

// ProgressHandler serves the ring and chart data.
type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetProgress godoc
// @Summary Discipline-level progress rings
// @Tags Progress
// @Produce json
// @Param discipline query string true "gym or pitching"
// @Param selection query string false "lifetime (default) or a dated goal id"
// @Success 200 {object} service.ProgressResult
// @Failure 400 {object} gin.H "Invalid input"
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	res, err := h.progressService.Progress(c.Request.Context(), userID, c.Query("discipline"), c.Query("selection"))
	if err != nil {
		respondError(c, err, "Failed to compute progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": res})
}

func (h *ProgressHandler) GetItemRings(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	res, err := h.progressService.ItemRings(c.Request.Context(), userID, c.Query("discipline"), c.Query("selection"))
	if err != nil {
		respondError(c, err, "Failed to compute item progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": res})
}

// GetHistory godoc
// @Summary Per-item history chart
// @Tags Progress
// @Produce json
// @Param discipline query string true "gym or pitching"
// @Param item query string true "exercise name or pitch type"
// @Param range query string false "week, month, year or all"
// @Success 200 {object} progress.History
// @Router /history [get]
func (h *ProgressHandler) GetHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	res, err := h.progressService.History(c.Request.Context(), userID, c.Query("discipline"), c.Query("item"), c.Query("range"))
	if err != nil {
		respondError(c, err, "Failed to build history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": res})
}
