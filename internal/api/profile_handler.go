package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardians/training-tracker/internal/domain"
	"guardians/training-tracker/internal/service"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// profileRequest accepts the profile either at the top level or wrapped
// as {"profile": {...}}.
type profileRequest struct {
	Profile *domain.TrainingProfile `json:"profile"`
	domain.TrainingProfile
}

func (r profileRequest) unwrap() domain.TrainingProfile {
	if r.Profile != nil {
		return *r.Profile
	}
	return r.TrainingProfile
}

// GetProfile returns {"profile": null} when the player has not onboarded.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch training profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), userID, req.unwrap())
	if err != nil {
		respondError(c, err, "Failed to save training profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}
