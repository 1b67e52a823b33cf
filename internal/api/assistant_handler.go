package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardians/training-tracker/internal/service"
)

type AssistantHandler struct {
	assistant service.AssistantService
}

func NewAssistantHandler(assistant service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Query godoc
// @Summary Ask the training assistant a question
// @Description Collaborator failures return an apology with degraded=true instead of an error.
// @Tags Assistant
// @Accept json
// @Produce json
// @Success 200 {object} gin.H "Answer"
// @Failure 400 {object} gin.H "Question is required"
// @Failure 429 {object} gin.H "Rate limited"
// @Router /assistant/query [post]
func (h *AssistantHandler) Query(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), userID, req.question())
	if err != nil {
		respondError(c, err, "Failed to answer question")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"answer":       answer.Answer,
		"usedProfile":  answer.UsedProfile,
		"contextCount": answer.ContextCount,
		"degraded":     answer.Degraded,
	})
}
