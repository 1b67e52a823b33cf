package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardians/training-tracker/internal/service"
)

// GoalHandler serves goal listing and the goal form upsert.
type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// SaveGoal godoc
// @Summary Create or overwrite a goal
// @Description Goals are keyed by discipline, scope and (for dated goals) the UTC target day.
// @Tags Goals
// @Accept json
// @Produce json
// @Success 201 {object} gin.H "Goal created"
// @Success 200 {object} gin.H "Existing goal overwritten"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /goals [post]
func (h *GoalHandler) SaveGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(c, err, "Failed to save goals")
		return
	}

	goal, created, err := h.goalService.SaveGoal(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Failed to save goals")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"created": created,
		"goalId":  goal.ID.Hex(),
		"goal":    goal,
	})
}

// ListGoals returns the caller's goals, newest first, optionally filtered by discipline.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	discipline := c.Query("discipline")
	if discipline == "" {
		discipline = c.Query("type")
	}
	goals, err := h.goalService.ListGoals(c.Request.Context(), userID, discipline)
	if err != nil {
		respondError(c, err, "Failed to fetch goals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "goals": goals})
}
