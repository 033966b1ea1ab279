package handlers

import (
	"net/http"
	"strconv"

	"task-tracker-api/internal/services"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activities *services.ActivityService
}

func NewActivityHandler(activities *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// GetRecentActivities handles GET /api/activities/recent?limit=N
func (h *ActivityHandler) GetRecentActivities(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	activities, err := h.activities.GetRecentActivities(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GetActivitiesByTaskID handles GET /api/activities/task/:taskId
func (h *ActivityHandler) GetActivitiesByTaskID(c *gin.Context) {
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	activities, err := h.activities.GetActivitiesByTaskID(taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}
	c.JSON(http.StatusOK, activities)
}
