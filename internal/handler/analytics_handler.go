package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
)

// AnalyticsHandler serves the student dashboard.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetStudentDashboard godoc
// GET /api/v1/student/users/:user_id/dashboard?days=30
// Also mounted for admins as /api/v1/admin/students/:id/dashboard.
func (h *AnalyticsHandler) GetStudentDashboard(c *gin.Context) {
	param := c.Param("user_id")
	if param == "" {
		param = c.Param("id")
	}
	userID, err := uuid.Parse(param)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	dashboard, err := h.analyticsService.GetStudentDashboard(c.Request.Context(), userID, days)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"dashboard": dashboard})
}
