package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/middleware"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
)

// NotificationHandler serves the student notification feed.
type NotificationHandler struct {
	studentService *service.StudentService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(studentService *service.StudentService) *NotificationHandler {
	return &NotificationHandler{studentService: studentService}
}

// ListNotifications godoc
// GET /api/v1/student/notifications?limit=50
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.studentService.ListNotifications(c.Request.Context(), userID, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead godoc
// POST /api/v1/student/notifications/:id/read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.studentService.MarkNotificationRead(c.Request.Context(), id, userID); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}
