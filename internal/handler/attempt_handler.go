package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
	"github.com/porikkha/porikkha-backend/internal/validator"
)

// AttemptHandler handles exam attempt endpoints.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// RecordAttempt godoc
// POST /api/v1/attempts
// Anonymous attempts are allowed; user_id is optional.
func (h *AttemptHandler) RecordAttempt(c *gin.Context) {
	var req model.CreateAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.RecordAttempt(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPercentageOutOfRange):
			response.Fail(c, http.StatusBadRequest, response.ErrPercentageOutOfRange)
		case errors.Is(err, repository.ErrExamNotFound):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidExamRef)
		case errors.Is(err, repository.ErrDuplicateAttempt):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// GetAttempt godoc
// GET /api/v1/attempts/:id
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	attempt, err := h.attemptService.GetAttempt(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// ListUserAttempts godoc
// GET /api/v1/users/:user_id/attempts
func (h *AttemptHandler) ListUserAttempts(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	page, perPage, offset := parsePagination(c)
	attempts, total, err := h.attemptService.ListUserAttempts(c.Request.Context(), userID, perPage, offset)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if attempts == nil {
		attempts = []model.ExamAttempt{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"attempts": attempts}, buildPagination(page, perPage, total))
}
