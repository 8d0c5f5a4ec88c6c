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

// ProctoringHandler handles the proctoring session lifecycle endpoints.
type ProctoringHandler struct {
	proctoringService *service.ProctoringService
}

// NewProctoringHandler creates a new ProctoringHandler.
func NewProctoringHandler(proctoringService *service.ProctoringService) *ProctoringHandler {
	return &ProctoringHandler{proctoringService: proctoringService}
}

// StartSession godoc
// POST /api/v1/proctoring/sessions
func (h *ProctoringHandler) StartSession(c *gin.Context) {
	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.proctoringService.StartSession(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSession) {
			response.Fail(c, http.StatusConflict, response.ErrSessionExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": session})
}

// GetSession godoc
// GET /api/v1/proctoring/sessions/:session_id
func (h *ProctoringHandler) GetSession(c *gin.Context) {
	session, err := h.proctoringService.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": session})
}

// ReportViolation godoc
// POST /api/v1/proctoring/sessions/:session_id/violations
func (h *ProctoringHandler) ReportViolation(c *gin.Context) {
	var req model.ReportViolationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	violation, riskScore, err := h.proctoringService.ReportViolation(c.Request.Context(), c.Param("session_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrSessionNotActive):
			response.Fail(c, http.StatusBadRequest, response.ErrSessionNotActive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"violation":  violation,
		"risk_score": riskScore,
	})
}

// ListViolations godoc
// GET /api/v1/proctoring/sessions/:session_id/violations
func (h *ProctoringHandler) ListViolations(c *gin.Context) {
	violations, err := h.proctoringService.ListViolations(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if violations == nil {
		violations = []model.ProctoringViolation{}
	}

	response.Success(c, http.StatusOK, gin.H{"violations": violations})
}

// PushTelemetry godoc
// POST /api/v1/proctoring/sessions/:session_id/telemetry
// Counter deltas are queued to Redis and persisted by the telemetry worker.
func (h *ProctoringHandler) PushTelemetry(c *gin.Context) {
	var req model.TelemetryEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.proctoringService.EnqueueTelemetry(c.Request.Context(), c.Param("session_id"), &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"queued": true})
}

// EndSession godoc
// POST /api/v1/proctoring/sessions/:session_id/end
func (h *ProctoringHandler) EndSession(c *gin.Context) {
	var req model.EndSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	summary, err := h.proctoringService.EndSession(c.Request.Context(), c.Param("session_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrSessionNotActive):
			response.Fail(c, http.StatusBadRequest, response.ErrSessionNotActive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// ListExamSessions godoc
// GET /api/v1/admin/exams/:id/proctoring/sessions
func (h *ProctoringHandler) ListExamSessions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sessions, err := h.proctoringService.ListExamSessions(c.Request.Context(), examID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if sessions == nil {
		sessions = []model.ProctoringSession{}
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}
