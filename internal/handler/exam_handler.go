package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/middleware"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
	"github.com/porikkha/porikkha-backend/internal/validator"
)

// ExamHandler handles exam catalog endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ListExams godoc
// GET /api/v1/admin/exams?type=&subject=&status=&page=&per_page=
func (h *ExamHandler) ListExams(c *gin.Context) {
	page, perPage, offset := parsePagination(c)

	var filter repository.ExamFilter
	if v := c.Query("type"); v != "" {
		t := model.ExamType(v)
		filter.Type = &t
	}
	if v := c.Query("subject"); v != "" {
		filter.Subject = &v
	}
	if v := c.Query("status"); v != "" {
		st := model.ExamStatus(v)
		filter.Status = &st
	}

	exams, total, err := h.examService.ListExams(c.Request.Context(), filter, perPage, offset)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if exams == nil {
		exams = []model.Exam{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": exams}, buildPagination(page, perPage, total))
}

// studentCatalogFilter builds the listing filter for the student catalog.
// Status is pinned to ACTIVE regardless of the query string so drafts and
// archived exams never surface outside the admin routes.
func studentCatalogFilter(examType, subject string) repository.ExamFilter {
	var filter repository.ExamFilter
	if examType != "" {
		t := model.ExamType(examType)
		filter.Type = &t
	}
	if subject != "" {
		filter.Subject = &subject
	}
	active := model.ExamStatusActive
	filter.Status = &active
	return filter
}

// ListExamsForStudent godoc
// GET /api/v1/student/exams?type=&subject=&page=&per_page=
// Active exams only, projected onto the student-facing summary.
func (h *ExamHandler) ListExamsForStudent(c *gin.Context) {
	page, perPage, offset := parsePagination(c)
	filter := studentCatalogFilter(c.Query("type"), c.Query("subject"))

	exams, total, err := h.examService.ListExams(c.Request.Context(), filter, perPage, offset)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	summaries := make([]model.ExamSummary, 0, len(exams))
	for i := range exams {
		summaries = append(summaries, exams[i].Summary())
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": summaries}, buildPagination(page, perPage, total))
}

// GetExamSummaryForStudent godoc
// GET /api/v1/student/exams/:id
// Active exams only; inactive exams read as not found.
func (h *ExamHandler) GetExamSummaryForStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetExam(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if exam.Status != model.ExamStatusActive {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam.Summary()})
}

// GetExam godoc
// GET /api/v1/admin/exams/:id
func (h *ExamHandler) GetExam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetExam(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// GetExamForStudent godoc
// GET /api/v1/exams/:id/take
// Returns the cached student payload without correct answers.
func (h *ExamHandler) GetExamForStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payload, err := h.examService.GetExamForStudent(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrExamNotActive):
			response.Fail(c, http.StatusBadRequest, response.ErrExamNotActive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": payload})
}

// CreateExam godoc
// POST /api/v1/exams
// An admin token attributes the exam; student-created exams carry no creator.
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var createdBy *int
	if claims := middleware.GetClaims(c); claims != nil && claims.TokenType == service.TokenTypeAdmin {
		id := claims.AdminID
		createdBy = &id
	}

	exam, results, err := h.examService.CreateExam(c.Request.Context(), &req, createdBy)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	body := gin.H{"exam": exam}
	if results != nil {
		body["question_results"] = results
	}
	response.Success(c, http.StatusCreated, body)
}

// UpdateExam godoc
// PUT /api/v1/exams/:id
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.UpdateExam(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// ChangeExamStatus godoc
// POST /api/v1/exams/:id/status
func (h *ExamHandler) ChangeExamStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=DRAFT ACTIVE ARCHIVED"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.ChangeStatus(c.Request.Context(), id, model.ExamStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrInvalidTransition):
			response.Fail(c, http.StatusBadRequest, response.ErrActionForbidden)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// DeleteExam godoc
// DELETE /api/v1/exams/:id
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.DeleteExam(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
