package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
	"github.com/porikkha/porikkha-backend/internal/validator"
)

// AdminUserHandler handles admin account management endpoints.
type AdminUserHandler struct {
	adminUserService *service.AdminUserService
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(adminUserService *service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{adminUserService: adminUserService}
}

// ListAdmins godoc
// GET /api/v1/admin/users
func (h *AdminUserHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminUserService.ListAdmins(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if admins == nil {
		admins = []model.Admin{}
	}

	response.Success(c, http.StatusOK, gin.H{"admins": admins})
}

// CreateAdmin godoc
// POST /api/v1/admin/users
func (h *AdminUserHandler) CreateAdmin(c *gin.Context) {
	var req model.CreateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.adminUserService.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAdminEmail) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"admin": admin})
}

// UpdateAdmin godoc
// PUT /api/v1/admin/users/:id
func (h *AdminUserHandler) UpdateAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.adminUserService.UpdateAdmin(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateAdminEmail):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}

// DeleteAdmin godoc
// DELETE /api/v1/admin/users/:id
func (h *AdminUserHandler) DeleteAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.adminUserService.DeleteAdmin(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
