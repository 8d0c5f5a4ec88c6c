package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
	"github.com/porikkha/porikkha-backend/internal/validator"
)

// AdminRoleHandler handles role and permission management endpoints.
type AdminRoleHandler struct {
	roleService *service.AdminRoleService
}

// NewAdminRoleHandler creates a new AdminRoleHandler.
func NewAdminRoleHandler(roleService *service.AdminRoleService) *AdminRoleHandler {
	return &AdminRoleHandler{roleService: roleService}
}

// ListRoles godoc
// GET /api/v1/admin/roles
func (h *AdminRoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if roles == nil {
		roles = []model.RoleWithPermissions{}
	}

	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// GetRole godoc
// GET /api/v1/admin/roles/:id
func (h *AdminRoleHandler) GetRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	role, err := h.roleService.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": role})
}

// ListPermissions godoc
// GET /api/v1/admin/permissions
func (h *AdminRoleHandler) ListPermissions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"permissions": h.roleService.GetAllPermissions()})
}

// CreateRole godoc
// POST /api/v1/admin/roles
func (h *AdminRoleHandler) CreateRole(c *gin.Context) {
	var req model.CreateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), req.Name, req.Permissions)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"role": role})
}

// UpdateRole godoc
// PUT /api/v1/admin/roles/:id
func (h *AdminRoleHandler) UpdateRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), id, req.Name, req.Permissions)
	if err != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrActionForbidden, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": role})
}

// DeleteRole godoc
// DELETE /api/v1/admin/roles/:id
func (h *AdminRoleHandler) DeleteRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), id); err != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrDependencyExists, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
