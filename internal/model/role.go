package model

import "time"

// Role represents an RBAC role.
type Role struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleWithPermissions extends Role to include its associated permissions.
type RoleWithPermissions struct {
	*Role
	Permissions []string `json:"permissions"`
}

// CreateRoleRequest is the payload for creating a role.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// UpdateRoleRequest is the payload for updating a role.
type UpdateRoleRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=2,max=100"`
	Permissions []string `json:"permissions" binding:"omitempty,min=1"`
}
