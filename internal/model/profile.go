package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a student identity record.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Institution  *string   `json:"institution,omitempty"`
	Level        ExamType  `json:"level"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for student registration.
type RegisterRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Email       string  `json:"email" binding:"required,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,min=6,max=20"`
	Institution *string `json:"institution" binding:"omitempty,max=255"`
	Level       string  `json:"level" binding:"required,oneof=HSC SSC UNIVERSITY JOB"`
	Password    string  `json:"password" binding:"required,min=6,max=128"`
}

// UpdateProfileRequest is the payload for partial profile updates. Empty
// fields are left untouched.
type UpdateProfileRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=2,max=100"`
	Email       string  `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,min=6,max=20"`
	Institution *string `json:"institution" binding:"omitempty,max=255"`
	Level       string  `json:"level" binding:"omitempty,oneof=HSC SSC UNIVERSITY JOB"`
	Password    string  `json:"password" binding:"omitempty,min=6,max=128"`
}

// ToRegisterRequest adapts the update payload to the shape the service's
// partial-update logic consumes.
func (r *UpdateProfileRequest) ToRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Institution: r.Institution,
		Level:       r.Level,
		Password:    r.Password,
	}
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// StudentLoginResponse is returned after successful student login.
type StudentLoginResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}
