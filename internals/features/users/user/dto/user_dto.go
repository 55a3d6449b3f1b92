package dto

import (
	"strings"
	"time"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=3,max=150"`
	Role     string `json:"role" validate:"required,oneof=admin koordinator ustadz santri"`
}

// Normalize: email lower-case, nama dirapikan.
func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=3,max=150"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin koordinator ustadz santri"`
	IsActive *bool   `json:"is_active"`
}

// Patch hanya memuat kolom yang dikirim.
func (r UpdateUserRequest) Patch() map[string]any {
	p := map[string]any{}
	if r.FullName != nil {
		p["full_name"] = strings.TrimSpace(*r.FullName)
	}
	if r.Role != nil {
		p["role"] = constants.Role(strings.ToLower(*r.Role))
	}
	if r.IsActive != nil {
		p["is_active"] = *r.IsActive
	}
	return p
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UserResponse struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name"`
	Role        constants.Role `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func FromModel(m model.UserModel) UserResponse {
	return UserResponse{
		ID:          m.ID,
		Email:       m.Email,
		FullName:    m.FullName,
		Role:        m.Role,
		IsActive:    m.IsActive,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
