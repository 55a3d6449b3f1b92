package dto

import (
	"strings"
	"time"

	"tahfidz_backend/internals/constants"
	userDTO "tahfidz_backend/internals/features/users/user/dto"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type LoginResponse struct {
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type"`
	ExpiresAt   time.Time              `json:"expires_at"`
	User        userDTO.UserResponse   `json:"user"`
	Permissions []constants.Permission `json:"permissions"`
}

type MeResponse struct {
	User        userDTO.UserResponse   `json:"user"`
	Permissions []constants.Permission `json:"permissions"`
}
