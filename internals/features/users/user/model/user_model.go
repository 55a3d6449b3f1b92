package model

import (
	"time"

	"tahfidz_backend/internals/constants"

	"github.com/google/uuid"
)

type UserModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null;column:email" json:"email"`
	Password    string         `gorm:"type:text;not null;column:password" json:"-"`
	FullName    string         `gorm:"type:varchar(150);not null;column:full_name" json:"full_name"`
	Role        constants.Role `gorm:"type:varchar(20);not null;index;column:role" json:"role"`
	IsActive    bool           `gorm:"not null;column:is_active" json:"is_active"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// Kolom yang boleh dipakai di filter/sort gateway.
var Columns = []string{"email", "password", "full_name", "role", "is_active", "last_login_at", "created_at", "updated_at"}
