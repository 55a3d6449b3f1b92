package model

import (
	"time"

	"github.com/google/uuid"
)

type TokenBlacklist struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Token     string    `gorm:"type:text;not null;uniqueIndex;column:token" json:"token"`
	ExpiredAt time.Time `gorm:"not null;index;column:expired_at" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

var Columns = []string{"token", "expired_at", "created_at"}
