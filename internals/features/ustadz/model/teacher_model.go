package model

import (
	"time"

	"github.com/google/uuid"
)

type TeacherModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex;column:user_id" json:"user_id,omitempty"`
	Name      string     `gorm:"type:varchar(150);not null;column:name" json:"name"`
	Phone     string     `gorm:"type:varchar(30);column:phone" json:"phone"`
	Halaqoh   string     `gorm:"type:varchar(80);index;column:halaqoh" json:"halaqoh"`
	IsActive  bool       `gorm:"not null;column:is_active" json:"is_active"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TeacherModel) TableName() string {
	return "teachers"
}

var Columns = []string{"user_id", "name", "phone", "halaqoh", "is_active", "created_at", "updated_at"}
