package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	NIS       string     `gorm:"type:varchar(30);uniqueIndex;not null;column:nis" json:"nis"`
	Name      string     `gorm:"type:varchar(150);not null;column:name" json:"name"`
	ClassName string     `gorm:"type:varchar(50);not null;index;column:class_name" json:"class_name"`
	Gender    string     `gorm:"type:varchar(1);column:gender" json:"gender"`
	UstadzID  *uuid.UUID `gorm:"type:uuid;index;column:ustadz_id" json:"ustadz_id,omitempty"`
	IsActive  bool       `gorm:"not null;column:is_active" json:"is_active"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

var Columns = []string{"nis", "name", "class_name", "gender", "ustadz_id", "is_active", "created_at", "updated_at"}
