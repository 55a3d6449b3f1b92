package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClassSchedule jadwal halaqoh mingguan. DayOfWeek 1 = Senin ... 7 = Ahad.
type ClassSchedule struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Kelas     string         `gorm:"type:varchar(50);not null;index:idx_schedule_kelas_day,priority:1;column:kelas" json:"kelas"`
	DayOfWeek int            `gorm:"not null;check:day_of_week BETWEEN 1 AND 7;index:idx_schedule_kelas_day,priority:2;column:day_of_week" json:"day_of_week"`
	StartTime datatypes.Time `gorm:"type:time;not null;column:start_time" json:"start_time"`
	EndTime   datatypes.Time `gorm:"type:time;not null;column:end_time" json:"end_time"`
	UstadzID  *uuid.UUID     `gorm:"type:uuid;index;column:ustadz_id" json:"ustadz_id,omitempty"`
	Subject   string         `gorm:"type:varchar(100);column:subject" json:"subject"`
	Room      string         `gorm:"type:varchar(50);column:room" json:"room"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ClassSchedule) TableName() string {
	return "class_schedules"
}

var Columns = []string{"kelas", "day_of_week", "start_time", "end_time", "ustadz_id", "subject", "room", "created_at", "updated_at"}
