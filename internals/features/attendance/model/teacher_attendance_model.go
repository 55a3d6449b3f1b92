package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	StatusHadir AttendanceStatus = "hadir"
	StatusIzin  AttendanceStatus = "izin"
	StatusSakit AttendanceStatus = "sakit"
	StatusAlpha AttendanceStatus = "alpha"
)

var AllStatuses = []AttendanceStatus{StatusHadir, StatusIzin, StatusSakit, StatusAlpha}

type TeacherAttendanceModel struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UstadzID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_attendance_ustadz_date,priority:1;column:ustadz_id" json:"ustadz_id"`
	Date       datatypes.Date   `gorm:"type:date;not null;uniqueIndex:uq_teacher_attendance_ustadz_date,priority:2;index;column:date" json:"date"`
	Status     AttendanceStatus `gorm:"type:varchar(10);not null;column:status" json:"status"`
	CheckIn    *datatypes.Time  `gorm:"type:time;column:check_in" json:"check_in,omitempty"`
	Notes      string           `gorm:"type:text;column:notes" json:"notes"`
	RecordedBy *uuid.UUID       `gorm:"type:uuid;column:recorded_by" json:"recorded_by,omitempty"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TeacherAttendanceModel) TableName() string {
	return "teacher_attendances"
}

var Columns = []string{"ustadz_id", "date", "status", "check_in", "notes", "recorded_by", "created_at", "updated_at"}
