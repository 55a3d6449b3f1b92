package model

import (
	"time"

	santriModel "tahfidz_backend/internals/features/santri/model"

	"github.com/google/uuid"
)

type Quality string

const (
	QualityMumtaz       Quality = "mumtaz"
	QualityJayyidJiddan Quality = "jayyid_jiddan"
	QualityJayyid       Quality = "jayyid"
	QualityMaqbul       Quality = "maqbul"
)

// MemorizationRecord satu setoran. Jumlah hafalan kumulatif disimpan sebagai
// juz × 10 (integer), dibaca ulang dengan classifier.DecodeJuz.
type MemorizationRecord struct {
	ID                     uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StudentID              uuid.UUID  `gorm:"type:uuid;not null;index:idx_memorization_student_created,priority:1;column:student_id" json:"student_id"`
	AccumulatedQuantityX10 int        `gorm:"not null;check:accumulated_quantity_x10 >= 0;column:accumulated_quantity_x10" json:"accumulated_quantity_x10"`
	Quality                Quality    `gorm:"type:varchar(20);column:quality" json:"quality"`
	Notes                  string     `gorm:"type:text;column:notes" json:"notes"`
	RecordedBy             *uuid.UUID `gorm:"type:uuid;column:recorded_by" json:"recorded_by,omitempty"`
	CreatedAt              time.Time  `gorm:"not null;index:idx_memorization_student_created,priority:2;column:created_at;autoCreateTime" json:"created_at"`

	// setoran ikut terhapus bersama santrinya
	Student *santriModel.StudentModel `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MemorizationRecord) TableName() string {
	return "memorization_records"
}

var Columns = []string{"student_id", "accumulated_quantity_x10", "quality", "notes", "recorded_by", "created_at"}
