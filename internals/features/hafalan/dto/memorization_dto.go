package dto

import (
	"strings"
	"time"

	"tahfidz_backend/internals/features/hafalan/model"
	"tahfidz_backend/internals/features/progress/classifier"

	"github.com/google/uuid"
)

type CreateMemorizationRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Juz       float64   `json:"juz" validate:"gt=0,lte=30"`
	Quality   string    `json:"quality" validate:"omitempty,oneof=mumtaz jayyid_jiddan jayyid maqbul"`
	Notes     string    `json:"notes" validate:"omitempty,max=1000"`
}

func (r *CreateMemorizationRequest) Normalize() {
	r.Quality = strings.ToLower(strings.TrimSpace(r.Quality))
	r.Notes = strings.TrimSpace(r.Notes)
}

type MemorizationResponse struct {
	ID                     uuid.UUID     `json:"id"`
	StudentID              uuid.UUID     `json:"student_id"`
	StudentName            string        `json:"student_name,omitempty"`
	ClassName              string        `json:"class_name,omitempty"`
	Juz                    float64       `json:"juz"`
	AccumulatedQuantityX10 int           `json:"accumulated_quantity_x10"`
	Quality                model.Quality `json:"quality"`
	Notes                  string        `json:"notes"`
	CreatedAt              time.Time     `json:"created_at"`
}

type StudentInfo struct {
	Name      string
	ClassName string
}

func FromModel(m model.MemorizationRecord, who map[uuid.UUID]StudentInfo) MemorizationResponse {
	info := who[m.StudentID]
	return MemorizationResponse{
		ID:                     m.ID,
		StudentID:              m.StudentID,
		StudentName:            info.Name,
		ClassName:              info.ClassName,
		Juz:                    classifier.DecodeJuz(m.AccumulatedQuantityX10),
		AccumulatedQuantityX10: m.AccumulatedQuantityX10,
		Quality:                m.Quality,
		Notes:                  m.Notes,
		CreatedAt:              m.CreatedAt,
	}
}
