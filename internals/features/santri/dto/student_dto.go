package dto

import (
	"strings"
	"time"

	"tahfidz_backend/internals/features/santri/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/google/uuid"
)

type CreateStudentRequest struct {
	NIS       string     `json:"nis" validate:"required,max=30"`
	Name      string     `json:"name" validate:"required,max=150"`
	ClassName string     `json:"class_name" validate:"required,max=50"`
	Gender    string     `json:"gender" validate:"omitempty,oneof=L P"`
	UstadzID  *uuid.UUID `json:"ustadz_id"`
	IsActive  *bool      `json:"is_active"`
}

// Normalize: kelas & nama di-NFC supaya lookup target per kelas cocok persis.
func (r *CreateStudentRequest) Normalize() {
	r.NIS = strings.TrimSpace(r.NIS)
	r.Name = helper.NormalizeText(r.Name)
	r.ClassName = helper.NormalizeText(r.ClassName)
	r.Gender = strings.ToUpper(strings.TrimSpace(r.Gender))
}

func (r CreateStudentRequest) ToModel() model.StudentModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.StudentModel{
		NIS:       r.NIS,
		Name:      r.Name,
		ClassName: r.ClassName,
		Gender:    r.Gender,
		UstadzID:  r.UstadzID,
		IsActive:  active,
	}
}

type UpdateStudentRequest struct {
	NIS         *string    `json:"nis" validate:"omitempty,max=30"`
	Name        *string    `json:"name" validate:"omitempty,max=150"`
	ClassName   *string    `json:"class_name" validate:"omitempty,max=50"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=L P"`
	UstadzID    *uuid.UUID `json:"ustadz_id"`
	ClearUstadz bool       `json:"clear_ustadz"`
	IsActive    *bool      `json:"is_active"`
}

func (r *UpdateStudentRequest) Normalize() {
	if r.Gender != nil {
		g := strings.ToUpper(strings.TrimSpace(*r.Gender))
		r.Gender = &g
	}
}

func (r UpdateStudentRequest) Patch() map[string]any {
	p := map[string]any{}
	if r.NIS != nil {
		p["nis"] = strings.TrimSpace(*r.NIS)
	}
	if r.Name != nil {
		p["name"] = helper.NormalizeText(*r.Name)
	}
	if r.ClassName != nil {
		p["class_name"] = helper.NormalizeText(*r.ClassName)
	}
	if r.Gender != nil {
		p["gender"] = *r.Gender
	}
	if r.ClearUstadz {
		p["ustadz_id"] = nil
	} else if r.UstadzID != nil {
		p["ustadz_id"] = *r.UstadzID
	}
	if r.IsActive != nil {
		p["is_active"] = *r.IsActive
	}
	return p
}

type StudentResponse struct {
	ID        uuid.UUID  `json:"id"`
	NIS       string     `json:"nis"`
	Name      string     `json:"name"`
	ClassName string     `json:"class_name"`
	Gender    string     `json:"gender"`
	UstadzID  *uuid.UUID `json:"ustadz_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func FromModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		ID:        m.ID,
		NIS:       m.NIS,
		Name:      m.Name,
		ClassName: m.ClassName,
		Gender:    m.Gender,
		UstadzID:  m.UstadzID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// ImportRow satu baris CSV (header: nis,name,class_name,gender).
type ImportRow struct {
	NIS       string `validate:"required,max=30"`
	Name      string `validate:"required,max=150"`
	ClassName string `validate:"required,max=50"`
	Gender    string `validate:"omitempty,oneof=L P"`
}

type ImportRowError struct {
	Line  int    `json:"line"`
	NIS   string `json:"nis,omitempty"`
	Error string `json:"error"`
}

type ImportReport struct {
	Processed int              `json:"processed"`
	Upserted  int              `json:"upserted"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors"`
}
