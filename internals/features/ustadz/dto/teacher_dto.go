package dto

import (
	"strings"

	"tahfidz_backend/internals/features/ustadz/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/google/uuid"
)

type CreateTeacherRequest struct {
	UserID   *uuid.UUID `json:"user_id"`
	Name     string     `json:"name" validate:"required,max=150"`
	Phone    string     `json:"phone" validate:"omitempty,max=30,numeric"`
	Halaqoh  string     `json:"halaqoh" validate:"omitempty,max=80"`
	IsActive *bool      `json:"is_active"`
}

func (r *CreateTeacherRequest) Normalize() {
	r.Name = helper.NormalizeText(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Halaqoh = helper.NormalizeText(r.Halaqoh)
}

func (r CreateTeacherRequest) ToModel() model.TeacherModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.TeacherModel{
		UserID:   r.UserID,
		Name:     r.Name,
		Phone:    r.Phone,
		Halaqoh:  r.Halaqoh,
		IsActive: active,
	}
}

type UpdateTeacherRequest struct {
	UserID   *uuid.UUID `json:"user_id"`
	Name     *string    `json:"name" validate:"omitempty,min=1,max=150"`
	Phone    *string    `json:"phone" validate:"omitempty,max=30,numeric"`
	Halaqoh  *string    `json:"halaqoh" validate:"omitempty,max=80"`
	IsActive *bool      `json:"is_active"`
}

func (r UpdateTeacherRequest) Patch() map[string]any {
	p := map[string]any{}
	if r.UserID != nil {
		p["user_id"] = *r.UserID
	}
	if r.Name != nil {
		p["name"] = helper.NormalizeText(*r.Name)
	}
	if r.Phone != nil {
		p["phone"] = strings.TrimSpace(*r.Phone)
	}
	if r.Halaqoh != nil {
		p["halaqoh"] = helper.NormalizeText(*r.Halaqoh)
	}
	if r.IsActive != nil {
		p["is_active"] = *r.IsActive
	}
	return p
}
