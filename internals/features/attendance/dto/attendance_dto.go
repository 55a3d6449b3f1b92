package dto

import (
	"strings"
	"time"

	"tahfidz_backend/internals/features/attendance/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/google/uuid"
)

type CreateAttendanceRequest struct {
	UstadzID uuid.UUID `json:"ustadz_id" validate:"required"`
	Date     string    `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string    `json:"status" validate:"required,oneof=hadir izin sakit alpha"`
	CheckIn  string    `json:"check_in" validate:"omitempty"`
	Notes    string    `json:"notes" validate:"omitempty,max=500"`
}

func (r *CreateAttendanceRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Notes = strings.TrimSpace(r.Notes)
}

type UpdateAttendanceRequest struct {
	Status       *string `json:"status" validate:"omitempty,oneof=hadir izin sakit alpha"`
	CheckIn      *string `json:"check_in"`
	ClearCheckIn bool    `json:"clear_check_in"`
	Notes        *string `json:"notes" validate:"omitempty,max=500"`
}

type AttendanceResponse struct {
	ID         uuid.UUID              `json:"id"`
	UstadzID   uuid.UUID              `json:"ustadz_id"`
	UstadzName string                 `json:"ustadz_name,omitempty"`
	Date       string                 `json:"date"`
	Status     model.AttendanceStatus `json:"status"`
	CheckIn    string                 `json:"check_in,omitempty"`
	Notes      string                 `json:"notes"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

func FromModel(m model.TeacherAttendanceModel, names map[uuid.UUID]string) AttendanceResponse {
	out := AttendanceResponse{
		ID:         m.ID,
		UstadzID:   m.UstadzID,
		UstadzName: names[m.UstadzID],
		Date:       helper.FormatDate(m.Date),
		Status:     m.Status,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.CheckIn != nil {
		out.CheckIn = helper.FormatClock(*m.CheckIn)
	}
	return out
}

// RecapRow jumlah per status satu ustadz dalam rentang tanggal.
type RecapRow struct {
	UstadzID       uuid.UUID `json:"ustadz_id"`
	UstadzName     string    `json:"ustadz_name"`
	Hadir          int       `json:"hadir"`
	Izin           int       `json:"izin"`
	Sakit          int       `json:"sakit"`
	Alpha          int       `json:"alpha"`
	Total          int       `json:"total"`
	AttendanceRate float64   `json:"attendance_rate"`
}

type Recap struct {
	From string     `json:"from"`
	To   string     `json:"to"`
	Rows []RecapRow `json:"rows"`
}
