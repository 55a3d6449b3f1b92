package dto

import (
	"strings"
	"time"

	"tahfidz_backend/internals/features/schedules/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/google/uuid"
)

var dayNames = [...]string{"", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Ahad"}

func DayName(d int) string {
	if d < 1 || d > 7 {
		return ""
	}
	return dayNames[d]
}

type ScheduleRequest struct {
	Kelas     string     `json:"kelas" validate:"required,max=50"`
	DayOfWeek int        `json:"day_of_week" validate:"required,min=1,max=7"`
	StartTime string     `json:"start_time" validate:"required"`
	EndTime   string     `json:"end_time" validate:"required"`
	UstadzID  *uuid.UUID `json:"ustadz_id"`
	Subject   string     `json:"subject" validate:"omitempty,max=100"`
	Room      string     `json:"room" validate:"omitempty,max=50"`
}

func (r *ScheduleRequest) Normalize() {
	r.Kelas = helper.NormalizeText(r.Kelas)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Room = strings.TrimSpace(r.Room)
}

type ScheduleResponse struct {
	ID         uuid.UUID  `json:"id"`
	Kelas      string     `json:"kelas"`
	DayOfWeek  int        `json:"day_of_week"`
	DayName    string     `json:"day_name"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	UstadzID   *uuid.UUID `json:"ustadz_id,omitempty"`
	UstadzName string     `json:"ustadz_name,omitempty"`
	Subject    string     `json:"subject"`
	Room       string     `json:"room"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func FromModel(m model.ClassSchedule, names map[uuid.UUID]string) ScheduleResponse {
	out := ScheduleResponse{
		ID:        m.ID,
		Kelas:     m.Kelas,
		DayOfWeek: m.DayOfWeek,
		DayName:   DayName(m.DayOfWeek),
		StartTime: helper.FormatClock(m.StartTime),
		EndTime:   helper.FormatClock(m.EndTime),
		UstadzID:  m.UstadzID,
		Subject:   m.Subject,
		Room:      m.Room,
		UpdatedAt: m.UpdatedAt,
	}
	if m.UstadzID != nil {
		out.UstadzName = names[*m.UstadzID]
	}
	return out
}
