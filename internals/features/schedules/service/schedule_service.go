package service

import (
	"context"
	"errors"
	"fmt"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/schedules/dto"
	"tahfidz_backend/internals/features/schedules/model"
	ustadzModel "tahfidz_backend/internals/features/ustadz/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeacherDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*ustadzModel.TeacherModel, error)
	Names(ctx context.Context) (map[uuid.UUID]string, error)
}

type ScheduleService struct {
	Schedules gateway.Store[model.ClassSchedule]
	Teachers  TeacherDirectory
}

func NewScheduleService(store gateway.Store[model.ClassSchedule], teachers TeacherDirectory) *ScheduleService {
	return &ScheduleService{Schedules: store, Teachers: teachers}
}

type ListFilter struct {
	Kelas     string
	DayOfWeek int
	UstadzID  *uuid.UUID
}

func (s *ScheduleService) List(ctx context.Context, f ListFilter) ([]dto.ScheduleResponse, error) {
	q := gateway.Query{Order: []gateway.Order{{Column: "day_of_week"}, {Column: "start_time"}, {Column: "kelas"}}}
	if k := helper.NormalizeText(f.Kelas); k != "" {
		q.Filters = append(q.Filters, gateway.Eq("kelas", k))
	}
	if f.DayOfWeek != 0 {
		q.Filters = append(q.Filters, gateway.Eq("day_of_week", f.DayOfWeek))
	}
	if f.UstadzID != nil {
		q.Filters = append(q.Filters, gateway.Eq("ustadz_id", *f.UstadzID))
	}
	rows, err := s.Schedules.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	names, err := s.Teachers.Names(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r, names))
	}
	return out, nil
}

func (s *ScheduleService) build(ctx context.Context, req dto.ScheduleRequest) (*model.ClassSchedule, error) {
	req.Normalize()
	if req.Kelas == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "kelas wajib diisi")
	}
	if req.DayOfWeek < 1 || req.DayOfWeek > 7 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "day_of_week harus 1 (Senin) sampai 7 (Ahad)")
	}
	start, err := helper.ParseClock(req.StartTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "start_time: "+err.Error())
	}
	end, err := helper.ParseClock(req.EndTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "end_time: "+err.Error())
	}
	if end <= start {
		return nil, fiber.NewError(fiber.StatusBadRequest, "end_time harus setelah start_time")
	}
	if req.UstadzID != nil {
		if _, err := s.Teachers.Get(ctx, *req.UstadzID); err != nil {
			return nil, err
		}
	}
	return &model.ClassSchedule{
		Kelas:     req.Kelas,
		DayOfWeek: req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		UstadzID:  req.UstadzID,
		Subject:   req.Subject,
		Room:      req.Room,
	}, nil
}

func overlaps(aStart, aEnd, bStart, bEnd datatypes.Time) bool {
	return aStart < bEnd && bStart < aEnd
}

// checkConflict: kelas yang sama atau ustadz yang sama tidak boleh bentrok di hari yang sama.
func (s *ScheduleService) checkConflict(ctx context.Context, m *model.ClassSchedule, except uuid.UUID) error {
	sameDay, err := s.Schedules.Query(ctx, gateway.Query{Filters: []gateway.Filter{gateway.Eq("day_of_week", m.DayOfWeek)}})
	if err != nil {
		return err
	}
	for _, o := range sameDay {
		if o.ID == except || !overlaps(m.StartTime, m.EndTime, o.StartTime, o.EndTime) {
			continue
		}
		if o.Kelas == m.Kelas {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Bentrok dengan jadwal kelas %s %s-%s",
				o.Kelas, helper.FormatClock(o.StartTime), helper.FormatClock(o.EndTime)))
		}
		if m.UstadzID != nil && o.UstadzID != nil && *m.UstadzID == *o.UstadzID {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Ustadz sudah mengajar kelas %s di jam %s-%s",
				o.Kelas, helper.FormatClock(o.StartTime), helper.FormatClock(o.EndTime)))
		}
	}
	return nil
}

func (s *ScheduleService) Create(ctx context.Context, req dto.ScheduleRequest) (*model.ClassSchedule, error) {
	m, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkConflict(ctx, m, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.Schedules.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update mengganti seluruh isi jadwal (PUT).
func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, req dto.ScheduleRequest) (*model.ClassSchedule, error) {
	if _, err := s.Schedules.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Jadwal tidak ditemukan")
		}
		return nil, err
	}
	m, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkConflict(ctx, m, id); err != nil {
		return nil, err
	}
	var ustadz any
	if m.UstadzID != nil {
		ustadz = *m.UstadzID
	}
	return s.Schedules.Update(ctx, id, map[string]any{
		"kelas":       m.Kelas,
		"day_of_week": m.DayOfWeek,
		"start_time":  m.StartTime,
		"end_time":    m.EndTime,
		"ustadz_id":   ustadz,
		"subject":     m.Subject,
		"room":        m.Room,
	})
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Schedules.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Jadwal tidak ditemukan")
	}
	return err
}
