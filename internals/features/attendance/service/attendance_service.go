package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/attendance/dto"
	"tahfidz_backend/internals/features/attendance/model"
	ustadzModel "tahfidz_backend/internals/features/ustadz/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxRecapDays batas rentang rekap (satu tahun).
const MaxRecapDays = 366

type TeacherDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*ustadzModel.TeacherModel, error)
	Names(ctx context.Context) (map[uuid.UUID]string, error)
}

type AttendanceService struct {
	Attendances gateway.Store[model.TeacherAttendanceModel]
	Teachers    TeacherDirectory
}

func NewAttendanceService(store gateway.Store[model.TeacherAttendanceModel], teachers TeacherDirectory) *AttendanceService {
	return &AttendanceService{Attendances: store, Teachers: teachers}
}

type ListFilter struct {
	From     *time.Time
	To       *time.Time
	UstadzID *uuid.UUID
	Status   string
}

func (f ListFilter) filters() []gateway.Filter {
	var out []gateway.Filter
	if f.From != nil {
		out = append(out, gateway.Filter{Column: "date", Op: gateway.OpGte, Value: *f.From})
	}
	if f.To != nil {
		out = append(out, gateway.Filter{Column: "date", Op: gateway.OpLte, Value: *f.To})
	}
	if f.UstadzID != nil {
		out = append(out, gateway.Eq("ustadz_id", *f.UstadzID))
	}
	if f.Status != "" {
		out = append(out, gateway.Eq("status", f.Status))
	}
	return out
}

func (s *AttendanceService) List(ctx context.Context, f ListFilter, p helper.Paging) ([]dto.AttendanceResponse, int64, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "from tidak boleh setelah to")
	}
	q := gateway.Query{Filters: f.filters()}
	total, err := s.Attendances.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	q.Order = []gateway.Order{{Column: "date", Desc: true}, {Column: "created_at", Desc: true}}
	q.Limit, q.Offset = p.Limit, p.Offset
	rows, err := s.Attendances.Query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	names, err := s.Teachers.Names(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r, names))
	}
	return out, total, nil
}

func (s *AttendanceService) Get(ctx context.Context, id uuid.UUID) (*model.TeacherAttendanceModel, error) {
	m, err := s.Attendances.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Data absensi tidak ditemukan")
	}
	return m, err
}

// Create: satu ustadz hanya satu absensi per tanggal.
func (s *AttendanceService) Create(ctx context.Context, actor uuid.UUID, req dto.CreateAttendanceRequest) (*model.TeacherAttendanceModel, error) {
	req.Normalize()
	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if _, err := s.Teachers.Get(ctx, req.UstadzID); err != nil {
		return nil, err
	}

	_, err = s.Attendances.FindOne(ctx, gateway.Eq("ustadz_id", req.UstadzID), gateway.Eq("date", date))
	if err == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Absensi ustadz untuk tanggal ini sudah ada")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := model.TeacherAttendanceModel{
		UstadzID: req.UstadzID,
		Date:     datatypes.Date(date),
		Status:   model.AttendanceStatus(req.Status),
		Notes:    req.Notes,
	}
	if actor != uuid.Nil {
		m.RecordedBy = &actor
	}
	if req.CheckIn != "" {
		ci, err := helper.ParseClock(req.CheckIn)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		m.CheckIn = &ci
	}
	if err := s.Attendances.Insert(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AttendanceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAttendanceRequest) (*model.TeacherAttendanceModel, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	patch := map[string]any{}
	if req.Status != nil {
		patch["status"] = model.AttendanceStatus(*req.Status)
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}
	switch {
	case req.ClearCheckIn:
		patch["check_in"] = nil
	case req.CheckIn != nil:
		ci, err := helper.ParseClock(*req.CheckIn)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		patch["check_in"] = ci
	}
	return s.Attendances.Update(ctx, id, patch)
}

func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Attendances.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Data absensi tidak ditemukan")
	}
	return err
}

// Recap menghitung jumlah per status per ustadz dalam [from, to].
func (s *AttendanceService) Recap(ctx context.Context, from, to time.Time, ustadzID *uuid.UUID) (*dto.Recap, error) {
	if from.After(to) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "from tidak boleh setelah to")
	}
	if to.Sub(from) > MaxRecapDays*24*time.Hour {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Rentang rekap maksimal satu tahun")
	}

	rows, err := s.Attendances.Query(ctx, gateway.Query{Filters: ListFilter{From: &from, To: &to, UstadzID: ustadzID}.filters()})
	if err != nil {
		return nil, err
	}
	names, err := s.Teachers.Names(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.Recap{
		From: from.Format(helper.DateLayout),
		To:   to.Format(helper.DateLayout),
		Rows: BuildRecap(rows, names),
	}, nil
}

func BuildRecap(rows []model.TeacherAttendanceModel, names map[uuid.UUID]string) []dto.RecapRow {
	byID := map[uuid.UUID]*dto.RecapRow{}
	for _, r := range rows {
		rr, ok := byID[r.UstadzID]
		if !ok {
			rr = &dto.RecapRow{UstadzID: r.UstadzID, UstadzName: names[r.UstadzID]}
			byID[r.UstadzID] = rr
		}
		switch r.Status {
		case model.StatusHadir:
			rr.Hadir++
		case model.StatusIzin:
			rr.Izin++
		case model.StatusSakit:
			rr.Sakit++
		case model.StatusAlpha:
			rr.Alpha++
		}
		rr.Total++
	}

	out := make([]dto.RecapRow, 0, len(byID))
	for _, rr := range byID {
		if rr.Total > 0 {
			rr.AttendanceRate = math.Round(float64(rr.Hadir)/float64(rr.Total)*1000) / 10
		}
		out = append(out, *rr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UstadzName != out[j].UstadzName {
			return out[i].UstadzName < out[j].UstadzName
		}
		return out[i].UstadzID.String() < out[j].UstadzID.String()
	})
	return out
}

func RecapXLSX(r *dto.Recap) (*excelize.File, error) {
	data := make([][]any, 0, len(r.Rows))
	for i, row := range r.Rows {
		data = append(data, []any{i + 1, row.UstadzName, row.Hadir, row.Izin, row.Sakit, row.Alpha, row.Total, row.AttendanceRate})
	}
	return helper.BuildSheet("Rekap Absensi",
		[]string{"No", "Ustadz", "Hadir", "Izin", "Sakit", "Alpha", "Total", "% Hadir"}, data)
}
