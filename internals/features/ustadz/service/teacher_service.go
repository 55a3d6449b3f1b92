package service

import (
	"context"
	"errors"
	"strings"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/ustadz/dto"
	"tahfidz_backend/internals/features/ustadz/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherService struct {
	Teachers gateway.Store[model.TeacherModel]
}

func NewTeacherService(store gateway.Store[model.TeacherModel]) *TeacherService {
	return &TeacherService{Teachers: store}
}

type ListFilter struct {
	Q        string
	Halaqoh  string
	IsActive *bool
}

func (s *TeacherService) List(ctx context.Context, f ListFilter, p helper.Paging) ([]model.TeacherModel, int64, error) {
	q := gateway.Query{}
	if v := strings.TrimSpace(f.Q); v != "" {
		q.Filters = append(q.Filters, gateway.Filter{Column: "name", Op: gateway.OpIlike, Value: v})
	}
	if v := helper.NormalizeText(f.Halaqoh); v != "" {
		q.Filters = append(q.Filters, gateway.Eq("halaqoh", v))
	}
	if f.IsActive != nil {
		q.Filters = append(q.Filters, gateway.Eq("is_active", *f.IsActive))
	}
	total, err := s.Teachers.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	q.Order = []gateway.Order{{Column: "name"}}
	q.Limit, q.Offset = p.Limit, p.Offset
	rows, err := s.Teachers.Query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *TeacherService) Get(ctx context.Context, id uuid.UUID) (*model.TeacherModel, error) {
	m, err := s.Teachers.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Ustadz tidak ditemukan")
	}
	return m, err
}

// Names peta id → nama, dipakai rekap absensi & jadwal.
func (s *TeacherService) Names(ctx context.Context) (map[uuid.UUID]string, error) {
	rows, err := s.Teachers.Query(ctx, gateway.Query{})
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Name
	}
	return out, nil
}

func (s *TeacherService) ensureUserFree(ctx context.Context, userID *uuid.UUID, except uuid.UUID) error {
	if userID == nil {
		return nil
	}
	cur, err := s.Teachers.FindOne(ctx, gateway.Eq("user_id", *userID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if cur.ID != except {
		return fiber.NewError(fiber.StatusConflict, "Akun user sudah terhubung ke ustadz lain")
	}
	return nil
}

func (s *TeacherService) Create(ctx context.Context, req dto.CreateTeacherRequest) (*model.TeacherModel, error) {
	req.Normalize()
	if err := s.ensureUserFree(ctx, req.UserID, uuid.Nil); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := s.Teachers.Insert(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *TeacherService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTeacherRequest) (*model.TeacherModel, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureUserFree(ctx, req.UserID, id); err != nil {
		return nil, err
	}
	return s.Teachers.Update(ctx, id, req.Patch())
}

func (s *TeacherService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Teachers.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Ustadz tidak ditemukan")
	}
	return err
}
