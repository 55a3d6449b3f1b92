package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/santri/dto"
	"tahfidz_backend/internals/features/santri/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentService struct {
	Students gateway.Store[model.StudentModel]
	Validate *validator.Validate
}

func NewStudentService(store gateway.Store[model.StudentModel]) *StudentService {
	return &StudentService{Students: store, Validate: validator.New()}
}

type ListFilter struct {
	ClassName string
	Q         string
	IsActive  *bool
	UstadzID  *uuid.UUID
	Sort      helper.SortParam
}

func (f ListFilter) filters() []gateway.Filter {
	var out []gateway.Filter
	if v := helper.NormalizeText(f.ClassName); v != "" {
		out = append(out, gateway.Eq("class_name", v))
	}
	if v := strings.TrimSpace(f.Q); v != "" {
		out = append(out, gateway.Filter{Column: "name", Op: gateway.OpIlike, Value: v})
	}
	if f.IsActive != nil {
		out = append(out, gateway.Eq("is_active", *f.IsActive))
	}
	if f.UstadzID != nil {
		out = append(out, gateway.Eq("ustadz_id", *f.UstadzID))
	}
	return out
}

func (f ListFilter) order() []gateway.Order {
	if f.Sort.Column == "" {
		return []gateway.Order{{Column: "class_name"}, {Column: "name"}}
	}
	return []gateway.Order{{Column: f.Sort.Column, Desc: f.Sort.Desc}}
}

func (s *StudentService) List(ctx context.Context, f ListFilter, p helper.Paging) ([]model.StudentModel, int64, error) {
	q := gateway.Query{Filters: f.filters()}
	total, err := s.Students.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	q.Order = f.order()
	q.Limit, q.Offset = p.Limit, p.Offset
	rows, err := s.Students.Query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// All tanpa paging, untuk export.
func (s *StudentService) All(ctx context.Context, f ListFilter) ([]model.StudentModel, error) {
	return s.Students.Query(ctx, gateway.Query{Filters: f.filters(), Order: f.order()})
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	m, err := s.Students.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Santri tidak ditemukan")
	}
	return m, err
}

func (s *StudentService) ensureUniqueNIS(ctx context.Context, nis string, except uuid.UUID) error {
	cur, err := s.Students.FindOne(ctx, gateway.Eq("nis", nis))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if cur.ID != except {
		return fiber.NewError(fiber.StatusConflict, "NIS sudah dipakai santri lain")
	}
	return nil
}

func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*model.StudentModel, error) {
	req.Normalize()
	if err := s.ensureUniqueNIS(ctx, req.NIS, uuid.Nil); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := s.Students.Insert(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStudentRequest) (*model.StudentModel, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	patch := req.Patch()
	if nis, ok := patch["nis"].(string); ok {
		if nis == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "NIS tidak boleh kosong")
		}
		if err := s.ensureUniqueNIS(ctx, nis, id); err != nil {
			return nil, err
		}
	}
	if cls, ok := patch["class_name"].(string); ok && cls == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kelas tidak boleh kosong")
	}
	return s.Students.Update(ctx, id, patch)
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Students.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Santri tidak ditemukan")
	}
	return err
}

// Classes: nama kelas unik (santri aktif & nonaktif), terurut.
func (s *StudentService) Classes(ctx context.Context) ([]string, error) {
	rows, err := s.Students.Query(ctx, gateway.Query{})
	if err != nil {
		return nil, err
	}
	return DistinctClasses(rows), nil
}

func DistinctClasses(rows []model.StudentModel) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0)
	for _, r := range rows {
		k := r.ClassName
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
