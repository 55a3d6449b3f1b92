package service

import (
	"context"
	"errors"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/progress/classifier"
	"tahfidz_backend/internals/features/progress/targets/dto"
	"tahfidz_backend/internals/features/progress/targets/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TargetService struct {
	Targets gateway.Store[model.TargetConfiguration]
}

func NewTargetService(store gateway.Store[model.TargetConfiguration]) *TargetService {
	return &TargetService{Targets: store}
}

func (s *TargetService) List(ctx context.Context) ([]model.TargetConfiguration, error) {
	return s.Targets.Query(ctx, gateway.Query{Order: []gateway.Order{{Column: "kelas"}}})
}

// Bands seluruh konfigurasi dalam bentuk classifier.
func (s *TargetService) Bands(ctx context.Context) ([]classifier.TargetBands, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]classifier.TargetBands, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Bands())
	}
	return out, nil
}

func (s *TargetService) Get(ctx context.Context, kelas string) (*model.TargetConfiguration, error) {
	t, err := s.Targets.FindOne(ctx, gateway.Eq("kelas", helper.NormalizeText(kelas)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Target untuk kelas ini belum diatur")
	}
	return t, err
}

// Upsert menyimpan target per kelas (ON CONFLICT kelas). Validasi dijalankan
// sebelum menulis apa pun.
func (s *TargetService) Upsert(ctx context.Context, req dto.UpsertTargetRequest) (*model.TargetConfiguration, error) {
	req.Normalize()
	row := req.ToModel()
	if err := classifier.ValidateBands(row.Bands()); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := s.Targets.Upsert(ctx, &row, "kelas", model.UpsertColumns...); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *TargetService) Delete(ctx context.Context, kelas string) error {
	t, err := s.Get(ctx, kelas)
	if err != nil {
		return err
	}
	return s.Targets.Delete(ctx, t.ID)
}
