package service

import (
	"context"
	"testing"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/progress/classifier"
	"tahfidz_backend/internals/features/progress/targets/dto"
	"tahfidz_backend/internals/features/progress/targets/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTargetService() *TargetService {
	return NewTargetService(gateway.NewMemoryStore[model.TargetConfiguration]("target_configurations", "id"))
}

func fineBands() dto.UpsertTargetRequest {
	return dto.UpsertTargetRequest{
		Kelas:     "7A",
		TargetJuz: 10,
		MerahMin:  0, MerahMax: 4.01,
		KuningMin: 4.04, KuningMax: 7,
		HijauMin: 7.1, HijauMax: 11.4,
		BiruMin: 11.5, BiruMax: 20,
		PinkThreshold: 30,
	}
}

func TestUpsertKeepsFineGrainedBands(t *testing.T) {
	svc := newTargetService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, fineBands())
	require.NoError(t, err)

	got, err := svc.Get(ctx, "7A")
	require.NoError(t, err)
	assert.Equal(t, 4.01, got.MerahMax)
	assert.Equal(t, 4.04, got.KuningMin)
	assert.NoError(t, classifier.ValidateBands(got.Bands()))

	// 4.02 jatuh di celah antara merah dan kuning
	assert.Equal(t, classifier.CategoryRed, classifier.Classify(4.0, ptr(got.Bands())))
	assert.Equal(t, classifier.CategoryGray, classifier.Classify(4.02, ptr(got.Bands())))
	assert.Equal(t, classifier.CategoryYellow, classifier.Classify(4.05, ptr(got.Bands())))
}

func TestUpsertRejectsTouchingBands(t *testing.T) {
	svc := newTargetService()
	req := fineBands()
	req.KuningMin = 4.01

	_, err := svc.Upsert(context.Background(), req)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func ptr[T any](v T) *T { return &v }
