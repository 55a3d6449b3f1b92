package service

import (
	"context"
	"testing"
	"time"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/hafalan/dto"
	"tahfidz_backend/internals/features/hafalan/model"
	santriModel "tahfidz_backend/internals/features/santri/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*MemorizationService, santriModel.StudentModel, santriModel.StudentModel) {
	t.Helper()
	students := gateway.NewMemoryStore[santriModel.StudentModel]("students", "id")
	a := &santriModel.StudentModel{NIS: "1", Name: "Ahmad", ClassName: "7A", IsActive: true}
	b := &santriModel.StudentModel{NIS: "2", Name: "Bilal", ClassName: "7B", IsActive: true}
	require.NoError(t, students.Insert(context.Background(), a, b))
	return NewMemorizationService(gateway.NewMemoryStore[model.MemorizationRecord]("memorization_records", "id"), students), *a, *b
}

func TestCreateEncodesJuz(t *testing.T) {
	svc, a, _ := setup(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, uuid.Nil, dto.CreateMemorizationRequest{StudentID: a.ID, Juz: 2.25, Quality: "Mumtaz"})
	require.NoError(t, err)
	assert.Equal(t, 23, resp.AccumulatedQuantityX10)
	assert.InDelta(t, 2.3, resp.Juz, 1e-9)
	assert.Equal(t, model.QualityMumtaz, resp.Quality)
	assert.Equal(t, "Ahmad", resp.StudentName)

	for _, bad := range []float64{0, -1, 0.04, 30.5} {
		_, err := svc.Create(ctx, uuid.Nil, dto.CreateMemorizationRequest{StudentID: a.ID, Juz: bad})
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	}

	resp, err = svc.Create(ctx, uuid.Nil, dto.CreateMemorizationRequest{StudentID: a.ID, Juz: 0.05})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AccumulatedQuantityX10)

	_, err = svc.Create(ctx, uuid.Nil, dto.CreateMemorizationRequest{StudentID: uuid.New(), Juz: 1})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestHistoryUsesLatestRecord(t *testing.T) {
	svc, a, b := setup(t)
	ctx := context.Background()
	t0 := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Records.Insert(ctx,
		&model.MemorizationRecord{StudentID: a.ID, AccumulatedQuantityX10: 50, CreatedAt: t0.Add(48 * time.Hour)},
		&model.MemorizationRecord{StudentID: a.ID, AccumulatedQuantityX10: 30, CreatedAt: t0},
		&model.MemorizationRecord{StudentID: a.ID, AccumulatedQuantityX10: 42, CreatedAt: t0.Add(24 * time.Hour)},
		&model.MemorizationRecord{StudentID: b.ID, AccumulatedQuantityX10: 99, CreatedAt: t0.Add(72 * time.Hour)},
	))

	h, err := svc.History(ctx, a.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, h.CurrentHafalan, 1e-9)
	require.Len(t, h.Records, 3)
	assert.InDelta(t, 3.0, h.Records[0].Juz, 1e-9)
	assert.InDelta(t, 4.2, h.Records[1].Juz, 1e-9)
	assert.Equal(t, "7A", h.ClassName)
}

func TestListByClass(t *testing.T) {
	svc, a, b := setup(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, uuid.Nil, dto.CreateMemorizationRequest{StudentID: a.ID, Juz: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.Nil, dto.CreateMemorizationRequest{StudentID: b.ID, Juz: 2})
	require.NoError(t, err)

	page := helper.Paging{Page: 1, PerPage: 10, Limit: 10}
	rows, total, err := svc.List(ctx, ListFilter{ClassName: "7B"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bilal", rows[0].StudentName)

	rows, total, err = svc.List(ctx, ListFilter{ClassName: "9Z"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, rows)
}
