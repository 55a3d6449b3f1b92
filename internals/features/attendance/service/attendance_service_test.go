package service

import (
	"context"
	"testing"
	"time"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/attendance/dto"
	"tahfidz_backend/internals/features/attendance/model"
	ustadzDTO "tahfidz_backend/internals/features/ustadz/dto"
	ustadzModel "tahfidz_backend/internals/features/ustadz/model"
	ustadzService "tahfidz_backend/internals/features/ustadz/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) (*AttendanceService, uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	teachers := ustadzService.NewTeacherService(gateway.NewMemoryStore[ustadzModel.TeacherModel]("teachers", "id"))
	a, err := teachers.Create(ctx, ustadzDTO.CreateTeacherRequest{Name: "Ustadz Abdullah"})
	require.NoError(t, err)
	b, err := teachers.Create(ctx, ustadzDTO.CreateTeacherRequest{Name: "Ustadz Bilal"})
	require.NoError(t, err)

	svc := NewAttendanceService(gateway.NewMemoryStore[model.TeacherAttendanceModel]("teacher_attendances", "id"), teachers)
	return svc, a.ID, b.ID
}

func mustFiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreateAttendance(t *testing.T) {
	svc, a, _ := fixture(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, uuid.Nil, dto.CreateAttendanceRequest{UstadzID: a, Date: "2024-07-01", Status: "Hadir", CheckIn: "06:45"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusHadir, m.Status)
	require.NotNil(t, m.CheckIn)
	assert.Equal(t, "06:45", helper.FormatClock(*m.CheckIn))

	_, err = svc.Create(ctx, uuid.Nil, dto.CreateAttendanceRequest{UstadzID: a, Date: "2024-07-01", Status: "izin"})
	assert.Equal(t, fiber.StatusConflict, mustFiberCode(t, err))

	_, err = svc.Create(ctx, uuid.Nil, dto.CreateAttendanceRequest{UstadzID: uuid.New(), Date: "2024-07-02", Status: "hadir"})
	assert.Equal(t, fiber.StatusNotFound, mustFiberCode(t, err))

	_, err = svc.Create(ctx, uuid.Nil, dto.CreateAttendanceRequest{UstadzID: a, Date: "2024-07-03", Status: "hadir", CheckIn: "pagi"})
	assert.Equal(t, fiber.StatusBadRequest, mustFiberCode(t, err))
}

func TestRecap(t *testing.T) {
	svc, a, b := fixture(t)
	ctx := context.Background()

	seed := []struct {
		who    uuid.UUID
		date   string
		status string
	}{
		{a, "2024-07-01", "hadir"},
		{a, "2024-07-02", "hadir"},
		{a, "2024-07-03", "sakit"},
		{b, "2024-07-01", "alpha"},
		{b, "2024-07-02", "hadir"},
		{a, "2024-08-01", "hadir"},
	}
	for _, s := range seed {
		_, err := svc.Create(ctx, uuid.Nil, dto.CreateAttendanceRequest{UstadzID: s.who, Date: s.date, Status: s.status})
		require.NoError(t, err)
	}

	from, _ := helper.ParseDate("2024-07-01")
	to, _ := helper.ParseDate("2024-07-31")
	r, err := svc.Recap(ctx, from, to, nil)
	require.NoError(t, err)
	require.Len(t, r.Rows, 2)

	assert.Equal(t, "Ustadz Abdullah", r.Rows[0].UstadzName)
	assert.Equal(t, 2, r.Rows[0].Hadir)
	assert.Equal(t, 1, r.Rows[0].Sakit)
	assert.Equal(t, 3, r.Rows[0].Total)
	assert.InDelta(t, 66.7, r.Rows[0].AttendanceRate, 0.001)

	assert.Equal(t, "Ustadz Bilal", r.Rows[1].UstadzName)
	assert.Equal(t, 1, r.Rows[1].Alpha)
	assert.InDelta(t, 50.0, r.Rows[1].AttendanceRate, 0.001)

	_, err = svc.Recap(ctx, to, from, nil)
	assert.Equal(t, fiber.StatusBadRequest, mustFiberCode(t, err))
	_, err = svc.Recap(ctx, from, from.Add(400*24*time.Hour), nil)
	assert.Equal(t, fiber.StatusBadRequest, mustFiberCode(t, err))

	wb, err := RecapXLSX(r)
	require.NoError(t, err)
	v, err := wb.GetCellValue("Rekap Absensi", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ustadz Abdullah", v)
}

func TestListByRangeAndStatus(t *testing.T) {
	svc, a, b := fixture(t)
	ctx := context.Background()
	for _, d := range []string{"2024-07-01", "2024-07-02", "2024-07-03"} {
		_, err := svc.Create(ctx, uuid.Nil, dto.CreateAttendanceRequest{UstadzID: a, Date: d, Status: "hadir"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, uuid.Nil, dto.CreateAttendanceRequest{UstadzID: b, Date: "2024-07-02", Status: "izin"})
	require.NoError(t, err)

	from, _ := helper.ParseDate("2024-07-02")
	rows, total, err := svc.List(ctx, ListFilter{From: &from, Status: "hadir"}, helper.Paging{Page: 1, PerPage: 10, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-07-03", rows[0].Date)
	assert.Equal(t, "Ustadz Abdullah", rows[0].UstadzName)
}
