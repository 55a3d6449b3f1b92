package service

import (
	"context"
	"testing"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/schedules/dto"
	"tahfidz_backend/internals/features/schedules/model"
	ustadzDTO "tahfidz_backend/internals/features/ustadz/dto"
	ustadzModel "tahfidz_backend/internals/features/ustadz/model"
	ustadzService "tahfidz_backend/internals/features/ustadz/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestScheduleRules(t *testing.T) {
	ctx := context.Background()
	teachers := ustadzService.NewTeacherService(gateway.NewMemoryStore[ustadzModel.TeacherModel]("teachers", "id"))
	u, err := teachers.Create(ctx, ustadzDTO.CreateTeacherRequest{Name: "Ustadz Hasan"})
	require.NoError(t, err)
	svc := NewScheduleService(gateway.NewMemoryStore[model.ClassSchedule]("class_schedules", "id"), teachers)

	first, err := svc.Create(ctx, dto.ScheduleRequest{Kelas: "7A", DayOfWeek: 1, StartTime: "07:00", EndTime: "08:30", UstadzID: &u.ID, Subject: "Ziyadah"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.ScheduleRequest{Kelas: "7A", DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"})
	assert.Equal(t, fiber.StatusBadRequest, code(t, err))

	_, err = svc.Create(ctx, dto.ScheduleRequest{Kelas: "7A", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"})
	assert.Equal(t, fiber.StatusConflict, code(t, err))

	_, err = svc.Create(ctx, dto.ScheduleRequest{Kelas: "7B", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", UstadzID: &u.ID})
	assert.Equal(t, fiber.StatusConflict, code(t, err))

	ghost := uuid.New()
	_, err = svc.Create(ctx, dto.ScheduleRequest{Kelas: "7B", DayOfWeek: 2, StartTime: "08:00", EndTime: "09:00", UstadzID: &ghost})
	assert.Equal(t, fiber.StatusNotFound, code(t, err))

	// bersebelahan tidak dianggap bentrok
	_, err = svc.Create(ctx, dto.ScheduleRequest{Kelas: "7A", DayOfWeek: 1, StartTime: "08:30", EndTime: "10:00"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, first.ID, dto.ScheduleRequest{Kelas: "7A", DayOfWeek: 1, StartTime: "06:30", EndTime: "08:00", Subject: "Murojaah"})
	require.NoError(t, err)
	assert.Nil(t, updated.UstadzID)
	assert.Equal(t, "Murojaah", updated.Subject)

	rows, err := svc.List(ctx, ListFilter{Kelas: "7A"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "06:30", rows[0].StartTime)
	assert.Equal(t, "Senin", rows[0].DayName)
}
