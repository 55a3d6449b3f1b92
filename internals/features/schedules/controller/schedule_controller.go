package controller

import (
	"strconv"

	"tahfidz_backend/internals/features/schedules/dto"
	"tahfidz_backend/internals/features/schedules/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ScheduleController struct {
	Svc      *service.ScheduleService
	Validate *validator.Validate
}

func NewScheduleController(svc *service.ScheduleService, v *validator.Validate) *ScheduleController {
	return &ScheduleController{Svc: svc, Validate: v}
}

// GET /api/a/schedules?kelas=&day=&ustadz_id=
func (sc *ScheduleController) List(c *fiber.Ctx) error {
	ustadz, err := helper.QueryUUID(c, "ustadz_id")
	if err != nil {
		return err
	}
	day := 0
	if raw := c.Query("day"); raw != "" {
		day, err = strconv.Atoi(raw)
		if err != nil || day < 1 || day > 7 {
			return fiber.NewError(fiber.StatusBadRequest, "day harus 1 sampai 7")
		}
	}
	rows, err := sc.Svc.List(c.UserContext(), service.ListFilter{Kelas: c.Query("kelas"), DayOfWeek: day, UstadzID: ustadz})
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Jadwal halaqoh", rows, nil)
}

func (sc *ScheduleController) parse(c *fiber.Ctx) (dto.ScheduleRequest, error) {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	return req, sc.Validate.Struct(req)
}

func (sc *ScheduleController) Create(c *fiber.Ctx) error {
	req, err := sc.parse(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := sc.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Jadwal berhasil dibuat", dto.FromModel(*m, nil))
}

func (sc *ScheduleController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	req, err := sc.parse(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := sc.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Jadwal berhasil diperbarui", dto.FromModel(*m, nil))
}

func (sc *ScheduleController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := sc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Jadwal berhasil dihapus", fiber.Map{"id": id})
}
