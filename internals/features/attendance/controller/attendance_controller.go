package controller

import (
	"fmt"
	"strings"
	"time"

	"tahfidz_backend/internals/features/attendance/dto"
	"tahfidz_backend/internals/features/attendance/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AttendanceController struct {
	Svc      *service.AttendanceService
	Validate *validator.Validate
	Now      func() time.Time
}

func NewAttendanceController(svc *service.AttendanceService, v *validator.Validate) *AttendanceController {
	return &AttendanceController{Svc: svc, Validate: v, Now: time.Now}
}

func (ac *AttendanceController) listFilter(c *fiber.Ctx) (service.ListFilter, error) {
	from, err := helper.QueryDate(c, "from")
	if err != nil {
		return service.ListFilter{}, err
	}
	to, err := helper.QueryDate(c, "to")
	if err != nil {
		return service.ListFilter{}, err
	}
	ustadz, err := helper.QueryUUID(c, "ustadz_id")
	if err != nil {
		return service.ListFilter{}, err
	}
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if status != "" {
		if err := ac.Validate.Var(status, "oneof=hadir izin sakit alpha"); err != nil {
			return service.ListFilter{}, fiber.NewError(fiber.StatusBadRequest, "status harus salah satu dari hadir, izin, sakit, alpha")
		}
	}
	return service.ListFilter{From: from, To: to, UstadzID: ustadz, Status: status}, nil
}

// GET /api/a/attendance?from=&to=&ustadz_id=&status=
func (ac *AttendanceController) List(c *fiber.Ctx) error {
	f, err := ac.listFilter(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 31, 366)
	rows, total, err := ac.Svc.List(c.UserContext(), f, paging)
	if err != nil {
		return err
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "Daftar absensi ustadz", rows, &pg)
}

func (ac *AttendanceController) Create(c *fiber.Ctx) error {
	me, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ac.Svc.Create(c.UserContext(), me.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Absensi berhasil dicatat", dto.FromModel(*m, nil))
}

func (ac *AttendanceController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*req.Status))
		req.Status = &s
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ac.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Absensi berhasil diperbarui", dto.FromModel(*m, nil))
}

func (ac *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ac.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Absensi berhasil dihapus", fiber.Map{"id": id})
}

// recapRange default: awal bulan berjalan s.d. hari ini.
func (ac *AttendanceController) recapRange(c *fiber.Ctx) (time.Time, time.Time, *uuid.UUID, error) {
	f, err := ac.listFilter(c)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	now := ac.Now()
	to := dbtime.LocalDate(now, dbtime.Location())
	from := dbtime.MonthStart(now, dbtime.Location())
	if f.From != nil {
		from = *f.From
	}
	if f.To != nil {
		to = *f.To
	}
	return from, to, f.UstadzID, nil
}

// GET /api/a/attendance/recap?from=&to=&ustadz_id=
func (ac *AttendanceController) Recap(c *fiber.Ctx) error {
	from, to, ustadz, err := ac.recapRange(c)
	if err != nil {
		return err
	}
	r, err := ac.Svc.Recap(c.UserContext(), from, to, ustadz)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Rekap absensi ustadz", r)
}

func (ac *AttendanceController) RecapXLSX(c *fiber.Ctx) error {
	from, to, ustadz, err := ac.recapRange(c)
	if err != nil {
		return err
	}
	r, err := ac.Svc.Recap(c.UserContext(), from, to, ustadz)
	if err != nil {
		return err
	}
	wb, err := service.RecapXLSX(r)
	if err != nil {
		return err
	}
	return helper.SendXLSX(c, fmt.Sprintf("rekap-absensi-%s_%s.xlsx", r.From, r.To), wb)
}
