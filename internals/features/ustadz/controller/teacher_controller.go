package controller

import (
	"tahfidz_backend/internals/features/ustadz/dto"
	"tahfidz_backend/internals/features/ustadz/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TeacherController struct {
	Svc      *service.TeacherService
	Validate *validator.Validate
}

func NewTeacherController(svc *service.TeacherService, v *validator.Validate) *TeacherController {
	return &TeacherController{Svc: svc, Validate: v}
}

func (tc *TeacherController) List(c *fiber.Ctx) error {
	active, err := helper.QueryBool(c, "is_active")
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)
	rows, total, err := tc.Svc.List(c.UserContext(), service.ListFilter{
		Q:        c.Query("q"),
		Halaqoh:  c.Query("halaqoh"),
		IsActive: active,
	}, paging)
	if err != nil {
		return err
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "Daftar ustadz", rows, &pg)
}

func (tc *TeacherController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := tc.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail ustadz", m)
}

func (tc *TeacherController) Create(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := tc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := tc.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Ustadz berhasil ditambahkan", m)
}

func (tc *TeacherController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := tc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := tc.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Ustadz berhasil diperbarui", m)
}

func (tc *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := tc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Ustadz berhasil dihapus", fiber.Map{"id": id})
}
