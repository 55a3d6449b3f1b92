package controller

import (
	"tahfidz_backend/internals/features/hafalan/dto"
	"tahfidz_backend/internals/features/hafalan/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type MemorizationController struct {
	Svc      *service.MemorizationService
	Validate *validator.Validate
}

func NewMemorizationController(svc *service.MemorizationService, v *validator.Validate) *MemorizationController {
	return &MemorizationController{Svc: svc, Validate: v}
}

// GET /api/a/hafalan?student_id=&class_name=
func (mc *MemorizationController) List(c *fiber.Ctx) error {
	sid, err := helper.QueryUUID(c, "student_id")
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)
	rows, total, err := mc.Svc.List(c.UserContext(), service.ListFilter{StudentID: sid, ClassName: c.Query("class_name")}, paging)
	if err != nil {
		return err
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "Daftar setoran hafalan", rows, &pg)
}

// GET /api/a/hafalan/santri/:id/history
func (mc *MemorizationController) History(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	h, err := mc.Svc.History(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Riwayat hafalan", h)
}

func (mc *MemorizationController) Create(c *fiber.Ctx) error {
	me, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateMemorizationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := mc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	resp, err := mc.Svc.Create(c.UserContext(), me.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Setoran hafalan tersimpan", resp)
}

func (mc *MemorizationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := mc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Setoran hafalan dihapus", fiber.Map{"id": id})
}
