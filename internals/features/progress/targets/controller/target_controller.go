package controller

import (
	"net/url"

	"tahfidz_backend/internals/features/progress/targets/dto"
	"tahfidz_backend/internals/features/progress/targets/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TargetController struct {
	Svc      *service.TargetService
	Validate *validator.Validate
}

func NewTargetController(svc *service.TargetService, v *validator.Validate) *TargetController {
	return &TargetController{Svc: svc, Validate: v}
}

func kelasParam(c *fiber.Ctx) string {
	raw := c.Params("kelas")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (tc *TargetController) List(c *fiber.Ctx) error {
	rows, err := tc.Svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar target kelas", rows, nil)
}

func (tc *TargetController) Get(c *fiber.Ctx) error {
	t, err := tc.Svc.Get(c.UserContext(), kelasParam(c))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Target kelas", t)
}

// GET /targets/preset?kelas=
func (tc *TargetController) Preset(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Preset target", dto.PresetResponse(helper.NormalizeText(c.Query("kelas"))))
}

// PUT /targets
func (tc *TargetController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := tc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	t, err := tc.Svc.Upsert(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Target kelas tersimpan", t)
}

func (tc *TargetController) Delete(c *fiber.Ctx) error {
	kelas := kelasParam(c)
	if err := tc.Svc.Delete(c.UserContext(), kelas); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Target kelas dihapus", fiber.Map{"kelas": kelas})
}
