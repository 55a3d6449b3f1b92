package controller

import (
	"strings"

	"tahfidz_backend/internals/features/users/user/dto"
	"tahfidz_backend/internals/features/users/user/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Svc      *service.UserService
	Validate *validator.Validate
}

func NewUserController(svc *service.UserService, v *validator.Validate) *UserController {
	return &UserController{Svc: svc, Validate: v}
}

var userSortable = map[string]string{
	"name":       "full_name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
	"last_login": "last_login_at",
}

// GET /api/a/users?q=&role=&is_active=&page=&per_page=
func (uc *UserController) List(c *fiber.Ctx) error {
	active, err := helper.QueryBool(c, "is_active")
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	f := service.ListFilter{
		Q:        c.Query("q"),
		Role:     c.Query("role"),
		IsActive: active,
		Sort:     helper.ParseSort(c, userSortable, "name", false),
	}

	rows, total, err := uc.Svc.List(c.UserContext(), f, paging)
	if err != nil {
		return err
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "Daftar user", dto.FromModels(rows), &pg)
}

func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	u, err := uc.Svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail user", dto.FromModel(*u))
}

func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := uc.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "User berhasil dibuat", dto.FromModel(*u))
}

func (uc *UserController) Update(c *fiber.Ctx) error {
	me, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Role != nil {
		r := strings.ToLower(strings.TrimSpace(*req.Role))
		req.Role = &r
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := uc.Svc.Update(c.UserContext(), me.UserID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", dto.FromModel(*u))
}

func (uc *UserController) ResetPassword(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := uc.Svc.ResetPassword(c.UserContext(), id, req.NewPassword); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Password berhasil direset", nil)
}

func (uc *UserController) Delete(c *fiber.Ctx) error {
	me, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := uc.Svc.Delete(c.UserContext(), me.UserID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}
