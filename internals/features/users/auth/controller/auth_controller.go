package controller

import (
	"time"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/users/auth/dto"
	"tahfidz_backend/internals/features/users/auth/service"
	userDTO "tahfidz_backend/internals/features/users/user/dto"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const accessCookie = "access_token"

type AuthController struct {
	Svc          *service.AuthService
	Validate     *validator.Validate
	SecureCookie bool
}

func NewAuthController(svc *service.AuthService, v *validator.Validate) *AuthController {
	return &AuthController{Svc: svc, Validate: v}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := ac.Svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    sess.Token,
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		ExpiresAt:   sess.ExpiresAt,
		User:        userDTO.FromModel(sess.User),
		Permissions: constants.PermissionsOf(sess.User.Role),
	})
}

// POST /api/auth/logout (butuh token)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(auth.LocalsRawToken).(string)
	if err := ac.Svc.Logout(c.UserContext(), raw); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Path:     "/",
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	me, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	u, err := ac.Svc.Me(c.UserContext(), me.UserID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.MeResponse{
		User:        userDTO.FromModel(*u),
		Permissions: constants.PermissionsOf(u.Role),
	})
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	me, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input format")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), me.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Password berhasil diganti", nil)
}
