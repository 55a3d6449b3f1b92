package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/databases/gateway"
	authHelper "tahfidz_backend/internals/features/users/auth/helper"
	"tahfidz_backend/internals/features/users/user/dto"
	"tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	Users gateway.Store[model.UserModel]
}

func NewUserService(users gateway.Store[model.UserModel]) *UserService {
	return &UserService{Users: users}
}

type ListFilter struct {
	Q        string
	Role     string
	IsActive *bool
	Sort     helper.SortParam
}

func (s *UserService) List(ctx context.Context, f ListFilter, p helper.Paging) ([]model.UserModel, int64, error) {
	q := gateway.Query{}
	if v := strings.TrimSpace(f.Q); v != "" {
		q.Filters = append(q.Filters, gateway.Filter{Column: "full_name", Op: gateway.OpIlike, Value: v})
	}
	if v := strings.TrimSpace(f.Role); v != "" {
		q.Filters = append(q.Filters, gateway.Eq("role", strings.ToLower(v)))
	}
	if f.IsActive != nil {
		q.Filters = append(q.Filters, gateway.Eq("is_active", *f.IsActive))
	}

	total, err := s.Users.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if f.Sort.Column != "" {
		q.Order = []gateway.Order{{Column: f.Sort.Column, Desc: f.Sort.Desc}}
	}
	q.Limit, q.Offset = p.Limit, p.Offset

	rows, err := s.Users.Query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	u, err := s.Users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}
	return u, err
}

// FindByEmail mengembalikan (nil, nil) bila tidak ada.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	u, err := s.Users.FindOne(ctx, gateway.Eq("email", strings.ToLower(strings.TrimSpace(email))))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*model.UserModel, error) {
	req.Normalize()
	if err := authHelper.ValidatePassword(req.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	role, ok := constants.ParseRole(req.Role)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Role tidak dikenal")
	}

	existing, err := s.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal hash password")
	}

	u := &model.UserModel{
		Email:    req.Email,
		Password: hash,
		FullName: helper.NormalizeText(req.FullName),
		Role:     role,
		IsActive: true,
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update: admin tidak boleh menonaktifkan atau menurunkan role akunnya sendiri.
func (s *UserService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateUserRequest) (*model.UserModel, error) {
	patch := req.Patch()
	if r, ok := patch["role"].(constants.Role); ok {
		if _, known := constants.ParseRole(string(r)); !known {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Role tidak dikenal")
		}
	}
	if actorID == id {
		if v, ok := patch["is_active"].(bool); ok && !v {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Tidak bisa menonaktifkan akun sendiri")
		}
		if r, ok := patch["role"].(constants.Role); ok && r != constants.RoleAdmin {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Tidak bisa mengubah role akun sendiri")
		}
	}
	if name, ok := patch["full_name"].(string); ok {
		patch["full_name"] = helper.NormalizeText(name)
	}
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.Users.Update(ctx, id, patch)
}

func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if err := authHelper.ValidatePassword(newPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	hash, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal hash password")
	}
	return s.UpdatePasswordHash(ctx, id, hash)
}

func (s *UserService) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := s.Users.Update(ctx, id, map[string]any{"password": hash})
	return err
}

func (s *UserService) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.Users.Update(ctx, id, map[string]any{"last_login_at": at})
	return err
}

func (s *UserService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak bisa menghapus akun sendiri")
	}
	err := s.Users.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}
	return err
}

// IsActive memenuhi auth.ActiveUserChecker.
func (s *UserService) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}
