package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/databases/gateway"
	authHelper "tahfidz_backend/internals/features/users/auth/helper"
	authModel "tahfidz_backend/internals/features/users/auth/model"
	userModel "tahfidz_backend/internals/features/users/user/model"
	userService "tahfidz_backend/internals/features/users/user/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const accessTTLDefault = 24 * time.Hour

var errInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")

type AuthService struct {
	Users     *userService.UserService
	Blacklist gateway.Store[authModel.TokenBlacklist]
	Secret    string
	TTL       time.Duration
	Now       func() time.Time
}

func NewAuthService(users *userService.UserService, bl gateway.Store[authModel.TokenBlacklist], secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &AuthService{Users: users, Blacklist: bl, Secret: secret, TTL: ttl, Now: time.Now}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      userModel.UserModel
}

func IdentityOf(u userModel.UserModel) auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Name: u.FullName, Role: u.Role}
}

// Login: cek bcrypt, tolak akun nonaktif, terbitkan JWT HS256.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errInvalidCredentials
	}
	if err := authHelper.CheckPasswordHash(u.Password, password); err != nil {
		return nil, errInvalidCredentials
	}
	if !u.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if _, ok := constants.ParseRole(string(u.Role)); !ok {
		return nil, fiber.NewError(fiber.StatusForbidden, "Role akun tidak dikenal")
	}

	now := s.now()
	token, err := auth.SignToken(s.Secret, auth.BuildClaims(IdentityOf(*u), now, s.TTL))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat token")
	}
	if err := s.Users.TouchLogin(ctx, u.ID, now); err != nil {
		log.Printf("[WARN] gagal update last_login_at user=%s: %v", u.ID, err)
	}
	return &Session{Token: token, ExpiresAt: now.Add(s.TTL), User: *u}, nil
}

// Logout memasukkan token ke blacklist sampai exp-nya lewat.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	black, err := s.IsBlacklisted(ctx, token)
	if err != nil {
		return err
	}
	if black {
		return nil
	}
	return s.Blacklist.Insert(ctx, &authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: tokenExpiry(token, s.now().Add(s.TTL)),
	})
}

func tokenExpiry(token string, fallback time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return fallback
	}
	if exp, ok := claims[auth.ClaimExp].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return fallback
}

// IsBlacklisted memenuhi auth.TokenBlacklist.
func (s *AuthService) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := s.Blacklist.FindOne(ctx, gateway.Eq("token", token))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return s.Users.FindByID(ctx, id)
}

func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authHelper.CheckPasswordHash(u.Password, current); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Password lama salah")
	}
	if err := authHelper.ValidatePassword(next); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	hash, err := authHelper.HashPassword(next)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal hash password")
	}
	return s.Users.UpdatePasswordHash(ctx, id, hash)
}

// CleanupBlacklist menghapus token yang exp-nya sebelum `before`, per batch 100.
func (s *AuthService) CleanupBlacklist(ctx context.Context, before time.Time) (int, error) {
	total := 0
	for {
		rows, err := s.Blacklist.Query(ctx, gateway.Query{
			Filters: []gateway.Filter{{Column: "expired_at", Op: gateway.OpLte, Value: before}},
			Limit:   100,
		})
		if err != nil {
			return total, err
		}
		if len(rows) == 0 {
			return total, nil
		}
		for _, r := range rows {
			if err := s.Blacklist.Delete(ctx, r.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return total, err
			}
			total++
		}
		if len(rows) < 100 {
			return total, nil
		}
	}
}
