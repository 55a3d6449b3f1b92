// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenBlacklist dicek sekali per request (token hasil logout).
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// ActiveUserChecker menolak token milik akun yang sudah dinonaktifkan.
type ActiveUserChecker interface {
	IsActive(ctx context.Context, userID uuid.UUID) (bool, error)
}

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool
	AllowQueryToken     bool
	Blacklist           TokenBlacklist
	Users               ActiveUserChecker
	Now                 func() time.Time
}

const LocalsRawToken = "raw_token"

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}

	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c, o)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if o.Blacklist != nil {
			black, err := o.Blacklist.IsBlacklisted(c.UserContext(), tokenString)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, now(), 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		id, err := identityFromClaims(claims)
		if err != nil {
			log.Println("[ERROR] claims:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid claims")
		}

		if o.Users != nil {
			active, err := o.Users.IsActive(c.UserContext(), id.UserID)
			if err != nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			if !active {
				return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
			}
		}

		SetIdentity(c, id)
		c.Locals(LocalsRawToken, tokenString)
		return c.Next()
	}
}
