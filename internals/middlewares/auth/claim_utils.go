// internals/middlewares/auth/claim_utils.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"tahfidz_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	ClaimUserID   = "id"
	ClaimEmail    = "email"
	ClaimUserName = "user_name"
	ClaimRole     = "role"
	ClaimExp      = "exp"
	ClaimIat      = "iat"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx, o AuthJWTOpts) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" && o.AllowCookieFallback {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	// browser tidak bisa set header saat handshake websocket
	if auth == "" && o.AllowQueryToken {
		if q := strings.TrimSpace(c.Query("token")); q != "" {
			auth = "Bearer " + q
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, now time.Time, skew time.Duration) error {
	expVal, ok := claims[ClaimExp]
	if !ok {
		return fmt.Errorf("token has no exp")
	}
	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	default:
		return fmt.Errorf("invalid exp type")
	}
	expTime := time.Unix(expUnix, 0).UTC()
	if now.UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func identityFromClaims(claims jwt.MapClaims) (Identity, error) {
	idRaw, _ := claims[ClaimUserID].(string)
	userID, err := uuid.Parse(strings.TrimSpace(idRaw))
	if err != nil {
		return Identity{}, fmt.Errorf("invalid user id")
	}
	roleRaw, _ := claims[ClaimRole].(string)
	role, ok := constants.ParseRole(roleRaw)
	if !ok {
		return Identity{}, fmt.Errorf("role %q tidak dikenal", roleRaw)
	}
	email, _ := claims[ClaimEmail].(string)
	name, _ := claims[ClaimUserName].(string)
	return Identity{UserID: userID, Email: email, Name: name, Role: role}, nil
}

// BuildClaims dipakai service login saat menerbitkan token.
func BuildClaims(id Identity, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		ClaimUserID:   id.UserID.String(),
		ClaimEmail:    id.Email,
		ClaimUserName: id.Name,
		ClaimRole:     string(id.Role),
		ClaimIat:      now.Unix(),
		ClaimExp:      now.Add(ttl).Unix(),
	}
}

func SignToken(secret string, claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
