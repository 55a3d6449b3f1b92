package helper

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// FromError memetakan error dari service/DB ke response JSON konsisten.
// Pesan dari backend diteruskan apa adanya ke user.
func FromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, FieldErrors(ve))
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	}
	code, msg := MapPGError(err)
	if code >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	}
	return JsonError(c, code, msg)
}

// --- PG error mapping (pgx/libpq) ---
func MapPGError(err error) (int, string) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return mapPGCode(pgxErr.Code, pgxErr.Message)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return mapPGCode(string(pqErr.Code), pqErr.Message)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "Data duplikat (unique violation)."
	}
	return http.StatusInternalServerError, err.Error()
}

func mapPGCode(code, message string) (int, string) {
	switch code {
	case "23505":
		return http.StatusConflict, "Data duplikat (unique violation): " + message
	case "23503":
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation): " + message
	case "23514":
		return http.StatusBadRequest, "Data melanggar constraint: " + message
	case "57014":
		return http.StatusGatewayTimeout, "Query dibatalkan (timeout)"
	default:
		return http.StatusInternalServerError, message
	}
}

// ErrorHandler dipasang di fiber.Config agar error dari handler selalu berbentuk ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}
