package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalDateCrossesMidnight(t *testing.T) {
	jkt := time.FixedZone("WIB", 7*3600)
	// 18:30 UTC = 01:30 WIB keesokan harinya
	now := time.Date(2026, 3, 31, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), LocalDate(now, jkt))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), MonthStart(now, jkt))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), MonthStart(now, time.UTC))
}

func TestLoadLocationFallback(t *testing.T) {
	l := LoadLocation("Bukan/Zona")
	assert.NotNil(t, l)
	assert.Equal(t, time.UTC, LoadLocation("UTC"))
}
