// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"
)

const DefaultTimezone = "Asia/Jakarta"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location zona waktu pondok dari APP_TIMEZONE.
// Fallback: Asia/Jakarta, lalu UTC kalau tzdata tidak tersedia.
func Location() *time.Location {
	locOnce.Do(func() {
		loc = LoadLocation(os.Getenv("APP_TIMEZONE"))
	})
	return loc
}

func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			return l
		}
	}
	if l, err := time.LoadLocation(DefaultTimezone); err == nil {
		return l
	}
	return time.UTC
}

// LocalDate tanggal kalender t di zona l, sebagai tengah malam UTC
// (bentuk yang dipakai kolom DATE / datatypes.Date).
func LocalDate(t time.Time, l *time.Location) time.Time {
	t = t.In(l)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart tanggal 1 bulan berjalan di zona l.
func MonthStart(t time.Time, l *time.Location) time.Time {
	d := LocalDate(t, l)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
