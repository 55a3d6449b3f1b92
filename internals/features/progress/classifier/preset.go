package classifier

import (
	"errors"
	"fmt"
	"strings"
)

const MaxTargetJuz = 30.0

// DefaultPreset preset band bawaan yang ditawarkan di form target.
func DefaultPreset(kelas string) TargetBands {
	return TargetBands{
		Kelas:         kelas,
		TargetJuz:     10,
		Merah:         Band{Min: 0, Max: 4},
		Kuning:        Band{Min: 4.1, Max: 7},
		Hijau:         Band{Min: 7.1, Max: 11.4},
		Biru:          Band{Min: 11.5, Max: 20},
		PinkThreshold: 30,
	}
}

var (
	ErrKelasRequired      = errors.New("kelas wajib dipilih")
	ErrTargetOutOfRange   = fmt.Errorf("target_juz harus lebih dari 0 dan maksimal %.0f", MaxTargetJuz)
	ErrBandsNotIncreasing = errors.New("rentang warna harus naik dan tidak boleh tumpang tindih")
)

// BandError menunjuk band yang min-nya lebih besar dari max.
type BandError struct {
	Band string
}

func (e *BandError) Error() string {
	return fmt.Sprintf("rentang %s tidak valid: min lebih besar dari max", e.Band)
}

// ValidateBands dipakai di jalur tulis. Celah antar band diizinkan (jatuh ke gray),
// tumpang tindih & urutan terbalik ditolak.
func ValidateBands(t TargetBands) error {
	if strings.TrimSpace(t.Kelas) == "" {
		return ErrKelasRequired
	}
	if t.TargetJuz <= 0 || t.TargetJuz > MaxTargetJuz {
		return ErrTargetOutOfRange
	}

	bands := []struct {
		name string
		b    Band
	}{
		{"merah", t.Merah},
		{"kuning", t.Kuning},
		{"hijau", t.Hijau},
		{"biru", t.Biru},
	}
	for _, nb := range bands {
		if nb.b.Min > nb.b.Max {
			return &BandError{Band: nb.name}
		}
	}
	for i := 1; i < len(bands); i++ {
		if bands[i-1].b.Max >= bands[i].b.Min {
			return ErrBandsNotIncreasing
		}
	}
	if t.Biru.Max >= t.PinkThreshold {
		return ErrBandsNotIncreasing
	}
	return nil
}
