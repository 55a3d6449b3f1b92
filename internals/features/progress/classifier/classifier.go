// Package classifier menghitung kategori warna & persentase progres hafalan santri
// terhadap target per kelas.
package classifier

import "math"

type Category string

const (
	CategoryRed    Category = "red"
	CategoryYellow Category = "yellow"
	CategoryGreen  Category = "green"
	CategoryBlue   Category = "blue"
	CategoryPink   Category = "pink"
	CategoryGray   Category = "gray"
)

// AllCategories urut dari terendah ke tertinggi, gray terakhir (fallback).
var AllCategories = []Category{
	CategoryRed,
	CategoryYellow,
	CategoryGreen,
	CategoryBlue,
	CategoryPink,
	CategoryGray,
}

// Band rentang [Min, Max] inklusif kedua ujung.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Band) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// TargetBands konfigurasi target satu kelas.
type TargetBands struct {
	Kelas         string  `json:"kelas"`
	TargetJuz     float64 `json:"target_juz"`
	Merah         Band    `json:"merah"`
	Kuning        Band    `json:"kuning"`
	Hijau         Band    `json:"hijau"`
	Biru          Band    `json:"biru"`
	PinkThreshold float64 `json:"pink_threshold"`
}

// Classify mengembalikan tepat satu kategori. Aturan dicek berurutan dan
// aturan pertama yang cocok menang (pink > blue > green > yellow > red).
// target nil berarti kelas belum punya konfigurasi.
func Classify(hafalan float64, target *TargetBands) Category {
	if target == nil {
		return CategoryGray
	}
	switch {
	case hafalan >= target.PinkThreshold:
		return CategoryPink
	case hafalan > target.Hijau.Max && hafalan <= target.Biru.Max:
		return CategoryBlue
	case target.Hijau.contains(hafalan):
		return CategoryGreen
	case target.Kuning.contains(hafalan):
		return CategoryYellow
	case target.Merah.contains(hafalan):
		return CategoryRed
	}
	// celah antar band atau di bawah merah_min
	return CategoryGray
}

// ProgressPercentage tidak di-clamp ke 100.
func ProgressPercentage(hafalan, targetJuz float64) int {
	if targetJuz <= 0 {
		return 0
	}
	return int(math.Round(hafalan / targetJuz * 100))
}

// EncodeJuz: kolom hafalan disimpan sebagai integer juz×10.
// Presisi lebih dari satu desimal hilang.
func EncodeJuz(juz float64) int {
	return int(math.Round(juz * 10))
}

func DecodeJuz(stored int) float64 {
	return float64(stored) / 10
}
