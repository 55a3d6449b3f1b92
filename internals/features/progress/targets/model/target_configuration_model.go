package model

import (
	"time"

	"tahfidz_backend/internals/features/progress/classifier"

	"github.com/google/uuid"
)

// TargetConfiguration band warna + target juz per kelas. Satu baris per kelas.
type TargetConfiguration struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Kelas         string    `gorm:"type:varchar(50);not null;uniqueIndex;column:kelas" json:"kelas"`
	TargetJuz     float64   `gorm:"type:double precision;not null;column:target_juz" json:"target_juz"`
	MerahMin      float64   `gorm:"type:double precision;not null;column:merah_min" json:"merah_min"`
	MerahMax      float64   `gorm:"type:double precision;not null;column:merah_max" json:"merah_max"`
	KuningMin     float64   `gorm:"type:double precision;not null;column:kuning_min" json:"kuning_min"`
	KuningMax     float64   `gorm:"type:double precision;not null;column:kuning_max" json:"kuning_max"`
	HijauMin      float64   `gorm:"type:double precision;not null;column:hijau_min" json:"hijau_min"`
	HijauMax      float64   `gorm:"type:double precision;not null;column:hijau_max" json:"hijau_max"`
	BiruMin       float64   `gorm:"type:double precision;not null;column:biru_min" json:"biru_min"`
	BiruMax       float64   `gorm:"type:double precision;not null;column:biru_max" json:"biru_max"`
	PinkThreshold float64   `gorm:"type:double precision;not null;column:pink_threshold" json:"pink_threshold"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TargetConfiguration) TableName() string {
	return "target_configurations"
}

var Columns = []string{
	"kelas", "target_juz",
	"merah_min", "merah_max", "kuning_min", "kuning_max",
	"hijau_min", "hijau_max", "biru_min", "biru_max",
	"pink_threshold", "created_at", "updated_at",
}

// UpsertColumns kolom yang ditimpa saat ON CONFLICT (kelas).
var UpsertColumns = []string{
	"target_juz",
	"merah_min", "merah_max", "kuning_min", "kuning_max",
	"hijau_min", "hijau_max", "biru_min", "biru_max",
	"pink_threshold", "updated_at",
}

func (t TargetConfiguration) Bands() classifier.TargetBands {
	return classifier.TargetBands{
		Kelas:         t.Kelas,
		TargetJuz:     t.TargetJuz,
		Merah:         classifier.Band{Min: t.MerahMin, Max: t.MerahMax},
		Kuning:        classifier.Band{Min: t.KuningMin, Max: t.KuningMax},
		Hijau:         classifier.Band{Min: t.HijauMin, Max: t.HijauMax},
		Biru:          classifier.Band{Min: t.BiruMin, Max: t.BiruMax},
		PinkThreshold: t.PinkThreshold,
	}
}

func FromBands(b classifier.TargetBands) TargetConfiguration {
	return TargetConfiguration{
		Kelas:         b.Kelas,
		TargetJuz:     b.TargetJuz,
		MerahMin:      b.Merah.Min,
		MerahMax:      b.Merah.Max,
		KuningMin:     b.Kuning.Min,
		KuningMax:     b.Kuning.Max,
		HijauMin:      b.Hijau.Min,
		HijauMax:      b.Hijau.Max,
		BiruMin:       b.Biru.Min,
		BiruMax:       b.Biru.Max,
		PinkThreshold: b.PinkThreshold,
	}
}
