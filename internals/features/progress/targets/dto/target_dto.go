package dto

import (
	"tahfidz_backend/internals/features/progress/classifier"
	"tahfidz_backend/internals/features/progress/targets/model"
	helper "tahfidz_backend/internals/helpers"
)

// UpsertTargetRequest body PUT /targets. Range numerik dicek ulang oleh classifier.ValidateBands.
type UpsertTargetRequest struct {
	Kelas         string  `json:"kelas" validate:"required,max=50"`
	TargetJuz     float64 `json:"target_juz" validate:"gt=0,lte=30"`
	MerahMin      float64 `json:"merah_min" validate:"gte=0,lte=30"`
	MerahMax      float64 `json:"merah_max" validate:"gte=0,lte=30"`
	KuningMin     float64 `json:"kuning_min" validate:"gte=0,lte=30"`
	KuningMax     float64 `json:"kuning_max" validate:"gte=0,lte=30"`
	HijauMin      float64 `json:"hijau_min" validate:"gte=0,lte=30"`
	HijauMax      float64 `json:"hijau_max" validate:"gte=0,lte=30"`
	BiruMin       float64 `json:"biru_min" validate:"gte=0,lte=30"`
	BiruMax       float64 `json:"biru_max" validate:"gte=0,lte=30"`
	PinkThreshold float64 `json:"pink_threshold" validate:"gt=0,lte=30"`
}

func (r *UpsertTargetRequest) Normalize() {
	r.Kelas = helper.NormalizeText(r.Kelas)
}

func (r UpsertTargetRequest) ToModel() model.TargetConfiguration {
	return model.TargetConfiguration{
		Kelas:         r.Kelas,
		TargetJuz:     r.TargetJuz,
		MerahMin:      r.MerahMin,
		MerahMax:      r.MerahMax,
		KuningMin:     r.KuningMin,
		KuningMax:     r.KuningMax,
		HijauMin:      r.HijauMin,
		HijauMax:      r.HijauMax,
		BiruMin:       r.BiruMin,
		BiruMax:       r.BiruMax,
		PinkThreshold: r.PinkThreshold,
	}
}

// PresetResponse bentuk datar DefaultPreset, siap dipakai mengisi form.
func PresetResponse(kelas string) model.TargetConfiguration {
	return model.FromBands(classifier.DefaultPreset(kelas))
}
