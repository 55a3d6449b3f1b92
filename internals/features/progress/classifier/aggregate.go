package classifier

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DisplayLimit jumlah santri yang ditampilkan per kelas. Statistik ringkasan
// tetap dihitung dari seluruh anggota kelas.
const DisplayLimit = 20

type Student struct {
	ID    uuid.UUID
	Name  string
	Kelas string
}

type Record struct {
	ID          uuid.UUID
	StudentID   uuid.UUID
	QuantityX10 int
	CreatedAt   time.Time
}

type StudentProgress struct {
	SantriID           uuid.UUID `json:"santri_id"`
	SantriName         string    `json:"santri_name"`
	Kelas              string    `json:"kelas"`
	CurrentHafalan     float64   `json:"current_hafalan"`
	TargetJuz          float64   `json:"target_juz"`
	ColorCategory      Category  `json:"color_category"`
	ProgressPercentage int       `json:"progress_percentage"`
}

type Summary struct {
	TotalSantri       int              `json:"total_santri"`
	AverageHafalan    float64          `json:"average_hafalan"`
	ColorDistribution map[Category]int `json:"color_distribution"`
}

type ClassProgressSummary struct {
	Kelas     string            `json:"kelas"`
	TargetJuz float64           `json:"target_juz"`
	Students  []StudentProgress `json:"students"`
	Summary   Summary           `json:"summary"`
}

// LatestByStudent memilih record terbaru per santri berdasarkan CreatedAt.
// Timestamp sama: id yang lebih besar menang, supaya hasil tidak tergantung urutan baris.
func LatestByStudent(records []Record) map[uuid.UUID]Record {
	latest := make(map[uuid.UUID]Record, len(records))
	for _, r := range records {
		cur, ok := latest[r.StudentID]
		if !ok || r.CreatedAt.After(cur.CreatedAt) ||
			(r.CreatedAt.Equal(cur.CreatedAt) && r.ID.String() > cur.ID.String()) {
			latest[r.StudentID] = r
		}
	}
	return latest
}

// Evaluate menghitung progres satu santri.
func Evaluate(s Student, hafalan float64, target *TargetBands) StudentProgress {
	var targetJuz float64
	if target != nil {
		targetJuz = target.TargetJuz
	}
	return StudentProgress{
		SantriID:           s.ID,
		SantriName:         s.Name,
		Kelas:              s.Kelas,
		CurrentHafalan:     hafalan,
		TargetJuz:          targetJuz,
		ColorCategory:      Classify(hafalan, target),
		ProgressPercentage: ProgressPercentage(hafalan, targetJuz),
	}
}

// Aggregate membentuk satu ringkasan per kelas, urut nama kelas.
// Tidak mengubah slice input.
func Aggregate(students []Student, records []Record, targets []TargetBands) []ClassProgressSummary {
	latest := LatestByStudent(records)

	byKelas := make(map[string]*TargetBands, len(targets))
	for i := range targets {
		byKelas[targets[i].Kelas] = &targets[i]
	}

	groups := make(map[string][]StudentProgress)
	for _, s := range students {
		var hafalan float64
		if r, ok := latest[s.ID]; ok {
			hafalan = DecodeJuz(r.QuantityX10)
		}
		groups[s.Kelas] = append(groups[s.Kelas], Evaluate(s, hafalan, byKelas[s.Kelas]))
	}

	out := make([]ClassProgressSummary, 0, len(groups))
	for kelas, members := range groups {
		var targetJuz float64
		if t := byKelas[kelas]; t != nil {
			targetJuz = t.TargetJuz
		}
		out = append(out, ClassProgressSummary{
			Kelas:     kelas,
			TargetJuz: targetJuz,
			Summary:   Summarize(members),
			Students:  topByHafalan(members, DisplayLimit),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Kelas < out[j].Kelas })
	return out
}

func Summarize(members []StudentProgress) Summary {
	dist := make(map[Category]int, len(AllCategories))
	for _, c := range AllCategories {
		dist[c] = 0
	}
	var total float64
	for _, m := range members {
		total += m.CurrentHafalan
		dist[m.ColorCategory]++
	}
	var avg float64
	if len(members) > 0 {
		avg = total / float64(len(members))
	}
	return Summary{
		TotalSantri:       len(members),
		AverageHafalan:    avg,
		ColorDistribution: dist,
	}
}

func topByHafalan(members []StudentProgress, limit int) []StudentProgress {
	sorted := make([]StudentProgress, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CurrentHafalan != sorted[j].CurrentHafalan {
			return sorted[i].CurrentHafalan > sorted[j].CurrentHafalan
		}
		return sorted[i].SantriName < sorted[j].SantriName
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
