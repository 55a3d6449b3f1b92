package classifier

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(student uuid.UUID, juz float64, at time.Time) Record {
	return Record{ID: uuid.New(), StudentID: student, QuantityX10: EncodeJuz(juz), CreatedAt: at}
}

func TestAggregate_AverageDistributionAndOrder(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	students := []Student{
		{ID: a, Name: "Ahmad", Kelas: "A"},
		{ID: b, Name: "Bilal", Kelas: "A"},
		{ID: c, Name: "Umar", Kelas: "A"},
	}
	records := []Record{rec(a, 2, now), rec(b, 5, now), rec(c, 9, now)}
	target := DefaultPreset("A")

	out := Aggregate(students, records, []TargetBands{target})
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, "A", got.Kelas)
	assert.Equal(t, 10.0, got.TargetJuz)
	assert.Equal(t, 3, got.Summary.TotalSantri)
	assert.InDelta(t, 16.0/3.0, got.Summary.AverageHafalan, 1e-9)

	sum := 0
	for _, n := range got.Summary.ColorDistribution {
		sum += n
	}
	assert.Equal(t, 3, sum)
	assert.Equal(t, 1, got.Summary.ColorDistribution[CategoryRed])
	assert.Equal(t, 1, got.Summary.ColorDistribution[CategoryYellow])
	assert.Equal(t, 1, got.Summary.ColorDistribution[CategoryGreen])
	assert.Equal(t, 0, got.Summary.ColorDistribution[CategoryPink])

	require.Len(t, got.Students, 3)
	assert.Equal(t, []float64{9, 5, 2}, []float64{
		got.Students[0].CurrentHafalan,
		got.Students[1].CurrentHafalan,
		got.Students[2].CurrentHafalan,
	})
	assert.Equal(t, 90, got.Students[0].ProgressPercentage)
}

func TestAggregate_LatestRecordWins(t *testing.T) {
	s := uuid.New()
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	// urutan input sengaja terbalik
	records := []Record{rec(s, 8, newer), rec(s, 3, older)}
	out := Aggregate([]Student{{ID: s, Name: "Zaid", Kelas: "B"}}, records, nil)

	require.Len(t, out, 1)
	assert.Equal(t, 8.0, out[0].Students[0].CurrentHafalan)
}

func TestLatestByStudent_TieBrokenByID(t *testing.T) {
	s := uuid.New()
	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	lo := Record{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), StudentID: s, QuantityX10: 10, CreatedAt: at}
	hi := Record{ID: uuid.MustParse("ffffffff-0000-0000-0000-000000000000"), StudentID: s, QuantityX10: 20, CreatedAt: at}

	assert.Equal(t, 20, LatestByStudent([]Record{lo, hi})[s].QuantityX10)
	assert.Equal(t, 20, LatestByStudent([]Record{hi, lo})[s].QuantityX10)
}

func TestAggregate_NoTargetNoRecord(t *testing.T) {
	s := uuid.New()
	out := Aggregate([]Student{{ID: s, Name: "Hasan", Kelas: "C"}}, nil, nil)

	require.Len(t, out, 1)
	sp := out[0].Students[0]
	assert.Equal(t, 0.0, sp.CurrentHafalan)
	assert.Equal(t, 0.0, sp.TargetJuz)
	assert.Equal(t, CategoryGray, sp.ColorCategory)
	assert.Equal(t, 0, sp.ProgressPercentage)
	assert.Equal(t, 1, out[0].Summary.ColorDistribution[CategoryGray])
}

func TestAggregate_TruncatesDisplayButNotSummary(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var students []Student
	var records []Record
	for i := 0; i < 25; i++ {
		id := uuid.New()
		students = append(students, Student{ID: id, Name: fmt.Sprintf("S%02d", i), Kelas: "D"})
		records = append(records, rec(id, float64(i), at))
	}

	out := Aggregate(students, records, []TargetBands{DefaultPreset("D")})
	require.Len(t, out, 1)
	assert.Len(t, out[0].Students, DisplayLimit)
	assert.Equal(t, 25, out[0].Summary.TotalSantri)
	assert.InDelta(t, 12.0, out[0].Summary.AverageHafalan, 1e-9)
	assert.Equal(t, 24.0, out[0].Students[0].CurrentHafalan)
	assert.Equal(t, 5.0, out[0].Students[DisplayLimit-1].CurrentHafalan)
}

func TestAggregate_SortedByKelasAndExactTargetMatch(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	x, y, z := uuid.New(), uuid.New(), uuid.New()
	students := []Student{
		{ID: x, Name: "X", Kelas: "Kelas 9"},
		{ID: y, Name: "Y", Kelas: "Kelas 7"},
		{ID: z, Name: "Z", Kelas: "kelas 7"},
	}
	records := []Record{rec(x, 1, at), rec(y, 1, at), rec(z, 1, at)}

	out := Aggregate(students, records, []TargetBands{DefaultPreset("Kelas 7")})
	require.Len(t, out, 3)
	assert.Equal(t, []string{"Kelas 7", "Kelas 9", "kelas 7"}, []string{out[0].Kelas, out[1].Kelas, out[2].Kelas})
	assert.Equal(t, CategoryRed, out[0].Students[0].ColorCategory)
	assert.Equal(t, CategoryGray, out[2].Students[0].ColorCategory)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a, b := uuid.New(), uuid.New()
	students := []Student{{ID: a, Name: "A", Kelas: "E"}, {ID: b, Name: "B", Kelas: "E"}}
	records := []Record{rec(a, 1, at), rec(b, 9, at)}

	_ = Aggregate(students, records, nil)
	assert.Equal(t, a, students[0].ID)
	assert.Equal(t, a, records[0].StudentID)
}
