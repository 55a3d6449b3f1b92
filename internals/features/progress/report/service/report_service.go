// Package service menyusun laporan progres hafalan (PDF & xlsx) dari ringkasan terakhir.
package service

import (
	"fmt"
	"io"
	"time"

	"tahfidz_backend/internals/features/progress/classifier"
	summary "tahfidz_backend/internals/features/progress/summary/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

type SnapshotSource interface {
	Snapshot() summary.Snapshot
}

type ReportService struct {
	Source SnapshotSource
	Now    func() time.Time
}

func NewReportService(src SnapshotSource) *ReportService {
	return &ReportService{Source: src, Now: time.Now}
}

type rgb struct{ R, G, B int }

var categoryColors = map[classifier.Category]rgb{
	classifier.CategoryRed:    {229, 57, 53},
	classifier.CategoryYellow: {253, 216, 53},
	classifier.CategoryGreen:  {67, 160, 71},
	classifier.CategoryBlue:   {30, 136, 229},
	classifier.CategoryPink:   {236, 64, 122},
	classifier.CategoryGray:   {158, 158, 158},
}

var categoryLabels = map[classifier.Category]string{
	classifier.CategoryRed:    "Merah",
	classifier.CategoryYellow: "Kuning",
	classifier.CategoryGreen:  "Hijau",
	classifier.CategoryBlue:   "Biru",
	classifier.CategoryPink:   "Pink",
	classifier.CategoryGray:   "Abu-abu",
}

func CategoryLabel(c classifier.Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Classes ringkasan yang akan dicetak; kelas kosong = semua kelas.
func (s *ReportService) Classes(kelas string) ([]classifier.ClassProgressSummary, time.Time, error) {
	snap := s.Source.Snapshot()
	var at time.Time
	if snap.ComputedAt != nil {
		at = *snap.ComputedAt
	}
	kelas = helper.NormalizeText(kelas)
	if kelas == "" {
		return snap.Summary, at, nil
	}
	for _, c := range snap.Summary {
		if c.Kelas == kelas {
			return []classifier.ClassProgressSummary{c}, at, nil
		}
	}
	return nil, at, fiber.NewError(fiber.StatusNotFound, "Ringkasan kelas tidak ditemukan")
}

func (s *ReportService) WritePDF(w io.Writer, kelas string) error {
	classes, at, err := s.Classes(kelas)
	if err != nil {
		return err
	}
	return BuildPDF(w, classes, at, s.Now())
}

func (s *ReportService) XLSX(kelas string) (*excelize.File, error) {
	classes, _, err := s.Classes(kelas)
	if err != nil {
		return nil, err
	}
	return BuildXLSX(classes)
}

// BuildPDF satu halaman per kelas: ringkasan distribusi warna lalu tabel santri
// dengan kotak warna kategori.
func BuildPDF(w io.Writer, classes []classifier.ClassProgressSummary, computedAt, printedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Progres Hafalan", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(95, 5, fmt.Sprintf("Dicetak %s", printedAt.Format("02 Jan 2006 15:04")), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Hal. %d", pdf.PageNo()), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	stamp := "-"
	if !computedAt.IsZero() {
		stamp = computedAt.Format("02 Jan 2006 15:04")
	}

	if len(classes) == 0 {
		pdf.AddPage()
		header(pdf, tr, "Semua kelas", stamp)
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 10, "Belum ada data progres.")
	}

	for _, cls := range classes {
		pdf.AddPage()
		header(pdf, tr, "Kelas "+cls.Kelas, stamp)

		pdf.SetFont("Arial", "", 10)
		target := "-"
		if cls.TargetJuz > 0 {
			target = fmt.Sprintf("%.1f juz", cls.TargetJuz)
		}
		pdf.Cell(45, 6, "Target:")
		pdf.Cell(0, 6, target)
		pdf.Ln(5)
		pdf.Cell(45, 6, "Jumlah santri:")
		pdf.Cell(0, 6, fmt.Sprintf("%d", cls.Summary.TotalSantri))
		pdf.Ln(5)
		pdf.Cell(45, 6, "Rata-rata hafalan:")
		pdf.Cell(0, 6, fmt.Sprintf("%.1f juz", cls.Summary.AverageHafalan))
		pdf.Ln(8)

		for _, cat := range classifier.AllCategories {
			swatch(pdf, cat)
			pdf.Cell(28, 5, fmt.Sprintf("%s: %d", CategoryLabel(cat), cls.Summary.ColorDistribution[cat]))
		}
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(40, 145, 108)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(10, 8, "No", "1", 0, "C", true, 0, "")
		pdf.CellFormat(70, 8, "Nama Santri", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "Hafalan (juz)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 8, "Progres", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 8, "Kategori", "1", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Arial", "", 9)
		pdf.SetFillColor(245, 245, 245)
		for i, st := range cls.Students {
			fill := i%2 == 0
			pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", fill, 0, "")
			pdf.CellFormat(70, 7, tr(st.SantriName), "1", 0, "L", fill, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.1f", st.CurrentHafalan), "1", 0, "C", fill, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%d%%", st.ProgressPercentage), "1", 0, "C", fill, 0, "")

			x, y := pdf.GetXY()
			pdf.CellFormat(40, 7, "", "1", 0, "", fill, 0, "")
			c := categoryColors[st.ColorCategory]
			pdf.SetFillColor(c.R, c.G, c.B)
			pdf.Rect(x+2, y+1.5, 4, 4, "F")
			pdf.SetXY(x+8, y)
			pdf.CellFormat(30, 7, CategoryLabel(st.ColorCategory), "", 1, "L", false, 0, "")
			pdf.SetFillColor(245, 245, 245)
		}
		if cls.Summary.TotalSantri > len(cls.Students) {
			pdf.Ln(2)
			pdf.SetFont("Arial", "I", 8)
			pdf.Cell(0, 5, fmt.Sprintf("Ditampilkan %d dari %d santri (hafalan tertinggi).", len(cls.Students), cls.Summary.TotalSantri))
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func header(pdf *gofpdf.Fpdf, tr func(string) string, title, stamp string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "LAPORAN PROGRES HAFALAN")
	pdf.Ln(9)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 6, tr(title))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, "Data per: "+stamp)
	pdf.Ln(2)
	pdf.SetDrawColor(40, 145, 108)
	pdf.SetLineWidth(0.5)
	pdf.Line(10, pdf.GetY()+3, 200, pdf.GetY()+3)
	pdf.Ln(8)
}

func swatch(pdf *gofpdf.Fpdf, cat classifier.Category) {
	c := categoryColors[cat]
	x, y := pdf.GetXY()
	pdf.SetFillColor(c.R, c.G, c.B)
	pdf.Rect(x, y+0.5, 4, 4, "F")
	pdf.SetX(x + 5)
}

// BuildXLSX dua sheet: "Ringkasan" per kelas dan "Santri" per baris santri.
func BuildXLSX(classes []classifier.ClassProgressSummary) (*excelize.File, error) {
	headers := []string{"Kelas", "Target Juz", "Jumlah Santri", "Rata-rata Hafalan"}
	for _, cat := range classifier.AllCategories {
		headers = append(headers, CategoryLabel(cat))
	}
	rows := make([][]any, 0, len(classes))
	for _, c := range classes {
		row := []any{c.Kelas, c.TargetJuz, c.Summary.TotalSantri, c.Summary.AverageHafalan}
		for _, cat := range classifier.AllCategories {
			row = append(row, c.Summary.ColorDistribution[cat])
		}
		rows = append(rows, row)
	}
	f, err := helper.BuildSheet("Ringkasan", headers, rows)
	if err != nil {
		return nil, err
	}

	var students [][]any
	for _, c := range classes {
		for _, st := range c.Students {
			students = append(students, []any{
				c.Kelas, st.SantriName, st.CurrentHafalan, st.TargetJuz,
				st.ProgressPercentage, CategoryLabel(st.ColorCategory),
			})
		}
	}
	if err := helper.AppendSheet(f, "Santri",
		[]string{"Kelas", "Nama Santri", "Hafalan (juz)", "Target Juz", "Progres (%)", "Kategori"},
		students); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}
