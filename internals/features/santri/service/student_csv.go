package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"tahfidz_backend/internals/features/santri/dto"
	"tahfidz_backend/internals/features/santri/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const MaxImportRows = 5000

var CSVHeader = []string{"nis", "name", "class_name", "gender"}

var errMissingHeader = errors.New("header CSV wajib memuat kolom nis, name, class_name")

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		idx[h] = i
	}
	for _, need := range CSVHeader[:3] {
		if _, ok := idx[need]; !ok {
			return nil, errMissingHeader
		}
	}
	return idx, nil
}

func cell(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// ImportCSV upsert per NIS. Baris yang gagal dicatat di report, baris lain tetap diproses.
func (s *StudentService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File CSV kosong atau tidak terbaca")
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rep := &dto.ImportReport{Errors: []dto.ImportRowError{}}
	seen := map[string]int{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			ln := 0
			if errors.As(err, &pe) {
				ln = pe.Line
			}
			fail(rep, ln, "", "baris CSV rusak: "+err.Error())
			continue
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		rep.Processed++
		if rep.Processed > MaxImportRows {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("Maksimal %d baris per import", MaxImportRows))
		}

		row := dto.ImportRow{
			NIS:       strings.TrimSpace(cell(rec, idx, "nis")),
			Name:      helper.NormalizeText(cell(rec, idx, "name")),
			ClassName: helper.NormalizeText(cell(rec, idx, "class_name")),
			Gender:    strings.ToUpper(strings.TrimSpace(cell(rec, idx, "gender"))),
		}
		if err := s.Validate.Struct(row); err != nil {
			fail(rep, line, row.NIS, describe(err))
			continue
		}
		if prev, dup := seen[row.NIS]; dup {
			fail(rep, line, row.NIS, fmt.Sprintf("NIS duplikat dengan baris %d", prev))
			continue
		}
		seen[row.NIS] = line

		m := model.StudentModel{NIS: row.NIS, Name: row.Name, ClassName: row.ClassName, Gender: row.Gender, IsActive: true}
		if err := s.Students.Upsert(ctx, &m, "nis", "name", "class_name", "gender", "is_active", "updated_at"); err != nil {
			_, msg := helper.MapPGError(err)
			fail(rep, line, row.NIS, msg)
			continue
		}
		rep.Upserted++
	}
	return rep, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func describe(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for field, msgs := range helper.FieldErrors(ve) {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	return strings.Join(parts, "; ")
}

func fail(rep *dto.ImportReport, line int, nis, msg string) {
	rep.Failed++
	rep.Errors = append(rep.Errors, dto.ImportRowError{Line: line, NIS: nis, Error: msg})
}

// WriteTemplate: header + satu baris contoh.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	_ = cw.Write(CSVHeader)
	_ = cw.Write([]string{"2024001", "Ahmad Fauzi", "7A", "L"})
	cw.Flush()
	return cw.Error()
}

func (s *StudentService) ExportCSV(ctx context.Context, w io.Writer, f ListFilter) error {
	rows, err := s.All(ctx, f)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, CSVHeader...), "is_active")); err != nil {
		return err
	}
	for _, r := range rows {
		active := "false"
		if r.IsActive {
			active = "true"
		}
		if err := cw.Write([]string{r.NIS, r.Name, r.ClassName, r.Gender, active}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *StudentService) ExportXLSX(ctx context.Context, f ListFilter) (*excelize.File, error) {
	rows, err := s.All(ctx, f)
	if err != nil {
		return nil, err
	}
	data := make([][]any, 0, len(rows))
	for i, r := range rows {
		status := "Aktif"
		if !r.IsActive {
			status = "Nonaktif"
		}
		data = append(data, []any{i + 1, r.NIS, r.Name, r.ClassName, r.Gender, status})
	}
	return helper.BuildSheet("Santri", []string{"No", "NIS", "Nama", "Kelas", "L/P", "Status"}, data)
}
