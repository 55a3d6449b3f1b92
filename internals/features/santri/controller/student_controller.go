package controller

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"tahfidz_backend/internals/features/santri/dto"
	"tahfidz_backend/internals/features/santri/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	Svc      *service.StudentService
	Validate *validator.Validate
}

func NewStudentController(svc *service.StudentService, v *validator.Validate) *StudentController {
	return &StudentController{Svc: svc, Validate: v}
}

var studentSortable = map[string]string{
	"name":       "name",
	"nis":        "nis",
	"class_name": "class_name",
	"created_at": "created_at",
}

func (sc *StudentController) listFilter(c *fiber.Ctx) (service.ListFilter, error) {
	active, err := helper.QueryBool(c, "is_active")
	if err != nil {
		return service.ListFilter{}, err
	}
	ustadz, err := helper.QueryUUID(c, "ustadz_id")
	if err != nil {
		return service.ListFilter{}, err
	}
	f := service.ListFilter{
		ClassName: c.Query("class_name"),
		Q:         c.Query("q"),
		IsActive:  active,
		UstadzID:  ustadz,
	}
	if c.Query("sort_by") != "" {
		f.Sort = helper.ParseSort(c, studentSortable, "name", false)
	}
	return f, nil
}

// GET /api/a/santri?class_name=&q=&is_active=&ustadz_id=&page=&per_page=
func (sc *StudentController) List(c *fiber.Ctx) error {
	f, err := sc.listFilter(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)
	rows, total, err := sc.Svc.List(c.UserContext(), f, paging)
	if err != nil {
		return err
	}
	pg := helper.BuildPagination(total, paging, len(rows))
	return helper.JsonList(c, "Daftar santri", dto.FromModels(rows), &pg)
}

func (sc *StudentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := sc.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail santri", dto.FromModel(*m))
}

func (sc *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := sc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := sc.Svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Santri berhasil ditambahkan", dto.FromModel(*m))
}

func (sc *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := sc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := sc.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Santri berhasil diperbarui", dto.FromModel(*m))
}

func (sc *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := sc.Svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Santri berhasil dihapus", fiber.Map{"id": id})
}

// GET /api/a/santri/classes
func (sc *StudentController) Classes(c *fiber.Ctx) error {
	classes, err := sc.Svc.Classes(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Daftar kelas", classes)
}

// POST /api/a/santri/import (multipart field "file" atau body text/csv)
func (sc *StudentController) Import(c *fiber.Ctx) error {
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		if fh.Size == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "File kosong")
		}
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File tidak bisa dibaca")
		}
		defer f.Close()
		r = f
	} else {
		body := c.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kirim file CSV di field 'file' atau sebagai body text/csv")
		}
		r = bytes.NewReader(body)
	}

	rep, err := sc.Svc.ImportCSV(c.UserContext(), r)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Import selesai: %d berhasil, %d gagal", rep.Upserted, rep.Failed)
	return helper.JsonOK(c, msg, rep)
}

func (sc *StudentController) ExportCSV(c *fiber.Ctx) error {
	f, err := sc.listFilter(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := sc.Svc.ExportCSV(c.UserContext(), &buf, f); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="santri-%s.csv"`, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}

func (sc *StudentController) Template(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := service.WriteTemplate(&buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="template-santri.csv"`)
	return c.Send(buf.Bytes())
}

func (sc *StudentController) ExportXLSX(c *fiber.Ctx) error {
	f, err := sc.listFilter(c)
	if err != nil {
		return err
	}
	wb, err := sc.Svc.ExportXLSX(c.UserContext(), f)
	if err != nil {
		return err
	}
	return helper.SendXLSX(c, helper.FileName("santri", f.ClassName, "xlsx"), wb)
}
