package controller

import (
	"bytes"
	"fmt"

	"tahfidz_backend/internals/features/progress/report/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Svc *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Svc: svc}
}

// GET /progress/report.pdf?kelas=
func (rc *ReportController) PDF(c *fiber.Ctx) error {
	kelas := c.Query("kelas")
	var buf bytes.Buffer
	if err := rc.Svc.WritePDF(&buf, kelas); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, helper.FileName("progres_hafalan", kelas, "pdf")))
	return c.Send(buf.Bytes())
}

// GET /progress/report.xlsx?kelas=
func (rc *ReportController) XLSX(c *fiber.Ctx) error {
	kelas := c.Query("kelas")
	f, err := rc.Svc.XLSX(kelas)
	if err != nil {
		return err
	}
	return helper.SendXLSX(c, helper.FileName("progres_hafalan", kelas, "xlsx"), f)
}
