package controller

import (
	"net/url"

	"tahfidz_backend/internals/features/progress/summary/service"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type SummaryController struct {
	Svc *service.Service
}

func NewSummaryController(svc *service.Service) *SummaryController {
	return &SummaryController{Svc: svc}
}

// GET /progress
func (sc *SummaryController) Overview(c *fiber.Ctx) error {
	ov, err := sc.Svc.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Ringkasan progres hafalan", ov)
}

// GET /progress/:kelas
func (sc *SummaryController) Class(c *fiber.Ctx) error {
	kelas := c.Params("kelas")
	if v, err := url.PathUnescape(kelas); err == nil {
		kelas = v
	}
	sum, err := sc.Svc.ClassSummary(kelas)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Ringkasan progres kelas", sum)
}

// POST /progress/refresh
func (sc *SummaryController) Refresh(c *fiber.Ctx) error {
	sc.Svc.Refresh()
	snap := sc.Svc.Snapshot()
	return helper.JsonAccepted(c, "Hitung ulang dijadwalkan", fiber.Map{
		"state":       snap.State,
		"computed_at": snap.ComputedAt,
	})
}
