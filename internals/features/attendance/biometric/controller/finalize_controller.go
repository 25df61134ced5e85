// internals/features/attendance/biometric/controller/finalize_controller.go
package controller

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edubreezy_backend/internals/configs"
	bioService "edubreezy_backend/internals/features/attendance/biometric/service"
	notifService "edubreezy_backend/internals/features/home/notifications/service"
	helper "edubreezy_backend/internals/helpers"
)

/* ===============================
   Trigger finalisasi nightly (cron)
=============================== */

type FinalizeController struct {
	DB        *gorm.DB
	Finalizer *bioService.Finalizer
}

func NewFinalizeController(db *gorm.DB) *FinalizeController {
	return &FinalizeController{
		DB:        db,
		Finalizer: bioService.NewFinalizer(db, notifService.NewInAppNotifier(db)),
	}
}

// GET /api/internal/cron/biometric/finalize
//
// Dipanggil scheduler eksternal (Railway cron / GitHub Actions). Bearer token
// dibandingkan constant-time supaya secret tidak bisa ditebak via timing.
func (ctrl *FinalizeController) RunNightly(c *fiber.Ctx) error {
	if configs.CronSecret == "" {
		return fiber.NewError(fiber.StatusInternalServerError, "CRON_SECRET belum dikonfigurasi")
	}

	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(configs.CronSecret)) != 1 {
		return fiber.NewError(fiber.StatusUnauthorized, "Token cron tidak valid")
	}

	stats, schools, err := ctrl.Finalizer.Run(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Finalisasi gagal: "+err.Error())
	}

	return helper.JsonOK(c, "Finalisasi selesai", fiber.Map{
		"stats":   stats,
		"schools": schools,
	})
}
