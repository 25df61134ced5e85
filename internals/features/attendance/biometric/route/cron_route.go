// internals/features/attendance/biometric/route/cron_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bioController "edubreezy_backend/internals/features/attendance/biometric/controller"
)

// BiometricCronRoutes: trigger job internal, auth via CRON_SECRET di controller.
func BiometricCronRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := bioController.NewFinalizeController(db)

	internal := api.Group("/internal/cron")
	internal.Get("/biometric/finalize", ctrl.RunNightly)
}
