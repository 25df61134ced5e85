// internals/features/school/attendance_config/route/attendance_config_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cfgController "edubreezy_backend/internals/features/school/attendance_config/controller"
)

// AttendanceConfigAdminRoutes dipasang di group /api/a
func AttendanceConfigAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := cfgController.NewAttendanceConfigController(db)

	att := admin.Group("/attendance")
	att.Get("/config", ctrl.GetConfig)
	att.Patch("/config", ctrl.UpdateConfig)
}
