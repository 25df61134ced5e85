// internals/features/attendance/biometric/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bioController "edubreezy_backend/internals/features/attendance/biometric/controller"
)

// BiometricAdminRoutes dipasang di bawah group /api/a (sudah lewat
// AuthMiddleware + RequireRoles admin di index route).
func BiometricAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := bioController.NewBiometricDeviceController(db)

	bio := admin.Group("/biometric")
	bio.Get("/devices", ctrl.ListDevices)
	bio.Post("/devices", ctrl.CreateDevice)
	bio.Patch("/devices/:id", ctrl.UpdateDevice)

	bio.Get("/mappings", ctrl.ListMappings)
	bio.Post("/mappings", ctrl.EnrollMapping)
	bio.Delete("/mappings/:id", ctrl.DeactivateMapping)

	bio.Get("/events/unresolved", ctrl.ListUnresolvedEvents)
}
