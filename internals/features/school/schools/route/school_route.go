// internals/features/school/schools/route/school_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "edubreezy_backend/internals/features/school/schools/controller"
)

// SchoolAdminRoutes dipasang di group /api/a
func SchoolAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := schoolController.NewSchoolController(db)

	school := admin.Group("/school")
	school.Get("/", ctrl.GetMySchool)
	school.Post("/agent-key/rotate", ctrl.RotateAgentKey)
}
