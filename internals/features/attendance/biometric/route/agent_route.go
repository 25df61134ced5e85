// internals/features/attendance/biometric/route/agent_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bioController "edubreezy_backend/internals/features/attendance/biometric/controller"
	"edubreezy_backend/internals/middlewares"
)

// BiometricAgentRoutes: endpoint sync agent on-prem. Auth via X-Agent-Key per
// sekolah (bukan JWT), jadi dipasang di luar group /api/a dan /api/u.
func BiometricAgentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := bioController.NewIngestController(db)

	agent := api.Group("/agent", middlewares.AgentSyncRateLimiter())
	agent.Post("/schools/:slug/biometric/events", ctrl.PostEvents)
}
