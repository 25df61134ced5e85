// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edubreezy_backend/internals/constants"
	recRoute "edubreezy_backend/internals/features/attendance/attendance_records/route"
	bioRoute "edubreezy_backend/internals/features/attendance/biometric/route"
	notifRoute "edubreezy_backend/internals/features/home/notifications/route"
	cfgRoute "edubreezy_backend/internals/features/school/attendance_config/route"
	schoolRoute "edubreezy_backend/internals/features/school/schools/route"
	authMiddleware "edubreezy_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	api := app.Group("/api")

	// ===================== AGENT (X-Agent-Key, tanpa JWT) =====================
	log.Println("[INFO] Setting up AGENT routes...")
	bioRoute.BiometricAgentRoutes(api, db)

	// ===================== INTERNAL CRON (CRON_SECRET) =====================
	log.Println("[INFO] Setting up CRON routes...")
	bioRoute.BiometricCronRoutes(api, db)

	// ===================== ADMIN (/api/a — JWT + role) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(constants.RoleErrorAdmin("manajemen absensi"), constants.AdminRoles...),
	)
	schoolRoute.SchoolAdminRoutes(admin, db)
	cfgRoute.AttendanceConfigAdminRoutes(admin, db)
	bioRoute.BiometricAdminRoutes(admin, db)
	recRoute.AttendanceAdminRoutes(admin, db)
	notifRoute.NotificationAdminRoutes(admin, db)

	// ===================== USER (/api/u — JWT) =====================
	log.Println("[INFO] Setting up USER group (Auth)...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	recRoute.AttendanceUserRoutes(user, db)
	notifRoute.NotificationUserRoutes(user, db)

	// ===================== UTILITY =====================
	app.Get("/api/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"uptime":  time.Since(startTime).String(),
		})
	})
}
