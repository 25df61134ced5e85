// internals/features/home/notifications/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifController "edubreezy_backend/internals/features/home/notifications/controller"
)

// NotificationAdminRoutes dipasang di group /api/a
func NotificationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := notifController.NewNotificationController(db)

	notif := admin.Group("/notifications")
	notif.Get("/", ctrl.ListSchoolNotifications)
	notif.Post("/broadcast", ctrl.BroadcastAnnouncement)
}
