package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifCtrl "edubreezy_backend/internals/features/home/notifications/controller"
)

func NotificationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := notifCtrl.NewUserNotificationController(db)

	g := r.Group("/notifications")
	g.Get("/", ctrl.ListMyNotifications)
	g.Patch("/:id/read", ctrl.MarkRead)
}
