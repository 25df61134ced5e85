// internals/features/home/notifications/controller/notification_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifDTO "edubreezy_backend/internals/features/home/notifications/dto"
	notifModel "edubreezy_backend/internals/features/home/notifications/model"
	notifService "edubreezy_backend/internals/features/home/notifications/service"
	helper "edubreezy_backend/internals/helpers"
)

type NotificationController struct {
	DB       *gorm.DB
	Notifier *notifService.InAppNotifier
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Notifier: notifService.NewInAppNotifier(db)}
}

var validate = validator.New()

// GET /api/a/notifications
func (ctrl *NotificationController) ListSchoolNotifications(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_school_id = ?", schoolID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}

	var rows []notifModel.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	return helper.JsonList(c, "Daftar notifikasi", notifDTO.ToNotificationResponseList(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/notifications/broadcast
//
// Pengumuman manual admin: fan-out ke semua user aktif sekolah.
func (ctrl *NotificationController) BroadcastAnnouncement(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req notifDTO.BroadcastAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var userIDs []uuid.UUID
	if err := ctrl.DB.Table("users").
		Where("user_school_id = ? AND user_is_active = ?", schoolID, true).
		Pluck("user_id", &userIDs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil penerima")
	}
	if len(userIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada user aktif untuk menerima pengumuman")
	}

	if err := ctrl.Notifier.Send(schoolID, userIDs,
		req.NotificationTitle, req.NotificationDescription,
		notifModel.NotificationTypeAnnouncement, nil); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengirim pengumuman")
	}

	return helper.JsonCreated(c, "Pengumuman terkirim", fiber.Map{
		"recipients": len(userIDs),
	})
}
