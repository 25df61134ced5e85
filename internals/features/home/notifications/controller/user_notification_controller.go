package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifDTO "edubreezy_backend/internals/features/home/notifications/dto"
	notifModel "edubreezy_backend/internals/features/home/notifications/model"
	helper "edubreezy_backend/internals/helpers"
)

type UserNotificationController struct {
	DB *gorm.DB
}

func NewUserNotificationController(db *gorm.DB) *UserNotificationController {
	return &UserNotificationController{DB: db}
}

// GET /api/u/notifications
func (ctrl *UserNotificationController) ListMyNotifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&notifModel.UserNotificationModel{}).
		Where("user_notification_user_id = ?", userID).
		Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	type row struct {
		UN notifModel.UserNotificationModel `gorm:"embedded"`
		N  notifModel.NotificationModel     `gorm:"embedded"`
	}
	var rows []row
	if err := ctrl.DB.Table("user_notifications").
		Select("user_notifications.*, notifications.*").
		Joins("JOIN notifications ON notifications.notification_id = user_notifications.user_notification_notification_id").
		Where("user_notifications.user_notification_user_id = ?", userID).
		Order("user_notifications.user_notification_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	out := make([]notifDTO.UserNotificationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, notifDTO.FromUserNotificationJoin(r.UN, r.N))
	}

	return helper.JsonList(c, "Notifikasi berhasil diambil", out,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /api/u/notifications/:id/read
func (ctrl *UserNotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var un notifModel.UserNotificationModel
	if err := ctrl.DB.First(&un, "user_notification_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Notifikasi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}
	if un.UserNotificationUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Bukan notifikasi Anda")
	}

	now := time.Now().UTC()
	if err := ctrl.DB.Model(&un).Updates(map[string]any{
		"user_notification_is_read": true,
		"user_notification_read_at": now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menandai notifikasi")
	}

	un.UserNotificationIsRead = true
	un.UserNotificationReadAt = &now
	return helper.JsonUpdated(c, "Notifikasi ditandai terbaca", un)
}
