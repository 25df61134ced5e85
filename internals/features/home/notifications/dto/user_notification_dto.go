package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "edubreezy_backend/internals/features/home/notifications/model"
)

/* ===================== RESPONSES ===================== */

type UserNotificationResponse struct {
	UserNotificationID      uuid.UUID      `json:"user_notification_id"`
	NotificationID          uuid.UUID      `json:"notification_id"`
	NotificationTitle       string         `json:"notification_title"`
	NotificationDescription string         `json:"notification_description"`
	NotificationType        int            `json:"notification_type"`
	NotificationMetadata    datatypes.JSON `json:"notification_metadata,omitempty"`
	UserNotificationIsRead  bool           `json:"user_notification_is_read"`
	UserNotificationReadAt  *time.Time     `json:"user_notification_read_at,omitempty"`
	NotificationCreatedAt   time.Time      `json:"notification_created_at"`
}

func FromUserNotificationJoin(un model.UserNotificationModel, n model.NotificationModel) UserNotificationResponse {
	return UserNotificationResponse{
		UserNotificationID:      un.UserNotificationID,
		NotificationID:          n.NotificationID,
		NotificationTitle:       n.NotificationTitle,
		NotificationDescription: n.NotificationDescription,
		NotificationType:        n.NotificationType,
		NotificationMetadata:    n.NotificationMetadata,
		UserNotificationIsRead:  un.UserNotificationIsRead,
		UserNotificationReadAt:  un.UserNotificationReadAt,
		NotificationCreatedAt:   n.NotificationCreatedAt,
	}
}
