package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserNotificationModel: fan-out notifikasi ke user tujuan (feed in-app).
type UserNotificationModel struct {
	UserNotificationID             uuid.UUID `gorm:"column:user_notification_id;primaryKey;type:uuid" json:"user_notification_id"`
	UserNotificationNotificationID uuid.UUID `gorm:"column:user_notification_notification_id;type:uuid;not null;index:idx_user_notifications_notification" json:"user_notification_notification_id"`
	UserNotificationUserID         uuid.UUID `gorm:"column:user_notification_user_id;type:uuid;not null;index:idx_user_notifications_user" json:"user_notification_user_id"`

	UserNotificationIsRead bool       `gorm:"column:user_notification_is_read;not null;default:false" json:"user_notification_is_read"`
	UserNotificationReadAt *time.Time `gorm:"column:user_notification_read_at" json:"user_notification_read_at,omitempty"`

	UserNotificationCreatedAt time.Time `gorm:"column:user_notification_created_at;autoCreateTime" json:"user_notification_created_at"`
}

func (UserNotificationModel) TableName() string {
	return "user_notifications"
}

func (m *UserNotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserNotificationID == uuid.Nil {
		m.UserNotificationID = uuid.New()
	}
	return nil
}
