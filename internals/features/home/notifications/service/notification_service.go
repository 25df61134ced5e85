// file: internals/features/home/notifications/service/notification_service.go
package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	notifModel "edubreezy_backend/internals/features/home/notifications/model"
)

// InAppNotifier: implementasi NotificationSender yang menulis feed in-app
// (notifications + fan-out user_notifications). Push/SMS gateway dikonsumsi
// sistem lain; service ini hanya menulis feed.
type InAppNotifier struct {
	DB *gorm.DB
}

func NewInAppNotifier(db *gorm.DB) *InAppNotifier {
	return &InAppNotifier{DB: db}
}

func typeTags(notifType int) pq.StringArray {
	switch notifType {
	case notifModel.NotificationTypeAttendance:
		return pq.StringArray{"attendance"}
	case notifModel.NotificationTypeBilling:
		return pq.StringArray{"billing"}
	default:
		return pq.StringArray{"announcement"}
	}
}

func (n *InAppNotifier) Send(schoolID uuid.UUID, userIDs []uuid.UUID, title, message string, notifType int, metadata map[string]any) error {
	if len(userIDs) == 0 {
		return nil
	}

	var meta datatypes.JSON
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			meta = b
		}
	}

	return n.DB.Transaction(func(tx *gorm.DB) error {
		notif := notifModel.NotificationModel{
			NotificationTitle:       title,
			NotificationDescription: message,
			NotificationType:        notifType,
			NotificationSchoolID:    &schoolID,
			NotificationTags:        typeTags(notifType),
			NotificationMetadata:    meta,
		}
		if err := tx.Create(&notif).Error; err != nil {
			return err
		}

		fanout := make([]notifModel.UserNotificationModel, 0, len(userIDs))
		for _, uid := range userIDs {
			fanout = append(fanout, notifModel.UserNotificationModel{
				UserNotificationNotificationID: notif.NotificationID,
				UserNotificationUserID:         uid,
			})
		}
		return tx.CreateInBatches(&fanout, 200).Error
	})
}
