package dto

import (
	"time"

	"github.com/google/uuid"

	model "edubreezy_backend/internals/features/home/notifications/model"
)

// ================== REQUEST ==================

// BroadcastAnnouncementRequest: pengumuman manual dari admin sekolah,
// di-fan-out ke semua user aktif sekolah tersebut.
type BroadcastAnnouncementRequest struct {
	NotificationTitle       string `json:"notification_title" validate:"required,max=255"`
	NotificationDescription string `json:"notification_description" validate:"required"`
}

// ================== RESPONSE ==================
type NotificationResponse struct {
	NotificationID          uuid.UUID  `json:"notification_id"`
	NotificationTitle       string     `json:"notification_title"`
	NotificationDescription string     `json:"notification_description"`
	NotificationType        int        `json:"notification_type"`
	NotificationSchoolID    *uuid.UUID `json:"notification_school_id"`
	NotificationTags        []string   `json:"notification_tags"`
	NotificationCreatedAt   time.Time  `json:"notification_created_at"`
}

// ================ CONVERSION =================
func ToNotificationResponse(m *model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		NotificationID:          m.NotificationID,
		NotificationTitle:       m.NotificationTitle,
		NotificationDescription: m.NotificationDescription,
		NotificationType:        m.NotificationType,
		NotificationSchoolID:    m.NotificationSchoolID,
		NotificationTags:        m.NotificationTags,
		NotificationCreatedAt:   m.NotificationCreatedAt,
	}
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(models))
	for i := range models {
		result = append(result, ToNotificationResponse(&models[i]))
	}
	return result
}
