package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===============================
   Raw punch (append-only audit log)
=============================== */

const (
	PunchTypeCheckIn  = "check_in"
	PunchTypeCheckOut = "check_out"
)

// BiometricRawEventModel: satu punch fisik dari perangkat. Immutable setelah
// dibuat, kecuali anotasi resolved_user_id / processing_error hasil resolusi
// identitas. Tidak pernah dihapus (audit trail).
type BiometricRawEventModel struct {
	BiometricRawEventID       uuid.UUID `gorm:"type:uuid;primaryKey;column:biometric_raw_event_id" json:"biometric_raw_event_id"`
	BiometricRawEventSchoolID uuid.UUID `gorm:"type:uuid;not null;column:biometric_raw_event_school_id;index:idx_biometric_raw_events_school" json:"biometric_raw_event_school_id"`
	BiometricRawEventDeviceID uuid.UUID `gorm:"type:uuid;not null;column:biometric_raw_event_device_id;index:idx_biometric_raw_events_device" json:"biometric_raw_event_device_id"`

	// Id user lokal di mesin (bukan user_id platform)
	BiometricRawEventDeviceUserID string `gorm:"size:100;not null;column:biometric_raw_event_device_user_id" json:"biometric_raw_event_device_user_id"`

	// check_in | check_out
	BiometricRawEventType string    `gorm:"type:varchar(20);not null;column:biometric_raw_event_type" json:"biometric_raw_event_type"`
	BiometricRawEventTime time.Time `gorm:"not null;column:biometric_raw_event_time" json:"biometric_raw_event_time"`

	// SHA-256 hex atas (kode device, device_user_id, unix event_time).
	// Unique index ini adalah backstop idempotensi ingestion.
	BiometricRawEventHash string `gorm:"size:64;not null;uniqueIndex:uq_biometric_raw_events_hash;column:biometric_raw_event_hash" json:"biometric_raw_event_hash"`

	BiometricRawEventCardNo    *string        `gorm:"size:50;column:biometric_raw_event_card_no" json:"biometric_raw_event_card_no,omitempty"`
	BiometricRawEventDeviceRef *string        `gorm:"size:100;column:biometric_raw_event_device_ref" json:"biometric_raw_event_device_ref,omitempty"` // raw event id dari mesin
	BiometricRawEventPayload   datatypes.JSON `gorm:"column:biometric_raw_event_payload" json:"biometric_raw_event_payload,omitempty"`

	BiometricRawEventResolvedUserID  *uuid.UUID `gorm:"type:uuid;column:biometric_raw_event_resolved_user_id;index:idx_biometric_raw_events_resolved_user" json:"biometric_raw_event_resolved_user_id,omitempty"`
	BiometricRawEventProcessingError *string    `gorm:"type:text;column:biometric_raw_event_processing_error" json:"biometric_raw_event_processing_error,omitempty"`

	BiometricRawEventCreatedAt time.Time `gorm:"column:biometric_raw_event_created_at;autoCreateTime" json:"biometric_raw_event_created_at"`
}

func (BiometricRawEventModel) TableName() string {
	return "biometric_raw_events"
}

func (m *BiometricRawEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.BiometricRawEventID == uuid.Nil {
		m.BiometricRawEventID = uuid.New()
	}
	return nil
}
