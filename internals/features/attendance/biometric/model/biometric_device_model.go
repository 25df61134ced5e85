package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===============================
   Perangkat biometrik / RFID
=============================== */

const (
	DeviceSyncStatusOK      = "ok"
	DeviceSyncStatusPartial = "partial" // sync selesai tapi ada event error
	DeviceSyncStatusOffline = "offline" // terlalu lama tidak sync
)

type BiometricDeviceModel struct {
	BiometricDeviceID       uuid.UUID `gorm:"type:uuid;primaryKey;column:biometric_device_id" json:"biometric_device_id"`
	BiometricDeviceSchoolID uuid.UUID `gorm:"type:uuid;not null;column:biometric_device_school_id;index:idx_biometric_devices_school;uniqueIndex:uq_biometric_devices_school_code,priority:1" json:"biometric_device_school_id"`

	// Kode perangkat yang dikirim agent (serial / id mesin)
	BiometricDeviceCode string `gorm:"size:100;not null;column:biometric_device_code;uniqueIndex:uq_biometric_devices_school_code,priority:2" json:"biometric_device_code"`
	BiometricDeviceName string `gorm:"size:255;column:biometric_device_name" json:"biometric_device_name"`

	BiometricDeviceIsActive bool `gorm:"not null;default:true;column:biometric_device_is_active" json:"biometric_device_is_active"`

	BiometricDeviceLastSyncedAt   *time.Time `gorm:"column:biometric_device_last_synced_at" json:"biometric_device_last_synced_at,omitempty"`
	BiometricDeviceLastSyncStatus *string    `gorm:"size:20;column:biometric_device_last_sync_status" json:"biometric_device_last_sync_status,omitempty"`

	BiometricDeviceCreatedAt time.Time  `gorm:"column:biometric_device_created_at;autoCreateTime" json:"biometric_device_created_at"`
	BiometricDeviceUpdatedAt *time.Time `gorm:"column:biometric_device_updated_at;autoUpdateTime" json:"biometric_device_updated_at,omitempty"`
}

func (BiometricDeviceModel) TableName() string {
	return "biometric_devices"
}

func (m *BiometricDeviceModel) BeforeCreate(tx *gorm.DB) error {
	if m.BiometricDeviceID == uuid.Nil {
		m.BiometricDeviceID = uuid.New()
	}
	return nil
}
