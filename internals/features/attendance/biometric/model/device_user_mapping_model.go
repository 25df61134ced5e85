package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceUserMappingModel: binding id user lokal mesin → akun platform.
// Invariant: paling banyak satu mapping aktif per (device, device_user_id).
// Enforced di controller enrollment (nonaktifkan mapping lama dulu); index
// komposit di bawah untuk lookup cepat jalur ingestion.
type DeviceUserMappingModel struct {
	DeviceUserMappingID       uuid.UUID `gorm:"type:uuid;primaryKey;column:device_user_mapping_id" json:"device_user_mapping_id"`
	DeviceUserMappingSchoolID uuid.UUID `gorm:"type:uuid;not null;column:device_user_mapping_school_id;index:idx_device_user_mappings_school" json:"device_user_mapping_school_id"`
	DeviceUserMappingDeviceID uuid.UUID `gorm:"type:uuid;not null;column:device_user_mapping_device_id;index:idx_device_user_mappings_lookup,priority:1" json:"device_user_mapping_device_id"`

	DeviceUserMappingDeviceUserID string `gorm:"size:100;not null;column:device_user_mapping_device_user_id;index:idx_device_user_mappings_lookup,priority:2" json:"device_user_mapping_device_user_id"`

	DeviceUserMappingUserID uuid.UUID `gorm:"type:uuid;not null;column:device_user_mapping_user_id;index:idx_device_user_mappings_user" json:"device_user_mapping_user_id"`

	DeviceUserMappingIsActive bool `gorm:"not null;default:true;column:device_user_mapping_is_active" json:"device_user_mapping_is_active"`

	DeviceUserMappingCreatedAt time.Time  `gorm:"column:device_user_mapping_created_at;autoCreateTime" json:"device_user_mapping_created_at"`
	DeviceUserMappingUpdatedAt *time.Time `gorm:"column:device_user_mapping_updated_at;autoUpdateTime" json:"device_user_mapping_updated_at,omitempty"`
}

func (DeviceUserMappingModel) TableName() string {
	return "device_user_mappings"
}

func (m *DeviceUserMappingModel) BeforeCreate(tx *gorm.DB) error {
	if m.DeviceUserMappingID == uuid.Nil {
		m.DeviceUserMappingID = uuid.New()
	}
	return nil
}
