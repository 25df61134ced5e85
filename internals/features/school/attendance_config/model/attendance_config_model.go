package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceConfigModel: aturan absensi per sekolah. Input read-only untuk
// live updater & finalizer; diedit admin sekolah lewat route admin.
type AttendanceConfigModel struct {
	AttendanceConfigID       uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_config_id" json:"attendance_config_id"`
	AttendanceConfigSchoolID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_configs_school;column:attendance_config_school_id" json:"attendance_config_school_id"`

	// Jam dinding lokal "HH:MM"
	AttendanceConfigStartTime string `gorm:"type:varchar(5);not null;default:'07:30';column:attendance_config_start_time" json:"attendance_config_start_time"`
	AttendanceConfigEndTime   string `gorm:"type:varchar(5);not null;default:'15:00';column:attendance_config_end_time" json:"attendance_config_end_time"`

	AttendanceConfigGracePeriodMin int `gorm:"not null;default:15;column:attendance_config_grace_period_min" json:"attendance_config_grace_period_min"`

	// Ambang jam kerja untuk status HALF_DAY / hari penuh
	AttendanceConfigHalfDayHours float64 `gorm:"not null;default:4;column:attendance_config_half_day_hours" json:"attendance_config_half_day_hours"`
	AttendanceConfigFullDayHours float64 `gorm:"not null;default:7;column:attendance_config_full_day_hours" json:"attendance_config_full_day_hours"`

	AttendanceConfigBiometricEnabled bool `gorm:"not null;default:false;column:attendance_config_biometric_enabled" json:"attendance_config_biometric_enabled"`

	AttendanceConfigCreatedAt time.Time  `gorm:"column:attendance_config_created_at;autoCreateTime" json:"attendance_config_created_at"`
	AttendanceConfigUpdatedAt *time.Time `gorm:"column:attendance_config_updated_at;autoUpdateTime" json:"attendance_config_updated_at,omitempty"`
}

func (AttendanceConfigModel) TableName() string {
	return "attendance_configs"
}

func (m *AttendanceConfigModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceConfigID == uuid.Nil {
		m.AttendanceConfigID = uuid.New()
	}
	return nil
}
