package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolModel: tenant. Agent key per sekolah disimpan sebagai hash bcrypt;
// key mentah hanya tampil sekali saat rotasi.
type SchoolModel struct {
	SchoolID   uuid.UUID `gorm:"type:uuid;primaryKey;column:school_id" json:"school_id"`
	SchoolName string    `gorm:"size:255;not null;column:school_name" json:"school_name"`
	SchoolSlug string    `gorm:"size:100;not null;uniqueIndex:uq_schools_slug;column:school_slug" json:"school_slug"`

	SchoolAgentKeyHash string `gorm:"size:255;column:school_agent_key_hash" json:"-"`

	// Offset menit dari UTC untuk tanggal sipil (WIB = 420). Satu zona tetap
	// per sekolah, bukan timezone database penuh.
	SchoolTimezoneOffsetMin int `gorm:"not null;default:420;column:school_timezone_offset_min" json:"school_timezone_offset_min"`

	SchoolIsActive bool `gorm:"not null;default:true;column:school_is_active" json:"school_is_active"`

	SchoolCreatedAt time.Time  `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt *time.Time `gorm:"column:school_updated_at;autoUpdateTime" json:"school_updated_at,omitempty"`
}

func (SchoolModel) TableName() string {
	return "schools"
}

func (m *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}
