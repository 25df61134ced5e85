package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users. Pembuatan akun & login dikelola
// sistem auth eksternal; service ini hanya membaca role + status aktif.
type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	UserSchoolID uuid.UUID `gorm:"type:uuid;not null;column:user_school_id;index:idx_users_school" json:"user_school_id"`

	UserName  string `gorm:"size:100;not null;column:user_name" json:"user_name"`
	UserEmail string `gorm:"size:255;not null;uniqueIndex:uq_users_email;column:user_email" json:"user_email"`

	// student | teacher | staff | admin | owner | accountant
	UserRole string `gorm:"type:varchar(20);not null;default:'student';column:user_role" json:"user_role"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time  `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
