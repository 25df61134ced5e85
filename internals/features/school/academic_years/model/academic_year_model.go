package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sekolah tanpa tahun ajaran aktif dilewati oleh job finalisasi nightly.
type AcademicYearModel struct {
	AcademicYearID       uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_year_id" json:"academic_year_id"`
	AcademicYearSchoolID uuid.UUID `gorm:"type:uuid;not null;column:academic_year_school_id;index:idx_academic_years_school" json:"academic_year_school_id"`

	AcademicYearName      string    `gorm:"size:50;not null;column:academic_year_name" json:"academic_year_name"` // contoh "2026/2027"
	AcademicYearStartDate time.Time `gorm:"column:academic_year_start_date;not null" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"column:academic_year_end_date;not null" json:"academic_year_end_date"`

	AcademicYearIsActive bool `gorm:"not null;default:false;column:academic_year_is_active;index:idx_academic_years_active" json:"academic_year_is_active"`

	AcademicYearCreatedAt time.Time  `gorm:"column:academic_year_created_at;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt *time.Time `gorm:"column:academic_year_updated_at;autoUpdateTime" json:"academic_year_updated_at,omitempty"`
}

func (AcademicYearModel) TableName() string {
	return "academic_years"
}

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	return nil
}
