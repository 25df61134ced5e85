package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
Status kehadiran harian (string, bukan smallint, supaya enak dibaca di
dashboard & export):
*/
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
	AttendanceOnLeave AttendanceStatus = "ON_LEAVE"
)

// AttendanceRecordModel: satu baris per (user, sekolah, tanggal sipil).
// Sebelum finalisasi status hanya berarti "ada punch" (PRESENT saat punch
// pertama); setelah finalisasi status mengikuti aturan bisnis penuh
// (LATE/HALF_DAY, atau ABSENT sintetis).
type AttendanceRecordModel struct {
	AttendanceRecordID       uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_record_id" json:"attendance_record_id"`
	AttendanceRecordSchoolID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_school_id;uniqueIndex:uq_attendance_records_user_school_date,priority:2;index:idx_attendance_records_school_date,priority:1" json:"attendance_record_school_id"`
	AttendanceRecordUserID   uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_user_id;uniqueIndex:uq_attendance_records_user_school_date,priority:1" json:"attendance_record_user_id"`

	// Tanggal sipil (midnight UTC) hasil CivilDateOf; unique constraint di DB
	// adalah backstop race dua punch hampir bersamaan.
	AttendanceRecordDate time.Time `gorm:"not null;column:attendance_record_date;uniqueIndex:uq_attendance_records_user_school_date,priority:3;index:idx_attendance_records_school_date,priority:2" json:"attendance_record_date"`

	AttendanceRecordStatus AttendanceStatus `gorm:"type:varchar(10);not null;column:attendance_record_status" json:"attendance_record_status"`

	AttendanceRecordCheckInTime  *time.Time `gorm:"column:attendance_record_check_in_time" json:"attendance_record_check_in_time,omitempty"`
	AttendanceRecordCheckOutTime *time.Time `gorm:"column:attendance_record_check_out_time" json:"attendance_record_check_out_time,omitempty"`

	// (check_out − check_in) dalam jam, dibulatkan 2 desimal
	AttendanceRecordWorkingHours *float64 `gorm:"column:attendance_record_working_hours" json:"attendance_record_working_hours,omitempty"`

	AttendanceRecordIsLate        bool `gorm:"not null;default:false;column:attendance_record_is_late" json:"attendance_record_is_late"`
	AttendanceRecordLateByMinutes int  `gorm:"not null;default:0;column:attendance_record_late_by_minutes" json:"attendance_record_late_by_minutes"`

	AttendanceRecordIsBiometricEntry     bool       `gorm:"not null;default:false;column:attendance_record_is_biometric_entry;index:idx_attendance_records_biometric" json:"attendance_record_is_biometric_entry"`
	AttendanceRecordIsBiometricFinalized bool       `gorm:"not null;default:false;column:attendance_record_is_biometric_finalized;index:idx_attendance_records_finalized" json:"attendance_record_is_biometric_finalized"`
	AttendanceRecordFinalizedAt          *time.Time `gorm:"column:attendance_record_finalized_at" json:"attendance_record_finalized_at,omitempty"`

	AttendanceRecordRequiresApproval bool    `gorm:"not null;default:false;column:attendance_record_requires_approval" json:"attendance_record_requires_approval"`
	AttendanceRecordRemarks          *string `gorm:"type:text;column:attendance_record_remarks" json:"attendance_record_remarks,omitempty"`

	// Metadata sumber: kode perangkat yang mencatat punch pertama
	AttendanceRecordDeviceCode *string `gorm:"size:100;column:attendance_record_device_code" json:"attendance_record_device_code,omitempty"`

	AttendanceRecordCreatedAt time.Time  `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceRecordID == uuid.Nil {
		m.AttendanceRecordID = uuid.New()
	}
	return nil
}
