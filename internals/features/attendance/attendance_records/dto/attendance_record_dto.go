package dto

import (
	"time"

	"github.com/google/uuid"

	model "edubreezy_backend/internals/features/attendance/attendance_records/model"
)

/* ===================== RESPONSES ===================== */

type AttendanceRecordResponse struct {
	AttendanceRecordID     uuid.UUID              `json:"attendance_record_id"`
	AttendanceRecordUserID uuid.UUID              `json:"attendance_record_user_id"`
	AttendanceRecordDate   time.Time              `json:"attendance_record_date"`
	AttendanceRecordStatus model.AttendanceStatus `json:"attendance_record_status"`

	AttendanceRecordCheckInTime  *time.Time `json:"attendance_record_check_in_time,omitempty"`
	AttendanceRecordCheckOutTime *time.Time `json:"attendance_record_check_out_time,omitempty"`
	AttendanceRecordWorkingHours *float64   `json:"attendance_record_working_hours,omitempty"`

	AttendanceRecordIsLate        bool `json:"attendance_record_is_late"`
	AttendanceRecordLateByMinutes int  `json:"attendance_record_late_by_minutes"`

	AttendanceRecordIsBiometricEntry     bool       `json:"attendance_record_is_biometric_entry"`
	AttendanceRecordIsBiometricFinalized bool       `json:"attendance_record_is_biometric_finalized"`
	AttendanceRecordFinalizedAt          *time.Time `json:"attendance_record_finalized_at,omitempty"`

	AttendanceRecordRemarks    *string `json:"attendance_record_remarks,omitempty"`
	AttendanceRecordDeviceCode *string `json:"attendance_record_device_code,omitempty"`

	// Diisi dari join users (list admin)
	UserName string `json:"user_name,omitempty"`
	UserRole string `json:"user_role,omitempty"`
}

func FromAttendanceRecordModel(m model.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID:                   m.AttendanceRecordID,
		AttendanceRecordUserID:               m.AttendanceRecordUserID,
		AttendanceRecordDate:                 m.AttendanceRecordDate,
		AttendanceRecordStatus:               m.AttendanceRecordStatus,
		AttendanceRecordCheckInTime:          m.AttendanceRecordCheckInTime,
		AttendanceRecordCheckOutTime:         m.AttendanceRecordCheckOutTime,
		AttendanceRecordWorkingHours:         m.AttendanceRecordWorkingHours,
		AttendanceRecordIsLate:               m.AttendanceRecordIsLate,
		AttendanceRecordLateByMinutes:        m.AttendanceRecordLateByMinutes,
		AttendanceRecordIsBiometricEntry:     m.AttendanceRecordIsBiometricEntry,
		AttendanceRecordIsBiometricFinalized: m.AttendanceRecordIsBiometricFinalized,
		AttendanceRecordFinalizedAt:          m.AttendanceRecordFinalizedAt,
		AttendanceRecordRemarks:              m.AttendanceRecordRemarks,
		AttendanceRecordDeviceCode:           m.AttendanceRecordDeviceCode,
	}
}

// DailySummary: agregat per status untuk satu tanggal (header dashboard admin)
type DailySummary struct {
	Date     time.Time        `json:"date"`
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}
