package dto

import (
	"github.com/google/uuid"

	model "edubreezy_backend/internals/features/school/attendance_config/model"
)

type UpdateAttendanceConfigRequest struct {
	AttendanceConfigStartTime        *string  `json:"attendance_config_start_time" validate:"omitempty,len=5"`
	AttendanceConfigEndTime          *string  `json:"attendance_config_end_time" validate:"omitempty,len=5"`
	AttendanceConfigGracePeriodMin   *int     `json:"attendance_config_grace_period_min" validate:"omitempty,min=0,max=240"`
	AttendanceConfigHalfDayHours     *float64 `json:"attendance_config_half_day_hours" validate:"omitempty,gt=0,max=24"`
	AttendanceConfigFullDayHours     *float64 `json:"attendance_config_full_day_hours" validate:"omitempty,gt=0,max=24"`
	AttendanceConfigBiometricEnabled *bool    `json:"attendance_config_biometric_enabled"`
}

type AttendanceConfigResponse struct {
	AttendanceConfigID               uuid.UUID `json:"attendance_config_id"`
	AttendanceConfigSchoolID         uuid.UUID `json:"attendance_config_school_id"`
	AttendanceConfigStartTime        string    `json:"attendance_config_start_time"`
	AttendanceConfigEndTime          string    `json:"attendance_config_end_time"`
	AttendanceConfigGracePeriodMin   int       `json:"attendance_config_grace_period_min"`
	AttendanceConfigHalfDayHours     float64   `json:"attendance_config_half_day_hours"`
	AttendanceConfigFullDayHours     float64   `json:"attendance_config_full_day_hours"`
	AttendanceConfigBiometricEnabled bool      `json:"attendance_config_biometric_enabled"`
}

func FromAttendanceConfigModel(m model.AttendanceConfigModel) AttendanceConfigResponse {
	return AttendanceConfigResponse{
		AttendanceConfigID:               m.AttendanceConfigID,
		AttendanceConfigSchoolID:         m.AttendanceConfigSchoolID,
		AttendanceConfigStartTime:        m.AttendanceConfigStartTime,
		AttendanceConfigEndTime:          m.AttendanceConfigEndTime,
		AttendanceConfigGracePeriodMin:   m.AttendanceConfigGracePeriodMin,
		AttendanceConfigHalfDayHours:     m.AttendanceConfigHalfDayHours,
		AttendanceConfigFullDayHours:     m.AttendanceConfigFullDayHours,
		AttendanceConfigBiometricEnabled: m.AttendanceConfigBiometricEnabled,
	}
}
