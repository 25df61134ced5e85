package dto

import (
	"time"

	"github.com/google/uuid"

	model "edubreezy_backend/internals/features/attendance/biometric/model"
)

/* ===================== DEVICES (admin) ===================== */

type CreateBiometricDeviceRequest struct {
	BiometricDeviceCode string `json:"biometric_device_code" validate:"required,max=100"`
	BiometricDeviceName string `json:"biometric_device_name" validate:"omitempty,max=255"`
}

type UpdateBiometricDeviceRequest struct {
	BiometricDeviceName     *string `json:"biometric_device_name" validate:"omitempty,max=255"`
	BiometricDeviceIsActive *bool   `json:"biometric_device_is_active" validate:"omitempty"`
}

type BiometricDeviceResponse struct {
	BiometricDeviceID             uuid.UUID  `json:"biometric_device_id"`
	BiometricDeviceSchoolID       uuid.UUID  `json:"biometric_device_school_id"`
	BiometricDeviceCode           string     `json:"biometric_device_code"`
	BiometricDeviceName           string     `json:"biometric_device_name"`
	BiometricDeviceIsActive       bool       `json:"biometric_device_is_active"`
	BiometricDeviceLastSyncedAt   *time.Time `json:"biometric_device_last_synced_at,omitempty"`
	BiometricDeviceLastSyncStatus *string    `json:"biometric_device_last_sync_status,omitempty"`
	BiometricDeviceCreatedAt      time.Time  `json:"biometric_device_created_at"`
}

func FromBiometricDeviceModel(m model.BiometricDeviceModel) BiometricDeviceResponse {
	return BiometricDeviceResponse{
		BiometricDeviceID:             m.BiometricDeviceID,
		BiometricDeviceSchoolID:       m.BiometricDeviceSchoolID,
		BiometricDeviceCode:           m.BiometricDeviceCode,
		BiometricDeviceName:           m.BiometricDeviceName,
		BiometricDeviceIsActive:       m.BiometricDeviceIsActive,
		BiometricDeviceLastSyncedAt:   m.BiometricDeviceLastSyncedAt,
		BiometricDeviceLastSyncStatus: m.BiometricDeviceLastSyncStatus,
		BiometricDeviceCreatedAt:      m.BiometricDeviceCreatedAt,
	}
}

/* ===================== MAPPINGS (admin enrollment) ===================== */

type CreateDeviceUserMappingRequest struct {
	DeviceUserMappingDeviceID     uuid.UUID `json:"device_user_mapping_device_id" validate:"required"`
	DeviceUserMappingDeviceUserID string    `json:"device_user_mapping_device_user_id" validate:"required,max=100"`
	DeviceUserMappingUserID       uuid.UUID `json:"device_user_mapping_user_id" validate:"required"`
}

type DeviceUserMappingResponse struct {
	DeviceUserMappingID           uuid.UUID `json:"device_user_mapping_id"`
	DeviceUserMappingSchoolID     uuid.UUID `json:"device_user_mapping_school_id"`
	DeviceUserMappingDeviceID     uuid.UUID `json:"device_user_mapping_device_id"`
	DeviceUserMappingDeviceUserID string    `json:"device_user_mapping_device_user_id"`
	DeviceUserMappingUserID       uuid.UUID `json:"device_user_mapping_user_id"`
	DeviceUserMappingIsActive     bool      `json:"device_user_mapping_is_active"`
	DeviceUserMappingCreatedAt    time.Time `json:"device_user_mapping_created_at"`
}

func FromDeviceUserMappingModel(m model.DeviceUserMappingModel) DeviceUserMappingResponse {
	return DeviceUserMappingResponse{
		DeviceUserMappingID:           m.DeviceUserMappingID,
		DeviceUserMappingSchoolID:     m.DeviceUserMappingSchoolID,
		DeviceUserMappingDeviceID:     m.DeviceUserMappingDeviceID,
		DeviceUserMappingDeviceUserID: m.DeviceUserMappingDeviceUserID,
		DeviceUserMappingUserID:       m.DeviceUserMappingUserID,
		DeviceUserMappingIsActive:     m.DeviceUserMappingIsActive,
		DeviceUserMappingCreatedAt:    m.DeviceUserMappingCreatedAt,
	}
}
