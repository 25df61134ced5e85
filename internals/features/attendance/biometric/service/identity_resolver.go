// file: internals/features/attendance/biometric/service/identity_resolver.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
)

// ResolveDeviceUser: lookup murni (device_id, device_user_id) → user platform.
// Hanya mapping aktif yang dilihat; kalau sampai ada dua mapping aktif untuk
// pasangan yang sama itu bug integritas data di proses enrollment, bukan
// sesuatu yang di-disambiguasi di sini.
func ResolveDeviceUser(db *gorm.DB, deviceID uuid.UUID, deviceUserID string) (uuid.UUID, bool, error) {
	var m bioModel.DeviceUserMappingModel
	err := db.
		Select("device_user_mapping_user_id").
		Where("device_user_mapping_device_id = ? AND device_user_mapping_device_user_id = ? AND device_user_mapping_is_active = ?",
			deviceID, deviceUserID, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return m.DeviceUserMappingUserID, true, nil
}
