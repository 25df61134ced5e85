package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edubreezy_backend/internals/constants"
	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
)

func TestResolveDeviceUser(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, testOffsetWIB)
	device := seedDevice(t, db, school.SchoolID, "FP-01")
	user := seedUser(t, db, school.SchoolID, constants.RoleStudent)
	seedMapping(t, db, school.SchoolID, device.BiometricDeviceID, user.UserID, "1024")

	got, found, err := ResolveDeviceUser(db, device.BiometricDeviceID, "1024")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, user.UserID, got)
}

func TestResolveDeviceUser_UnknownIsNotError(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, testOffsetWIB)
	device := seedDevice(t, db, school.SchoolID, "FP-01")

	got, found, err := ResolveDeviceUser(db, device.BiometricDeviceID, "9999")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, uuid.Nil, got)
}

func TestResolveDeviceUser_InactiveMappingIgnored(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, testOffsetWIB)
	device := seedDevice(t, db, school.SchoolID, "FP-01")
	user := seedUser(t, db, school.SchoolID, constants.RoleStudent)
	seedMapping(t, db, school.SchoolID, device.BiometricDeviceID, user.UserID, "1024")

	require.NoError(t, db.Model(&bioModel.DeviceUserMappingModel{}).
		Where("device_user_mapping_device_id = ?", device.BiometricDeviceID).
		Update("device_user_mapping_is_active", false).Error)

	_, found, err := ResolveDeviceUser(db, device.BiometricDeviceID, "1024")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResolveDeviceUser_ScopedToDevice(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db, testOffsetWIB)
	deviceA := seedDevice(t, db, school.SchoolID, "FP-01")
	deviceB := seedDevice(t, db, school.SchoolID, "FP-02")
	user := seedUser(t, db, school.SchoolID, constants.RoleStudent)
	seedMapping(t, db, school.SchoolID, deviceA.BiometricDeviceID, user.UserID, "1024")

	// Id user yang sama di device lain bukan orang yang sama
	_, found, err := ResolveDeviceUser(db, deviceB.BiometricDeviceID, "1024")
	require.NoError(t, err)
	assert.False(t, found)
}
