package scheduler

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
)

func newSchedulerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&bioModel.BiometricDeviceModel{}))
	return db
}

func seedDeviceWithSync(t *testing.T, db *gorm.DB, code string, active bool, syncedAt *time.Time, status *string) bioModel.BiometricDeviceModel {
	t.Helper()
	d := bioModel.BiometricDeviceModel{
		BiometricDeviceSchoolID:       uuid.New(),
		BiometricDeviceCode:           code,
		BiometricDeviceName:           "Mesin " + code,
		BiometricDeviceIsActive:       active,
		BiometricDeviceLastSyncedAt:   syncedAt,
		BiometricDeviceLastSyncStatus: status,
	}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func syncStatus(t *testing.T, db *gorm.DB, id uuid.UUID) *string {
	t.Helper()
	var d bioModel.BiometricDeviceModel
	require.NoError(t, db.First(&d, "biometric_device_id = ?", id).Error)
	return d.BiometricDeviceLastSyncStatus
}

func TestMarkStaleDevicesOffline(t *testing.T) {
	db := newSchedulerTestDB(t)

	stale := time.Now().UTC().Add(-3 * time.Hour)
	fresh := time.Now().UTC().Add(-5 * time.Minute)
	ok := bioModel.DeviceSyncStatusOK
	offline := bioModel.DeviceSyncStatusOffline

	staleOK := seedDeviceWithSync(t, db, "FP-01", true, &stale, &ok)
	staleNoStatus := seedDeviceWithSync(t, db, "FP-02", true, &stale, nil)
	freshOK := seedDeviceWithSync(t, db, "FP-03", true, &fresh, &ok)
	staleInactive := seedDeviceWithSync(t, db, "FP-04", false, &stale, &ok)
	neverSynced := seedDeviceWithSync(t, db, "FP-05", true, nil, nil)
	alreadyOffline := seedDeviceWithSync(t, db, "FP-06", true, &stale, &offline)

	markStaleDevicesOffline(db, 2*time.Hour)

	// Aktif + terlalu lama tidak sync → offline, termasuk yang statusnya
	// masih kosong
	require.NotNil(t, syncStatus(t, db, staleOK.BiometricDeviceID))
	assert.Equal(t, offline, *syncStatus(t, db, staleOK.BiometricDeviceID))
	require.NotNil(t, syncStatus(t, db, staleNoStatus.BiometricDeviceID))
	assert.Equal(t, offline, *syncStatus(t, db, staleNoStatus.BiometricDeviceID))

	// Masih fresh, nonaktif, atau belum pernah sync → tidak disentuh
	require.NotNil(t, syncStatus(t, db, freshOK.BiometricDeviceID))
	assert.Equal(t, ok, *syncStatus(t, db, freshOK.BiometricDeviceID))
	require.NotNil(t, syncStatus(t, db, staleInactive.BiometricDeviceID))
	assert.Equal(t, ok, *syncStatus(t, db, staleInactive.BiometricDeviceID))
	assert.Nil(t, syncStatus(t, db, neverSynced.BiometricDeviceID))

	// Run ulang idempoten untuk device yang sudah offline
	require.NotNil(t, syncStatus(t, db, alreadyOffline.BiometricDeviceID))
	assert.Equal(t, offline, *syncStatus(t, db, alreadyOffline.BiometricDeviceID))
}
