// internals/features/attendance/biometric/scheduler/device_offline.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
)

const defaultOfflineAfterMin = 120

// StartDeviceOfflineScheduler menandai perangkat yang terlalu lama tidak sync
// sebagai offline, supaya admin lihat masalah di dashboard sebelum data
// absensi bolong. Threshold via DEVICE_OFFLINE_AFTER_MIN (menit).
func StartDeviceOfflineScheduler(db *gorm.DB) {
	offlineAfter := defaultOfflineAfterMin
	if v, err := strconv.Atoi(os.Getenv("DEVICE_OFFLINE_AFTER_MIN")); err == nil && v > 0 {
		offlineAfter = v
	}

	go func() {
		for {
			markStaleDevicesOffline(db, time.Duration(offlineAfter)*time.Minute)
			time.Sleep(15 * time.Minute)
		}
	}()
}

func markStaleDevicesOffline(db *gorm.DB, offlineAfter time.Duration) {
	cutoff := time.Now().UTC().Add(-offlineAfter)

	res := db.Model(&bioModel.BiometricDeviceModel{}).
		Where("biometric_device_is_active = ?", true).
		Where("biometric_device_last_synced_at IS NOT NULL AND biometric_device_last_synced_at < ?", cutoff).
		Where("biometric_device_last_sync_status IS NULL OR biometric_device_last_sync_status <> ?", bioModel.DeviceSyncStatusOffline).
		Update("biometric_device_last_sync_status", bioModel.DeviceSyncStatusOffline)

	if res.Error != nil {
		log.Printf("[CLEANUP] gagal menandai perangkat offline: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[CLEANUP] %d perangkat ditandai offline (tidak sync > %s)", res.RowsAffected, offlineAfter)
	}
}
