// file: internals/features/attendance/biometric/service/live_updater.go
package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edubreezy_backend/internals/constants"
	recordModel "edubreezy_backend/internals/features/attendance/attendance_records/model"
	notifModel "edubreezy_backend/internals/features/home/notifications/model"
	helper "edubreezy_backend/internals/helpers"
)

/* ===============================
   Live Attendance Updater
=============================== */

// PunchContext: konteks satu punch yang identitasnya sudah ter-resolve.
type PunchContext struct {
	SchoolID          uuid.UUID
	UserID            uuid.UUID
	UserRole          string
	TimezoneOffsetMin int
	DeviceCode        string
}

type LiveUpdater struct {
	DB       *gorm.DB
	Notifier NotificationSender
}

func NewLiveUpdater(db *gorm.DB, notifier NotificationSender) *LiveUpdater {
	return &LiveUpdater{DB: db, Notifier: notifier}
}

// ApplyPunch mengubah satu punch jadi state absensi hari itu, inkremental:
//   - belum ada record → buat (murid: PRESENT tanpa jam; staf: PRESENT + jam masuk)
//   - sudah ada, belum final, staf → perlakukan sebagai check-out
//   - sudah final, atau murid punch kedua → no-op
//
// Mengembalikan true bila record baru dibuat.
func (u *LiveUpdater) ApplyPunch(pc PunchContext, punchAt time.Time) (bool, error) {
	date := helper.CivilDateOf(punchAt, pc.TimezoneOffsetMin)

	var existing recordModel.AttendanceRecordModel
	err := u.DB.
		Where("attendance_record_user_id = ? AND attendance_record_school_id = ? AND attendance_record_date = ?",
			pc.UserID, pc.SchoolID, date).
		First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return u.createFirstPunch(pc, punchAt, date)
	case err != nil:
		return false, err
	}

	// Record hari ini sudah ada
	if existing.AttendanceRecordIsBiometricFinalized {
		return false, nil
	}
	if constants.IsStudentRole(pc.UserRole) {
		// Murid tidak punya konsep check-out; punch kedua diabaikan.
		return false, nil
	}
	return false, u.applyCheckOut(pc, &existing, punchAt)
}

func (u *LiveUpdater) createFirstPunch(pc PunchContext, punchAt time.Time, date time.Time) (bool, error) {
	punchUTC := punchAt.UTC()
	deviceCode := pc.DeviceCode

	rec := recordModel.AttendanceRecordModel{
		AttendanceRecordSchoolID:         pc.SchoolID,
		AttendanceRecordUserID:           pc.UserID,
		AttendanceRecordDate:             date,
		AttendanceRecordStatus:           recordModel.AttendancePresent,
		AttendanceRecordIsBiometricEntry: true,
		AttendanceRecordDeviceCode:       &deviceCode,
	}
	// Murid hanya dicatat hadir/absen, tanpa jam masuk; staf dicatat jamnya.
	if !constants.IsStudentRole(pc.UserRole) {
		rec.AttendanceRecordCheckInTime = &punchUTC
	}

	if err := u.DB.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Race dua punch hampir bersamaan: unique (user, school, date) di
			// storage adalah backstop-nya; yang kalah cukup no-op.
			log.Printf("[LIVE] duplicate record user=%s date=%s, punch diabaikan", pc.UserID, date.Format("2006-01-02"))
			return false, nil
		}
		return false, err
	}

	localClock := helper.LocalClock(punchUTC, pc.TimezoneOffsetMin)
	meta := map[string]any{
		"date":        date.Format("2006-01-02"),
		"device_code": pc.DeviceCode,
	}
	if constants.IsStudentRole(pc.UserRole) {
		notifySafe(u.Notifier, pc.SchoolID, []uuid.UUID{pc.UserID},
			"Kehadiran Tercatat",
			"Ananda tercatat hadir di sekolah hari ini.",
			notifModel.NotificationTypeAttendance, meta)
	} else {
		notifySafe(u.Notifier, pc.SchoolID, []uuid.UUID{pc.UserID},
			"Check-in Tercatat",
			fmt.Sprintf("Check-in Anda tercatat pukul %s.", localClock.Format("15:04")),
			notifModel.NotificationTypeAttendance, meta)
	}
	return true, nil
}

func (u *LiveUpdater) applyCheckOut(pc PunchContext, rec *recordModel.AttendanceRecordModel, punchAt time.Time) error {
	if rec.AttendanceRecordCheckInTime == nil {
		// Record staf tanpa jam masuk (mis. input manual) tidak bisa dihitung.
		return nil
	}

	punchUTC := punchAt.UTC()
	hours := punchUTC.Sub(rec.AttendanceRecordCheckInTime.UTC()).Hours()
	wh := math.Round(hours*100) / 100

	// Update kondisional: row yang keburu difinalisasi nightly job tidak disentuh.
	res := u.DB.Model(&recordModel.AttendanceRecordModel{}).
		Where("attendance_record_id = ? AND attendance_record_is_biometric_finalized = ?",
			rec.AttendanceRecordID, false).
		Updates(map[string]any{
			"attendance_record_check_out_time": punchUTC,
			"attendance_record_working_hours":  wh,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	localClock := helper.LocalClock(punchUTC, pc.TimezoneOffsetMin)
	notifySafe(u.Notifier, pc.SchoolID, []uuid.UUID{pc.UserID},
		"Check-out Tercatat",
		fmt.Sprintf("Check-out Anda tercatat pukul %s (total %.2f jam).", localClock.Format("15:04"), wh),
		notifModel.NotificationTypeAttendance, map[string]any{
			"date":          rec.AttendanceRecordDate.Format("2006-01-02"),
			"working_hours": wh,
		})
	return nil
}
