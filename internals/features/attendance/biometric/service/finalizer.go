// file: internals/features/attendance/biometric/service/finalizer.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	recordModel "edubreezy_backend/internals/features/attendance/attendance_records/model"
	notifModel "edubreezy_backend/internals/features/home/notifications/model"
	yearModel "edubreezy_backend/internals/features/school/academic_years/model"
	configModel "edubreezy_backend/internals/features/school/attendance_config/model"
	schoolModel "edubreezy_backend/internals/features/school/schools/model"
	helper "edubreezy_backend/internals/helpers"
)

/* ===============================
   Nightly Finalizer
=============================== */

const (
	// Sekolah diproses maksimal 3 bersamaan: membatasi resource tapi tetap
	// memparalelkan kerja yang I/O-bound.
	defaultSchoolConcurrency = 3
	// Ukuran batch insert ABSENT sintetis (batasi ukuran satu statement)
	defaultAbsentBatchSize = 100

	remarkFinalized  = "Difinalisasi otomatis oleh job biometrik nightly"
	remarkNoBioPunch = "Tidak ada punch biometrik tercatat hari ini"
)

type SchoolResult struct {
	SchoolID     uuid.UUID `json:"school_id"`
	SchoolName   string    `json:"school_name"`
	Skipped      bool      `json:"skipped"`
	SkipReason   string    `json:"skip_reason,omitempty"`
	Finalized    int       `json:"finalized"`
	AbsentMarked int       `json:"absent_marked"`
	Errors       int       `json:"errors"`
	Error        string    `json:"error,omitempty"`
}

type NightlyStats struct {
	SchoolsProcessed  int   `json:"schools_processed"`
	TotalFinalized    int   `json:"total_finalized"`
	TotalAbsentMarked int   `json:"total_absent_marked"`
	TotalErrors       int   `json:"total_errors"`
	ExecutionMS       int64 `json:"execution_ms"`
}

type Finalizer struct {
	DB       *gorm.DB
	Notifier NotificationSender

	Concurrency     int64
	AbsentBatchSize int

	// Now bisa dioverride test; default time.Now
	Now func() time.Time
}

func NewFinalizer(db *gorm.DB, notifier NotificationSender) *Finalizer {
	return &Finalizer{
		DB:              db,
		Notifier:        notifier,
		Concurrency:     defaultSchoolConcurrency,
		AbsentBatchSize: defaultAbsentBatchSize,
		Now:             time.Now,
	}
}

// Run menjalankan pass nightly untuk semua sekolah yang biometriknya aktif.
// Aman di-rerun: step A hanya menyentuh row yang belum final, step B tidak
// menambah row kedua kalinya. Satu sekolah gagal tidak membatalkan yang lain
// (settle-all, bukan fail-fast).
func (f *Finalizer) Run(ctx context.Context) (NightlyStats, []SchoolResult, error) {
	start := f.Now()

	var schools []schoolModel.SchoolModel
	if err := f.DB.
		Joins("JOIN attendance_configs ON attendance_configs.attendance_config_school_id = schools.school_id AND attendance_configs.attendance_config_biometric_enabled = ?", true).
		Where("schools.school_is_active = ?", true).
		Find(&schools).Error; err != nil {
		return NightlyStats{}, nil, err
	}

	results := make([]SchoolResult, len(schools))
	sem := semaphore.NewWeighted(f.Concurrency)

	for i := range schools {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = SchoolResult{
				SchoolID:   schools[i].SchoolID,
				SchoolName: schools[i].SchoolName,
				Errors:     1,
				Error:      err.Error(),
			}
			continue
		}
		go func() {
			defer sem.Release(1)
			results[i] = f.finalizeSchool(ctx, &schools[i])
		}()
	}
	// settle-all join: tunggu semua slot kembali
	if err := sem.Acquire(ctx, f.Concurrency); err != nil {
		return NightlyStats{}, results, err
	}
	sem.Release(f.Concurrency)

	stats := NightlyStats{}
	for _, r := range results {
		if !r.Skipped {
			stats.SchoolsProcessed++
		}
		stats.TotalFinalized += r.Finalized
		stats.TotalAbsentMarked += r.AbsentMarked
		stats.TotalErrors += r.Errors
	}
	stats.ExecutionMS = time.Since(start).Milliseconds()

	// Cache-aside invalidation setelah semua sekolah selesai
	n := helper.CacheInvalidatePrefix("attendance:")
	log.Printf("[FINALIZER] selesai: %d sekolah, %d final, %d absent, %d error, cache invalidated=%d (%dms)",
		stats.SchoolsProcessed, stats.TotalFinalized, stats.TotalAbsentMarked, stats.TotalErrors, n, stats.ExecutionMS)

	return stats, results, nil
}

func (f *Finalizer) finalizeSchool(ctx context.Context, school *schoolModel.SchoolModel) (result SchoolResult) {
	result = SchoolResult{SchoolID: school.SchoolID, SchoolName: school.SchoolName}

	// Settle-all: panic satu sekolah tidak boleh meruntuhkan job
	defer func() {
		if r := recover(); r != nil {
			result.Errors++
			result.Error = fmt.Sprintf("panic: %v", r)
			log.Printf("[FINALIZER] panic sekolah %s: %v", school.SchoolName, r)
		}
	}()

	db := f.DB.WithContext(ctx)

	// Tanpa tahun ajaran aktif → skip total (bukan error)
	var year yearModel.AcademicYearModel
	if err := db.Where("academic_year_school_id = ? AND academic_year_is_active = ?", school.SchoolID, true).
		First(&year).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Skipped = true
			result.SkipReason = "tidak ada tahun ajaran aktif"
			log.Printf("[FINALIZER] skip %s: tidak ada tahun ajaran aktif", school.SchoolName)
			return result
		}
		result.Errors++
		result.Error = err.Error()
		return result
	}

	var cfg configModel.AttendanceConfigModel
	if err := db.Where("attendance_config_school_id = ?", school.SchoolID).First(&cfg).Error; err != nil {
		result.Errors++
		result.Error = "config absensi tidak ditemukan: " + err.Error()
		return result
	}

	today := helper.CivilDateOf(f.Now(), school.SchoolTimezoneOffsetMin)

	result.Finalized = f.finalizeExistingPunches(db, school, &cfg, today, &result)
	result.AbsentMarked = f.markAbsentees(db, school, today, &result)
	return result
}

// Step A: terapkan aturan bisnis ke semua record biometrik hari ini yang
// belum final. Error per-record dicatat dan dilewati, sisanya jalan terus.
func (f *Finalizer) finalizeExistingPunches(db *gorm.DB, school *schoolModel.SchoolModel, cfg *configModel.AttendanceConfigModel, today time.Time, result *SchoolResult) int {
	var records []recordModel.AttendanceRecordModel
	if err := db.
		Where("attendance_record_school_id = ? AND attendance_record_date = ? AND attendance_record_is_biometric_entry = ? AND attendance_record_is_biometric_finalized = ?",
			school.SchoolID, today, true, false).
		Find(&records).Error; err != nil {
		result.Errors++
		result.Error = err.Error()
		return 0
	}

	finalized := 0
	now := f.Now().UTC()
	for i := range records {
		rec := &records[i]
		// Tanpa jam masuk tidak ada yang bisa dihitung; biarkan untuk pass berikutnya
		if rec.AttendanceRecordCheckInTime == nil {
			continue
		}

		outcome, err := ComputeFinalStatus(FinalizeInput{
			Date:         rec.AttendanceRecordDate,
			CheckInLocal: helper.LocalClock(*rec.AttendanceRecordCheckInTime, school.SchoolTimezoneOffsetMin),
			WorkingHours: rec.AttendanceRecordWorkingHours,
			StartTime:    cfg.AttendanceConfigStartTime,
			GraceMin:     cfg.AttendanceConfigGracePeriodMin,
			HalfDayHours: cfg.AttendanceConfigHalfDayHours,
		})
		if err != nil {
			result.Errors++
			log.Printf("[FINALIZER] %s record %s: %v", school.SchoolName, rec.AttendanceRecordID, err)
			continue
		}

		// Update kondisional: hanya row yang masih belum final
		res := db.Model(&recordModel.AttendanceRecordModel{}).
			Where("attendance_record_id = ? AND attendance_record_is_biometric_finalized = ?", rec.AttendanceRecordID, false).
			Updates(map[string]any{
				"attendance_record_status":                 outcome.Status,
				"attendance_record_is_late":                outcome.IsLate,
				"attendance_record_late_by_minutes":        outcome.LateByMinutes,
				"attendance_record_is_biometric_finalized": true,
				"attendance_record_finalized_at":           now,
				"attendance_record_remarks":                remarkFinalized,
			})
		if res.Error != nil {
			result.Errors++
			log.Printf("[FINALIZER] %s record %s: %v", school.SchoolName, rec.AttendanceRecordID, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			finalized++
		}
	}
	return finalized
}

// Step B: sintesis ABSENT untuk user yang ter-mapping ke device aktif tapi
// tidak punya record apa pun hari ini. Insert skip-duplicates per batch —
// rerun kedua tidak menambah row.
func (f *Finalizer) markAbsentees(db *gorm.DB, school *schoolModel.SchoolModel, today time.Time, result *SchoolResult) int {
	var mappedIDs []uuid.UUID
	if err := db.Table("device_user_mappings").
		Joins("JOIN biometric_devices ON biometric_devices.biometric_device_id = device_user_mappings.device_user_mapping_device_id AND biometric_devices.biometric_device_is_active = ?", true).
		Where("device_user_mappings.device_user_mapping_school_id = ? AND device_user_mappings.device_user_mapping_is_active = ?", school.SchoolID, true).
		Distinct().
		Pluck("device_user_mappings.device_user_mapping_user_id", &mappedIDs).Error; err != nil {
		result.Errors++
		result.Error = err.Error()
		return 0
	}
	if len(mappedIDs) == 0 {
		return 0
	}

	var presentIDs []uuid.UUID
	if err := db.Model(&recordModel.AttendanceRecordModel{}).
		Where("attendance_record_school_id = ? AND attendance_record_date = ?", school.SchoolID, today).
		Pluck("attendance_record_user_id", &presentIDs).Error; err != nil {
		result.Errors++
		result.Error = err.Error()
		return 0
	}
	presentSet := make(map[uuid.UUID]struct{}, len(presentIDs))
	for _, id := range presentIDs {
		presentSet[id] = struct{}{}
	}

	now := f.Now().UTC()
	remark := remarkNoBioPunch
	var absentees []recordModel.AttendanceRecordModel
	for _, userID := range mappedIDs {
		if _, ok := presentSet[userID]; ok {
			continue
		}
		absentees = append(absentees, recordModel.AttendanceRecordModel{
			AttendanceRecordID:                   uuid.New(),
			AttendanceRecordSchoolID:             school.SchoolID,
			AttendanceRecordUserID:               userID,
			AttendanceRecordDate:                 today,
			AttendanceRecordStatus:               recordModel.AttendanceAbsent,
			AttendanceRecordIsBiometricEntry:     true,
			AttendanceRecordIsBiometricFinalized: true,
			AttendanceRecordFinalizedAt:          &now,
			AttendanceRecordRequiresApproval:     false,
			AttendanceRecordRemarks:              &remark,
		})
	}
	if len(absentees) == 0 {
		return 0
	}

	inserted := 0
	batch := f.AbsentBatchSize
	if batch <= 0 {
		batch = defaultAbsentBatchSize
	}
	notifyIDs := make([]uuid.UUID, 0, len(absentees))
	for lo := 0; lo < len(absentees); lo += batch {
		hi := lo + batch
		if hi > len(absentees) {
			hi = len(absentees)
		}
		chunk := absentees[lo:hi]
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&chunk)
		if res.Error != nil {
			result.Errors++
			log.Printf("[FINALIZER] %s bulk absent: %v", school.SchoolName, res.Error)
			continue
		}
		inserted += int(res.RowsAffected)

		if int(res.RowsAffected) == len(chunk) {
			for _, a := range chunk {
				notifyIDs = append(notifyIDs, a.AttendanceRecordUserID)
			}
			continue
		}
		// Sebagian row di-skip OnConflict (sisa run sebelumnya). ID record
		// sudah ditetapkan di muka, jadi row yang benar-benar masuk bisa
		// dicek balik — yang di-skip tidak boleh dinotifikasi ulang.
		recordIDs := make([]uuid.UUID, 0, len(chunk))
		for _, a := range chunk {
			recordIDs = append(recordIDs, a.AttendanceRecordID)
		}
		var landed []uuid.UUID
		if err := db.Model(&recordModel.AttendanceRecordModel{}).
			Where("attendance_record_id IN ?", recordIDs).
			Pluck("attendance_record_user_id", &landed).Error; err != nil {
			log.Printf("[FINALIZER] %s cek absent masuk: %v", school.SchoolName, err)
			continue
		}
		notifyIDs = append(notifyIDs, landed...)
	}

	if len(notifyIDs) > 0 {
		notifySafe(f.Notifier, school.SchoolID, notifyIDs,
			"Tidak Hadir Hari Ini",
			"Tidak ada kehadiran tercatat dari perangkat biometrik hari ini.",
			notifModel.NotificationTypeAttendance, map[string]any{
				"date": today.Format("2006-01-02"),
			})
	}
	return inserted
}
