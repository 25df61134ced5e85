// internals/features/attendance/biometric/controller/ingest_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	bioDTO "edubreezy_backend/internals/features/attendance/biometric/dto"
	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
	bioService "edubreezy_backend/internals/features/attendance/biometric/service"
	notifService "edubreezy_backend/internals/features/home/notifications/service"
	configModel "edubreezy_backend/internals/features/school/attendance_config/model"
	schoolModel "edubreezy_backend/internals/features/school/schools/model"
	userModel "edubreezy_backend/internals/features/users/users/model"
	helper "edubreezy_backend/internals/helpers"
)

/* ===============================
   Ingestion (agent → event store)
=============================== */

type IngestController struct {
	DB      *gorm.DB
	Updater *bioService.LiveUpdater
}

func NewIngestController(db *gorm.DB) *IngestController {
	return &IngestController{
		DB:      db,
		Updater: bioService.NewLiveUpdater(db, notifService.NewInAppNotifier(db)),
	}
}

// POST /api/agent/schools/:slug/biometric/events
//
// Desain partial-failure-tolerant: event rusak dihitung di stats, tidak
// menggagalkan batch — agent jangan sampai retry seluruh batch gara-gara satu
// event jelek. Batch aman di-replay penuh: hash dedup membuat ingestion
// idempoten.
func (ctrl *IngestController) PostEvents(c *fiber.Ctx) error {
	start := time.Now()

	// 1) Sekolah dari path
	var school schoolModel.SchoolModel
	if err := ctrl.DB.
		Where("school_slug = ? AND school_is_active = ?", c.Params("slug"), true).
		First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data sekolah")
	}

	// 2) Agent key (secret per sekolah, hash bcrypt)
	agentKey := strings.TrimSpace(c.Get("X-Agent-Key"))
	if agentKey == "" || school.SchoolAgentKeyHash == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Agent key tidak ditemukan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(school.SchoolAgentKeyHash), []byte(agentKey)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Agent key tidak valid")
	}

	// 3) Biometrik harus aktif untuk sekolah ini
	var cfg configModel.AttendanceConfigModel
	if err := ctrl.DB.Where("attendance_config_school_id = ?", school.SchoolID).First(&cfg).Error; err != nil ||
		!cfg.AttendanceConfigBiometricEnabled {
		return fiber.NewError(fiber.StatusUnauthorized, "Absensi biometrik tidak aktif untuk sekolah ini")
	}

	// 4) Payload
	var req bioDTO.IngestBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// 5) Perangkat harus terdaftar & aktif
	var device bioModel.BiometricDeviceModel
	if err := ctrl.DB.
		Where("biometric_device_school_id = ? AND biometric_device_code = ?", school.SchoolID, req.DeviceID).
		First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Perangkat tidak terdaftar")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data perangkat")
	}
	if !device.BiometricDeviceIsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "Perangkat dinonaktifkan")
	}

	// 6) Proses per-event (sequential; kegagalan satu event tidak fatal)
	stats := bioDTO.IngestStats{Received: len(req.Events)}
	for i := range req.Events {
		ctrl.processOneEvent(&school, &device, &req.Events[i], &stats)
	}

	// 7) Update status sync perangkat, apa pun hasil per-event
	now := time.Now().UTC()
	syncStatus := bioModel.DeviceSyncStatusOK
	if stats.Errors > 0 {
		syncStatus = bioModel.DeviceSyncStatusPartial
	}
	if err := ctrl.DB.Model(&bioModel.BiometricDeviceModel{}).
		Where("biometric_device_id = ?", device.BiometricDeviceID).
		Updates(map[string]any{
			"biometric_device_last_synced_at":   now,
			"biometric_device_last_sync_status": syncStatus,
		}).Error; err != nil {
		log.Printf("[INGEST] gagal update status device %s: %v", device.BiometricDeviceCode, err)
	}

	stats.ExecutionMS = time.Since(start).Milliseconds()
	log.Printf("[INGEST] %s device=%s received=%d new=%d dup=%d created=%d err=%d (%dms)",
		school.SchoolSlug, device.BiometricDeviceCode,
		stats.Received, stats.NewEvents, stats.Duplicates, stats.AttendanceCreated, stats.Errors, stats.ExecutionMS)

	return helper.JsonOK(c, "Batch diproses", stats)
}

func (ctrl *IngestController) processOneEvent(school *schoolModel.SchoolModel, device *bioModel.BiometricDeviceModel, ev *bioDTO.AgentPunchEvent, stats *bioDTO.IngestStats) {
	// Validasi per-event: field wajib hilang → error, skip
	deviceUserID := strings.TrimSpace(ev.DeviceUserID)
	if deviceUserID == "" || ev.EventTime == nil {
		stats.Errors++
		return
	}

	eventType := ev.EventType
	if eventType != bioModel.PunchTypeCheckOut {
		eventType = bioModel.PunchTypeCheckIn
	}
	eventTime := ev.EventTime.UTC()

	// Dedup: hash atas (device, device_user, waktu ternormalisasi)
	hash := bioService.EventHash(device.BiometricDeviceID, deviceUserID, eventTime)
	var dupes int64
	if err := ctrl.DB.Model(&bioModel.BiometricRawEventModel{}).
		Where("biometric_raw_event_hash = ?", hash).
		Count(&dupes).Error; err != nil {
		stats.Errors++
		return
	}
	if dupes > 0 {
		stats.Duplicates++
		return
	}

	payload, _ := json.Marshal(ev)
	raw := bioModel.BiometricRawEventModel{
		BiometricRawEventSchoolID:     school.SchoolID,
		BiometricRawEventDeviceID:     device.BiometricDeviceID,
		BiometricRawEventDeviceUserID: deviceUserID,
		BiometricRawEventType:         eventType,
		BiometricRawEventTime:         eventTime,
		BiometricRawEventHash:         hash,
		BiometricRawEventCardNo:       ev.CardNo,
		BiometricRawEventDeviceRef:    ev.RawEventID,
		BiometricRawEventPayload:      payload,
	}
	if err := ctrl.DB.Create(&raw).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Race dua request dengan batch sama: unique hash di DB menang
			stats.Duplicates++
			return
		}
		stats.Errors++
		log.Printf("[INGEST] gagal simpan raw event: %v", err)
		return
	}
	stats.NewEvents++

	// Resolusi identitas → anotasi raw event, lalu live update
	userID, found, err := bioService.ResolveDeviceUser(ctrl.DB, device.BiometricDeviceID, deviceUserID)
	if err != nil {
		ctrl.annotateError(raw.BiometricRawEventID, "resolusi identitas gagal: "+err.Error())
		stats.Errors++
		return
	}
	if !found {
		// Dibiarkan untuk rekonsiliasi manual; tidak ada retry otomatis
		ctrl.annotateError(raw.BiometricRawEventID, "device user belum ter-mapping ke akun platform")
		stats.Errors++
		return
	}

	var user userModel.UserModel
	if err := ctrl.DB.
		Select("user_id, user_role, user_is_active").
		First(&user, "user_id = ?", userID).Error; err != nil {
		ctrl.annotateError(raw.BiometricRawEventID, "user hasil mapping tidak ditemukan")
		stats.Errors++
		return
	}
	if !user.UserIsActive {
		ctrl.annotateError(raw.BiometricRawEventID, "user hasil mapping nonaktif")
		stats.Errors++
		return
	}

	if err := ctrl.DB.Model(&bioModel.BiometricRawEventModel{}).
		Where("biometric_raw_event_id = ?", raw.BiometricRawEventID).
		Update("biometric_raw_event_resolved_user_id", userID).Error; err != nil {
		log.Printf("[INGEST] gagal anotasi resolved user: %v", err)
	}

	created, err := ctrl.Updater.ApplyPunch(bioService.PunchContext{
		SchoolID:          school.SchoolID,
		UserID:            userID,
		UserRole:          user.UserRole,
		TimezoneOffsetMin: school.SchoolTimezoneOffsetMin,
		DeviceCode:        device.BiometricDeviceCode,
	}, eventTime)
	if err != nil {
		ctrl.annotateError(raw.BiometricRawEventID, "update absensi live gagal: "+err.Error())
		stats.Errors++
		return
	}
	if created {
		stats.AttendanceCreated++
	}
}

func (ctrl *IngestController) annotateError(rawEventID uuid.UUID, msg string) {
	if err := ctrl.DB.Model(&bioModel.BiometricRawEventModel{}).
		Where("biometric_raw_event_id = ?", rawEventID).
		Update("biometric_raw_event_processing_error", msg).Error; err != nil {
		log.Printf("[INGEST] gagal anotasi error: %v", err)
	}
}
