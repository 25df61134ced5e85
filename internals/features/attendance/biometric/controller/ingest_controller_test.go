package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edubreezy_backend/internals/constants"
	recordModel "edubreezy_backend/internals/features/attendance/attendance_records/model"
	bioDTO "edubreezy_backend/internals/features/attendance/biometric/dto"
	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
	yearModel "edubreezy_backend/internals/features/school/academic_years/model"
	configModel "edubreezy_backend/internals/features/school/attendance_config/model"
	schoolModel "edubreezy_backend/internals/features/school/schools/model"
	userModel "edubreezy_backend/internals/features/users/users/model"
)

const testAgentKey = "ebk_test_agent_key_123"

type ingestFixture struct {
	app    *fiber.App
	db     *gorm.DB
	school schoolModel.SchoolModel
	device bioModel.BiometricDeviceModel
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&schoolModel.SchoolModel{},
		&yearModel.AcademicYearModel{},
		&configModel.AttendanceConfigModel{},
		&userModel.UserModel{},
		&bioModel.BiometricDeviceModel{},
		&bioModel.DeviceUserMappingModel{},
		&bioModel.BiometricRawEventModel{},
		&recordModel.AttendanceRecordModel{},
	))

	hash, err := bcrypt.GenerateFromPassword([]byte(testAgentKey), bcrypt.MinCost)
	require.NoError(t, err)

	school := schoolModel.SchoolModel{
		SchoolName:              "SDIT Test",
		SchoolSlug:              "sdit-test",
		SchoolAgentKeyHash:      string(hash),
		SchoolTimezoneOffsetMin: 420,
		SchoolIsActive:          true,
	}
	require.NoError(t, db.Create(&school).Error)

	require.NoError(t, db.Create(&configModel.AttendanceConfigModel{
		AttendanceConfigSchoolID:         school.SchoolID,
		AttendanceConfigStartTime:        "07:30",
		AttendanceConfigEndTime:          "15:00",
		AttendanceConfigGracePeriodMin:   15,
		AttendanceConfigHalfDayHours:     4,
		AttendanceConfigFullDayHours:     7,
		AttendanceConfigBiometricEnabled: true,
	}).Error)

	device := bioModel.BiometricDeviceModel{
		BiometricDeviceSchoolID: school.SchoolID,
		BiometricDeviceCode:     "FP-01",
		BiometricDeviceName:     "Mesin Gerbang",
		BiometricDeviceIsActive: true,
	}
	require.NoError(t, db.Create(&device).Error)

	app := fiber.New()
	ctrl := NewIngestController(db)
	app.Post("/api/agent/schools/:slug/biometric/events", ctrl.PostEvents)

	return &ingestFixture{app: app, db: db, school: school, device: device}
}

func (fx *ingestFixture) enrollStudent(t *testing.T, deviceUserID string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserSchoolID: fx.school.SchoolID,
		UserName:     "Murid " + deviceUserID,
		UserEmail:    uuid.NewString() + "@test.local",
		UserRole:     constants.RoleStudent,
		UserIsActive: true,
	}
	require.NoError(t, fx.db.Create(&u).Error)
	require.NoError(t, fx.db.Create(&bioModel.DeviceUserMappingModel{
		DeviceUserMappingSchoolID:     fx.school.SchoolID,
		DeviceUserMappingDeviceID:     fx.device.BiometricDeviceID,
		DeviceUserMappingDeviceUserID: deviceUserID,
		DeviceUserMappingUserID:       u.UserID,
		DeviceUserMappingIsActive:     true,
	}).Error)
	return u
}

func (fx *ingestFixture) postBatch(t *testing.T, slug, agentKey string, body bioDTO.IngestBatchRequest) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/agent/schools/%s/biometric/events", slug),
		bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if agentKey != "" {
		req.Header.Set("X-Agent-Key", agentKey)
	}

	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeStats(t *testing.T, resp *http.Response) bioDTO.IngestStats {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool               `json:"success"`
		Data    bioDTO.IngestStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Success)
	return envelope.Data
}

func punchAt(hhmmUTC string) *time.Time {
	parsed, _ := time.Parse("15:04", hhmmUTC)
	at := time.Date(2026, 3, 2, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return &at
}

func batchOf(deviceCode string, events ...bioDTO.AgentPunchEvent) bioDTO.IngestBatchRequest {
	return bioDTO.IngestBatchRequest{DeviceID: deviceCode, Events: events}
}

func TestIngest_RejectsBadAgentKey(t *testing.T) {
	fx := newIngestFixture(t)

	resp := fx.postBatch(t, "sdit-test", "wrong-key",
		batchOf("FP-01", bioDTO.AgentPunchEvent{DeviceUserID: "1", EventTime: punchAt("00:10")}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = fx.postBatch(t, "sdit-test", "",
		batchOf("FP-01", bioDTO.AgentPunchEvent{DeviceUserID: "1", EventTime: punchAt("00:10")}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIngest_UnknownSchoolAndDevice(t *testing.T) {
	fx := newIngestFixture(t)

	resp := fx.postBatch(t, "tidak-ada", testAgentKey, batchOf("FP-01"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = fx.postBatch(t, "sdit-test", testAgentKey,
		batchOf("FP-99", bioDTO.AgentPunchEvent{DeviceUserID: "1", EventTime: punchAt("00:10")}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIngest_RejectsWhenBiometricDisabled(t *testing.T) {
	fx := newIngestFixture(t)
	require.NoError(t, fx.db.Model(&configModel.AttendanceConfigModel{}).
		Where("attendance_config_school_id = ?", fx.school.SchoolID).
		Update("attendance_config_biometric_enabled", false).Error)

	resp := fx.postBatch(t, "sdit-test", testAgentKey,
		batchOf("FP-01", bioDTO.AgentPunchEvent{DeviceUserID: "1", EventTime: punchAt("00:10")}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIngest_BatchThenReplay(t *testing.T) {
	fx := newIngestFixture(t)
	s1 := fx.enrollStudent(t, "101")
	fx.enrollStudent(t, "102")

	batch := batchOf("FP-01",
		bioDTO.AgentPunchEvent{DeviceUserID: "101", EventTime: punchAt("00:05")},
		bioDTO.AgentPunchEvent{DeviceUserID: "102", EventTime: punchAt("00:07")},
	)

	resp := fx.postBatch(t, "sdit-test", testAgentKey, batch)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeStats(t, resp)
	assert.Equal(t, 2, stats.Received)
	assert.Equal(t, 2, stats.NewEvents)
	assert.Equal(t, 2, stats.AttendanceCreated)
	assert.Equal(t, 0, stats.Duplicates)
	assert.Equal(t, 0, stats.Errors)

	// Record live ada untuk murid pertama
	var rec recordModel.AttendanceRecordModel
	require.NoError(t, fx.db.
		Where("attendance_record_user_id = ?", s1.UserID).
		First(&rec).Error)
	assert.Equal(t, recordModel.AttendancePresent, rec.AttendanceRecordStatus)

	// Replay batch yang sama persis (agent retry) → full duplicate, tanpa row baru
	resp = fx.postBatch(t, "sdit-test", testAgentKey, batch)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats = decodeStats(t, resp)
	assert.Equal(t, 0, stats.NewEvents)
	assert.Equal(t, 2, stats.Duplicates)
	assert.Equal(t, 0, stats.AttendanceCreated)

	var rawCount int64
	require.NoError(t, fx.db.Model(&bioModel.BiometricRawEventModel{}).Count(&rawCount).Error)
	assert.Equal(t, int64(2), rawCount)
}

func TestIngest_SameDeviceCodeAcrossSchools(t *testing.T) {
	fx := newIngestFixture(t)
	fx.enrollStudent(t, "101")

	// Sekolah kedua dengan kode device yang sama persis ("FP-01") dan
	// device_user_id yang sama ("101") — kombinasi yang sah karena kode device
	// hanya unik per sekolah.
	hash, err := bcrypt.GenerateFromPassword([]byte(testAgentKey), bcrypt.MinCost)
	require.NoError(t, err)
	other := schoolModel.SchoolModel{
		SchoolName:              "SDIT Lain",
		SchoolSlug:              "sdit-lain",
		SchoolAgentKeyHash:      string(hash),
		SchoolTimezoneOffsetMin: 420,
		SchoolIsActive:          true,
	}
	require.NoError(t, fx.db.Create(&other).Error)
	require.NoError(t, fx.db.Create(&configModel.AttendanceConfigModel{
		AttendanceConfigSchoolID:         other.SchoolID,
		AttendanceConfigStartTime:        "07:30",
		AttendanceConfigEndTime:          "15:00",
		AttendanceConfigGracePeriodMin:   15,
		AttendanceConfigHalfDayHours:     4,
		AttendanceConfigFullDayHours:     7,
		AttendanceConfigBiometricEnabled: true,
	}).Error)
	otherDevice := bioModel.BiometricDeviceModel{
		BiometricDeviceSchoolID: other.SchoolID,
		BiometricDeviceCode:     "FP-01",
		BiometricDeviceName:     "Mesin Gerbang",
		BiometricDeviceIsActive: true,
	}
	require.NoError(t, fx.db.Create(&otherDevice).Error)
	otherStudent := userModel.UserModel{
		UserSchoolID: other.SchoolID,
		UserName:     "Murid Lain",
		UserEmail:    uuid.NewString() + "@test.local",
		UserRole:     constants.RoleStudent,
		UserIsActive: true,
	}
	require.NoError(t, fx.db.Create(&otherStudent).Error)
	require.NoError(t, fx.db.Create(&bioModel.DeviceUserMappingModel{
		DeviceUserMappingSchoolID:     other.SchoolID,
		DeviceUserMappingDeviceID:     otherDevice.BiometricDeviceID,
		DeviceUserMappingDeviceUserID: "101",
		DeviceUserMappingUserID:       otherStudent.UserID,
		DeviceUserMappingIsActive:     true,
	}).Error)

	// Punch di detik yang sama persis di kedua sekolah — keduanya harus masuk,
	// bukan saling dianggap duplikat
	batch := batchOf("FP-01",
		bioDTO.AgentPunchEvent{DeviceUserID: "101", EventTime: punchAt("00:05")})

	resp := fx.postBatch(t, "sdit-test", testAgentKey, batch)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeStats(t, resp)
	assert.Equal(t, 1, stats.NewEvents)
	assert.Equal(t, 0, stats.Duplicates)

	resp = fx.postBatch(t, "sdit-lain", testAgentKey, batch)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats = decodeStats(t, resp)
	assert.Equal(t, 1, stats.NewEvents)
	assert.Equal(t, 0, stats.Duplicates)
	assert.Equal(t, 1, stats.AttendanceCreated)

	var rawCount int64
	require.NoError(t, fx.db.Model(&bioModel.BiometricRawEventModel{}).Count(&rawCount).Error)
	assert.Equal(t, int64(2), rawCount)

	var rec recordModel.AttendanceRecordModel
	require.NoError(t, fx.db.
		Where("attendance_record_user_id = ?", otherStudent.UserID).
		First(&rec).Error)
	assert.Equal(t, recordModel.AttendancePresent, rec.AttendanceRecordStatus)
}

func TestIngest_PartialFailureStays200(t *testing.T) {
	fx := newIngestFixture(t)
	fx.enrollStudent(t, "101")

	resp := fx.postBatch(t, "sdit-test", testAgentKey, batchOf("FP-01",
		bioDTO.AgentPunchEvent{DeviceUserID: "101", EventTime: punchAt("00:05")},
		bioDTO.AgentPunchEvent{DeviceUserID: "", EventTime: punchAt("00:06")},    // field wajib hilang
		bioDTO.AgentPunchEvent{DeviceUserID: "999", EventTime: punchAt("00:07")}, // tidak ter-mapping
	))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decodeStats(t, resp)
	assert.Equal(t, 3, stats.Received)
	assert.Equal(t, 2, stats.NewEvents) // event tanpa device_user_id tidak disimpan
	assert.Equal(t, 1, stats.AttendanceCreated)
	assert.Equal(t, 2, stats.Errors)

	// Event tak ter-mapping tersimpan dengan anotasi error untuk rekonsiliasi
	var unresolved bioModel.BiometricRawEventModel
	require.NoError(t, fx.db.
		Where("biometric_raw_event_device_user_id = ?", "999").
		First(&unresolved).Error)
	assert.Nil(t, unresolved.BiometricRawEventResolvedUserID)
	require.NotNil(t, unresolved.BiometricRawEventProcessingError)

	// Batch ada error → status sync partial
	var device bioModel.BiometricDeviceModel
	require.NoError(t, fx.db.First(&device, "biometric_device_id = ?", fx.device.BiometricDeviceID).Error)
	require.NotNil(t, device.BiometricDeviceLastSyncStatus)
	assert.Equal(t, bioModel.DeviceSyncStatusPartial, *device.BiometricDeviceLastSyncStatus)
	assert.NotNil(t, device.BiometricDeviceLastSyncedAt)
}

func TestIngest_InactiveDeviceRejected(t *testing.T) {
	fx := newIngestFixture(t)
	require.NoError(t, fx.db.Model(&bioModel.BiometricDeviceModel{}).
		Where("biometric_device_id = ?", fx.device.BiometricDeviceID).
		Update("biometric_device_is_active", false).Error)

	resp := fx.postBatch(t, "sdit-test", testAgentKey,
		batchOf("FP-01", bioDTO.AgentPunchEvent{DeviceUserID: "1", EventTime: punchAt("00:10")}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIngest_MalformedBody(t *testing.T) {
	fx := newIngestFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/agent/schools/sdit-test/biometric/events",
		bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Agent-Key", testAgentKey)

	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
