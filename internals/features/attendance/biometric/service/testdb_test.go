package service

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	recordModel "edubreezy_backend/internals/features/attendance/attendance_records/model"
	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
	yearModel "edubreezy_backend/internals/features/school/academic_years/model"
	configModel "edubreezy_backend/internals/features/school/attendance_config/model"
	schoolModel "edubreezy_backend/internals/features/school/schools/model"
	userModel "edubreezy_backend/internals/features/users/users/model"
)

// newTestDB: sqlite in-memory dengan skema pipeline. TranslateError wajib —
// jalur race di production bergantung pada gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// :memory: hidup per koneksi; paksa satu koneksi supaya skema tidak hilang
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
	return db
}

/* ===== stub notifier ===== */

type sentNotification struct {
	SchoolID uuid.UUID
	UserIDs  []uuid.UUID
	Title    string
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (s *stubNotifier) Send(schoolID uuid.UUID, userIDs []uuid.UUID, title, message string, notifType int, metadata map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentNotification{SchoolID: schoolID, UserIDs: userIDs, Title: title})
	return nil
}

func (s *stubNotifier) titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sent))
	for _, n := range s.sent {
		out = append(out, n.Title)
	}
	return out
}

/* ===== seed helpers ===== */

func seedSchool(t *testing.T, db *gorm.DB, offsetMin int) schoolModel.SchoolModel {
	t.Helper()
	school := schoolModel.SchoolModel{
		SchoolName:              "SDIT Test",
		SchoolSlug:              "sdit-test-" + uuid.NewString()[:8],
		SchoolTimezoneOffsetMin: offsetMin,
		SchoolIsActive:          true,
	}
	require.NoError(t, db.Create(&school).Error)
	return school
}

func seedUser(t *testing.T, db *gorm.DB, schoolID uuid.UUID, role string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserSchoolID: schoolID,
		UserName:     role + "-" + uuid.NewString()[:8],
		UserEmail:    uuid.NewString() + "@test.local",
		UserRole:     role,
		UserIsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedDevice(t *testing.T, db *gorm.DB, schoolID uuid.UUID, code string) bioModel.BiometricDeviceModel {
	t.Helper()
	d := bioModel.BiometricDeviceModel{
		BiometricDeviceSchoolID: schoolID,
		BiometricDeviceCode:     code,
		BiometricDeviceName:     "Mesin " + code,
		BiometricDeviceIsActive: true,
	}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func seedMapping(t *testing.T, db *gorm.DB, schoolID, deviceID, userID uuid.UUID, deviceUserID string) {
	t.Helper()
	m := bioModel.DeviceUserMappingModel{
		DeviceUserMappingSchoolID:     schoolID,
		DeviceUserMappingDeviceID:     deviceID,
		DeviceUserMappingDeviceUserID: deviceUserID,
		DeviceUserMappingUserID:       userID,
		DeviceUserMappingIsActive:     true,
	}
	require.NoError(t, db.Create(&m).Error)
}
