// internals/features/school/attendance_config/controller/attendance_config_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cfgDTO "edubreezy_backend/internals/features/school/attendance_config/dto"
	cfgModel "edubreezy_backend/internals/features/school/attendance_config/model"
	helper "edubreezy_backend/internals/helpers"
)

type AttendanceConfigController struct {
	DB *gorm.DB
}

func NewAttendanceConfigController(db *gorm.DB) *AttendanceConfigController {
	return &AttendanceConfigController{DB: db}
}

var validate = validator.New()

// GET /api/a/attendance/config
func (ctrl *AttendanceConfigController) GetConfig(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var cfg cfgModel.AttendanceConfigModel
	if err := ctrl.DB.Where("attendance_config_school_id = ?", schoolID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Konfigurasi absensi belum dibuat")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil konfigurasi")
	}
	return helper.JsonOK(c, "Konfigurasi absensi", cfgDTO.FromAttendanceConfigModel(cfg))
}

// PATCH /api/a/attendance/config
//
// Upsert: sekolah tanpa config mendapat baris default dulu baru di-patch.
// Jam "HH:MM" divalidasi parse beneran, bukan cuma panjang string.
func (ctrl *AttendanceConfigController) UpdateConfig(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req cfgDTO.UpdateAttendanceConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	for _, hhmm := range []*string{req.AttendanceConfigStartTime, req.AttendanceConfigEndTime} {
		if hhmm != nil {
			if _, err := time.Parse("15:04", *hhmm); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format jam harus HH:MM")
			}
		}
	}

	var cfg cfgModel.AttendanceConfigModel
	err = ctrl.DB.Where("attendance_config_school_id = ?", schoolID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = cfgModel.AttendanceConfigModel{
			AttendanceConfigSchoolID:       schoolID,
			AttendanceConfigStartTime:      "07:30",
			AttendanceConfigEndTime:        "15:00",
			AttendanceConfigGracePeriodMin: 15,
			AttendanceConfigHalfDayHours:   4,
			AttendanceConfigFullDayHours:   7,
		}
		if err := ctrl.DB.Create(&cfg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat konfigurasi")
		}
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil konfigurasi")
	}

	updates := map[string]any{}
	if req.AttendanceConfigStartTime != nil {
		updates["attendance_config_start_time"] = *req.AttendanceConfigStartTime
	}
	if req.AttendanceConfigEndTime != nil {
		updates["attendance_config_end_time"] = *req.AttendanceConfigEndTime
	}
	if req.AttendanceConfigGracePeriodMin != nil {
		updates["attendance_config_grace_period_min"] = *req.AttendanceConfigGracePeriodMin
	}
	if req.AttendanceConfigHalfDayHours != nil {
		updates["attendance_config_half_day_hours"] = *req.AttendanceConfigHalfDayHours
	}
	if req.AttendanceConfigFullDayHours != nil {
		updates["attendance_config_full_day_hours"] = *req.AttendanceConfigFullDayHours
	}
	if req.AttendanceConfigBiometricEnabled != nil {
		updates["attendance_config_biometric_enabled"] = *req.AttendanceConfigBiometricEnabled
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&cfg).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui konfigurasi")
		}
	}

	// Config mempengaruhi hasil view rekap
	helper.CacheInvalidatePrefix("attendance:")

	return helper.JsonUpdated(c, "Konfigurasi diperbarui", cfgDTO.FromAttendanceConfigModel(cfg))
}
