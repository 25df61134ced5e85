// internals/features/attendance/biometric/controller/device_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bioDTO "edubreezy_backend/internals/features/attendance/biometric/dto"
	bioModel "edubreezy_backend/internals/features/attendance/biometric/model"
	userModel "edubreezy_backend/internals/features/users/users/model"
	helper "edubreezy_backend/internals/helpers"
)

/* ===============================
   Admin: perangkat & mapping user
=============================== */

type BiometricDeviceController struct {
	DB *gorm.DB
}

func NewBiometricDeviceController(db *gorm.DB) *BiometricDeviceController {
	return &BiometricDeviceController{DB: db}
}

var validate = validator.New()

// GET /api/a/biometric/devices
func (ctrl *BiometricDeviceController) ListDevices(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var devices []bioModel.BiometricDeviceModel
	if err := ctrl.DB.
		Where("biometric_device_school_id = ?", schoolID).
		Order("biometric_device_created_at ASC").
		Find(&devices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar perangkat")
	}

	resp := make([]bioDTO.BiometricDeviceResponse, 0, len(devices))
	for _, d := range devices {
		resp = append(resp, bioDTO.FromBiometricDeviceModel(d))
	}
	return helper.JsonOK(c, "Daftar perangkat", resp)
}

// POST /api/a/biometric/devices
func (ctrl *BiometricDeviceController) CreateDevice(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req bioDTO.CreateBiometricDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	device := bioModel.BiometricDeviceModel{
		BiometricDeviceSchoolID: schoolID,
		BiometricDeviceCode:     req.BiometricDeviceCode,
		BiometricDeviceName:     req.BiometricDeviceName,
		BiometricDeviceIsActive: true,
	}
	if err := ctrl.DB.Create(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "Kode perangkat sudah terdaftar di sekolah ini")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mendaftarkan perangkat")
	}

	return helper.JsonCreated(c, "Perangkat terdaftar", bioDTO.FromBiometricDeviceModel(device))
}

// PATCH /api/a/biometric/devices/:id
func (ctrl *BiometricDeviceController) UpdateDevice(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	deviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID perangkat tidak valid")
	}

	var req bioDTO.UpdateBiometricDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var device bioModel.BiometricDeviceModel
	if err := ctrl.DB.
		Where("biometric_device_id = ? AND biometric_device_school_id = ?", deviceID, schoolID).
		First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Perangkat tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data perangkat")
	}

	updates := map[string]any{}
	if req.BiometricDeviceName != nil {
		updates["biometric_device_name"] = *req.BiometricDeviceName
	}
	if req.BiometricDeviceIsActive != nil {
		updates["biometric_device_is_active"] = *req.BiometricDeviceIsActive
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", bioDTO.FromBiometricDeviceModel(device))
	}

	if err := ctrl.DB.Model(&device).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui perangkat")
	}
	return helper.JsonUpdated(c, "Perangkat diperbarui", bioDTO.FromBiometricDeviceModel(device))
}

/* ===============================
   Enrollment mapping user ↔ mesin
=============================== */

// POST /api/a/biometric/mappings
//
// Re-enroll id mesin yang sama menonaktifkan mapping aktif sebelumnya dalam
// transaksi yang sama, supaya paling banyak satu mapping aktif per
// (device, device_user_id).
func (ctrl *BiometricDeviceController) EnrollMapping(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req bioDTO.CreateDeviceUserMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Perangkat & user harus milik tenant yang sama
	var device bioModel.BiometricDeviceModel
	if err := ctrl.DB.
		Where("biometric_device_id = ? AND biometric_device_school_id = ?", req.DeviceUserMappingDeviceID, schoolID).
		First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Perangkat tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data perangkat")
	}

	var user userModel.UserModel
	if err := ctrl.DB.
		Select("user_id, user_school_id, user_is_active").
		Where("user_id = ? AND user_school_id = ?", req.DeviceUserMappingUserID, schoolID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan di sekolah ini")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusBadRequest, "User nonaktif tidak bisa di-enroll")
	}

	mapping := bioModel.DeviceUserMappingModel{
		DeviceUserMappingSchoolID:     schoolID,
		DeviceUserMappingDeviceID:     device.BiometricDeviceID,
		DeviceUserMappingDeviceUserID: req.DeviceUserMappingDeviceUserID,
		DeviceUserMappingUserID:       user.UserID,
		DeviceUserMappingIsActive:     true,
	}
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := tx.Model(&bioModel.DeviceUserMappingModel{}).
			Where("device_user_mapping_device_id = ? AND device_user_mapping_device_user_id = ? AND device_user_mapping_is_active = ?",
				device.BiometricDeviceID, req.DeviceUserMappingDeviceUserID, true).
			Updates(map[string]any{
				"device_user_mapping_is_active":  false,
				"device_user_mapping_updated_at": now,
			}).Error; err != nil {
			return err
		}
		return tx.Create(&mapping).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan mapping")
	}

	return helper.JsonCreated(c, "Mapping tersimpan", bioDTO.FromDeviceUserMappingModel(mapping))
}

// GET /api/a/biometric/mappings?device_id=...
func (ctrl *BiometricDeviceController) ListMappings(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.Model(&bioModel.DeviceUserMappingModel{}).
		Where("device_user_mapping_school_id = ?", schoolID)
	if raw := c.Query("device_id"); raw != "" {
		deviceID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "device_id tidak valid")
		}
		q = q.Where("device_user_mapping_device_id = ?", deviceID)
	}

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung mapping")
	}

	var rows []bioModel.DeviceUserMappingModel
	if err := q.Order("device_user_mapping_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil mapping")
	}

	resp := make([]bioDTO.DeviceUserMappingResponse, 0, len(rows))
	for _, m := range rows {
		resp = append(resp, bioDTO.FromDeviceUserMappingModel(m))
	}
	return helper.JsonList(c, "Daftar mapping", resp, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// DELETE /api/a/biometric/mappings/:id (soft: nonaktifkan)
func (ctrl *BiometricDeviceController) DeactivateMapping(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	mappingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID mapping tidak valid")
	}

	res := ctrl.DB.Model(&bioModel.DeviceUserMappingModel{}).
		Where("device_user_mapping_id = ? AND device_user_mapping_school_id = ?", mappingID, schoolID).
		Update("device_user_mapping_is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menonaktifkan mapping")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Mapping tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Mapping dinonaktifkan", fiber.Map{"device_user_mapping_id": mappingID})
}

/* ===============================
   Punch yang gagal diproses
=============================== */

// GET /api/a/biometric/events/unresolved
//
// Raw event dengan processing_error (mapping belum ada, user nonaktif, dsb).
// Admin pakai ini untuk rekonsiliasi manual; event lama TIDAK di-replay
// otomatis setelah mapping dibuat.
func (ctrl *BiometricDeviceController) ListUnresolvedEvents(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.Model(&bioModel.BiometricRawEventModel{}).
		Where("biometric_raw_event_school_id = ? AND biometric_raw_event_processing_error IS NOT NULL", schoolID)

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung event")
	}

	var rows []bioModel.BiometricRawEventModel
	if err := q.Order("biometric_raw_event_time DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil event")
	}

	return helper.JsonList(c, "Event belum terproses", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
