// internals/features/attendance/attendance_records/controller/attendance_record_controller.go
package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	recDTO "edubreezy_backend/internals/features/attendance/attendance_records/dto"
	recModel "edubreezy_backend/internals/features/attendance/attendance_records/model"
	helper "edubreezy_backend/internals/helpers"
)

/* ===============================
   Rekap kehadiran (read-only view)
=============================== */

type AttendanceRecordController struct {
	DB *gorm.DB
}

func NewAttendanceRecordController(db *gorm.DB) *AttendanceRecordController {
	return &AttendanceRecordController{DB: db}
}

// GET /api/a/attendance/records?date=YYYY-MM-DD&status=PRESENT
//
// List admin per tanggal, join nama user. Hasil di-cache sebentar; key
// pakai prefix "attendance:" supaya diinvalidasi finalizer setelah run.
func (ctrl *AttendanceRecordController) ListByDate(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().UTC().Format("2006-01-02")
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}
	status := c.Query("status")

	p := helper.ResolvePaging(c, 30, 200)
	cacheKey := fmt.Sprintf("attendance:list:%s:%s:%s:%d:%d", schoolID, dateStr, status, p.Page, p.PerPage)

	type listResult struct {
		Rows  []recDTO.AttendanceRecordResponse
		Total int64
	}
	cached, err := helper.CacheRemember(cacheKey, 2*time.Minute, func() (any, error) {
		q := ctrl.DB.Table("attendance_records").
			Where("attendance_record_school_id = ? AND attendance_record_date = ?", schoolID, date)
		if status != "" {
			q = q.Where("attendance_record_status = ?", status)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return nil, err
		}

		var rows []recDTO.AttendanceRecordResponse
		if err := q.
			Select("attendance_records.*, users.user_name AS user_name, users.user_role AS user_role").
			Joins("JOIN users ON users.user_id = attendance_records.attendance_record_user_id").
			Order("users.user_name ASC").
			Offset(p.Offset).Limit(p.Limit).
			Scan(&rows).Error; err != nil {
			return nil, err
		}
		return listResult{Rows: rows, Total: total}, nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rekap kehadiran")
	}

	res := cached.(listResult)
	return helper.JsonList(c, "Rekap kehadiran", res.Rows, helper.BuildPaginationFromPage(res.Total, p.Page, p.PerPage))
}

// GET /api/a/attendance/summary?date=YYYY-MM-DD
func (ctrl *AttendanceRecordController) DailySummary(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().UTC().Format("2006-01-02")
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}

	cacheKey := fmt.Sprintf("attendance:summary:%s:%s", schoolID, dateStr)
	cached, err := helper.CacheRemember(cacheKey, 2*time.Minute, func() (any, error) {
		type statusCount struct {
			Status string
			Count  int64
		}
		var counts []statusCount
		if err := ctrl.DB.Model(&recModel.AttendanceRecordModel{}).
			Select("attendance_record_status AS status, COUNT(*) AS count").
			Where("attendance_record_school_id = ? AND attendance_record_date = ?", schoolID, date).
			Group("attendance_record_status").
			Scan(&counts).Error; err != nil {
			return nil, err
		}

		summary := recDTO.DailySummary{Date: date, ByStatus: map[string]int64{}}
		for _, sc := range counts {
			summary.ByStatus[sc.Status] = sc.Count
			summary.Total += sc.Count
		}
		return summary, nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung ringkasan")
	}

	return helper.JsonOK(c, "Ringkasan kehadiran", cached)
}

// GET /api/u/attendance/me?month=YYYY-MM
//
// Riwayat bulan berjalan milik user login sendiri. Tanpa cache: per-user,
// hit ratio kecil.
func (ctrl *AttendanceRecordController) MyMonth(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().UTC().Format("2006-01")
	}
	monthStart, err := time.ParseInLocation("2006-01", monthStr, time.UTC)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format bulan harus YYYY-MM")
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	var rows []recModel.AttendanceRecordModel
	if err := ctrl.DB.
		Where("attendance_record_user_id = ? AND attendance_record_school_id = ?", userID, schoolID).
		Where("attendance_record_date >= ? AND attendance_record_date < ?", monthStart, monthEnd).
		Order("attendance_record_date ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil riwayat kehadiran")
	}

	resp := make([]recDTO.AttendanceRecordResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, recDTO.FromAttendanceRecordModel(r))
	}
	return helper.JsonOK(c, "Riwayat kehadiran", resp)
}
