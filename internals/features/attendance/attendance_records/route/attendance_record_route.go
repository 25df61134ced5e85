// internals/features/attendance/attendance_records/route/attendance_record_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	recController "edubreezy_backend/internals/features/attendance/attendance_records/controller"
)

// AttendanceAdminRoutes: view rekap untuk group /api/a
func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := recController.NewAttendanceRecordController(db)

	att := admin.Group("/attendance")
	att.Get("/records", ctrl.ListByDate)
	att.Get("/summary", ctrl.DailySummary)
}

// AttendanceUserRoutes: riwayat pribadi untuk group /api/u
func AttendanceUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := recController.NewAttendanceRecordController(db)

	att := user.Group("/attendance")
	att.Get("/me", ctrl.MyMonth)
}
