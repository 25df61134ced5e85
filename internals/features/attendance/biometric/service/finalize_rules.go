// file: internals/features/attendance/biometric/service/finalize_rules.go
package service

import (
	"time"

	recordModel "edubreezy_backend/internals/features/attendance/attendance_records/model"
	helper "edubreezy_backend/internals/helpers"
)

/* ===============================
   Aturan bisnis finalisasi (pure)
=============================== */

type FinalizeInput struct {
	// Tanggal sipil record (midnight UTC)
	Date time.Time
	// Jam masuk sebagai jam dinding lokal (hasil helper.LocalClock)
	CheckInLocal time.Time
	// Jam kerja terhitung saat check-out; nil bila belum ada check-out
	WorkingHours *float64

	StartTime    string // "HH:MM" dari AttendanceConfig
	GraceMin     int
	HalfDayHours float64
}

type FinalizeOutcome struct {
	Status        recordModel.AttendanceStatus
	IsLate        bool
	LateByMinutes int
}

// ComputeFinalStatus menerapkan aturan bisnis akhir hari ke satu record.
//
// Keterlambatan: check-in TEPAT di start+grace belum telat; satu detik
// setelahnya telat. lateByMinutes = floor((checkIn − start) / 60s) saat telat.
//
// Urutan precedence status (mutually exclusive, JANGAN diubah):
//  1. 0 < jam kerja < ambang half-day  → HALF_DAY
//  2. telat lebih dari 2× grace        → LATE
//  3. sisanya                          → PRESENT
//
// Catatan: precedence ini berarti kondisi half-day menang atas kondisi telat
// pada record yang sama. Ide "telat banget ⇒ half-day" yang pernah dibahas
// tidak pernah masuk ke rantai ini; ini pilihan desain yang dipertahankan,
// bukan bug.
func ComputeFinalStatus(in FinalizeInput) (FinalizeOutcome, error) {
	schedStart, err := helper.CombineDateTime(in.Date, in.StartTime)
	if err != nil {
		return FinalizeOutcome{}, err
	}

	grace := time.Duration(in.GraceMin) * time.Minute
	checkIn := helper.NormalizeToDate(in.CheckInLocal, in.Date)

	out := FinalizeOutcome{Status: recordModel.AttendancePresent}
	if checkIn.After(schedStart.Add(grace)) {
		out.IsLate = true
		out.LateByMinutes = int(checkIn.Sub(schedStart) / time.Minute)
	}

	switch {
	case in.WorkingHours != nil && *in.WorkingHours > 0 && *in.WorkingHours < in.HalfDayHours:
		out.Status = recordModel.AttendanceHalfDay
	case out.IsLate && out.LateByMinutes > 2*in.GraceMin:
		out.Status = recordModel.AttendanceLate
	default:
		out.Status = recordModel.AttendancePresent
	}
	return out, nil
}
