package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordModel "edubreezy_backend/internals/features/attendance/attendance_records/model"
)

func finalizeInput(checkIn string, wh *float64) FinalizeInput {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	parsed, _ := time.Parse("15:04:05", checkIn)
	return FinalizeInput{
		Date:         date,
		CheckInLocal: time.Date(2026, 3, 2, parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC),
		WorkingHours: wh,
		StartTime:    "09:00",
		GraceMin:     15,
		HalfDayHours: 4,
	}
}

func f64(v float64) *float64 { return &v }

func TestComputeFinalStatus_OnTime(t *testing.T) {
	out, err := ComputeFinalStatus(finalizeInput("08:55:00", f64(7.5)))
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendancePresent, out.Status)
	assert.False(t, out.IsLate)
	assert.Zero(t, out.LateByMinutes)
}

func TestComputeFinalStatus_GraceBoundary(t *testing.T) {
	// Tepat di akhir grace (09:15:00) → belum telat
	out, err := ComputeFinalStatus(finalizeInput("09:15:00", nil))
	require.NoError(t, err)
	assert.False(t, out.IsLate)
	assert.Equal(t, recordModel.AttendancePresent, out.Status)

	// Satu detik lewat → telat, menit dibulatkan ke bawah
	out, err = ComputeFinalStatus(finalizeInput("09:15:01", nil))
	require.NoError(t, err)
	assert.True(t, out.IsLate)
	assert.Equal(t, 15, out.LateByMinutes)
}

func TestComputeFinalStatus_LateWithinThreshold(t *testing.T) {
	// Telat 16 menit: flag telat nyala tapi 16 ≤ 2×grace → status tetap PRESENT
	out, err := ComputeFinalStatus(finalizeInput("09:16:00", f64(7.0)))
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendancePresent, out.Status)
	assert.True(t, out.IsLate)
	assert.Equal(t, 16, out.LateByMinutes)
}

func TestComputeFinalStatus_LateBeyondThreshold(t *testing.T) {
	// Telat 46 menit > 30 (2×grace) → LATE
	out, err := ComputeFinalStatus(finalizeInput("09:46:00", f64(7.0)))
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceLate, out.Status)
	assert.True(t, out.IsLate)
	assert.Equal(t, 46, out.LateByMinutes)
}

func TestComputeFinalStatus_HalfDay(t *testing.T) {
	// Jam kerja 3.5 < 4 → HALF_DAY
	out, err := ComputeFinalStatus(finalizeInput("09:00:00", f64(3.5)))
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceHalfDay, out.Status)
}

func TestComputeFinalStatus_HalfDayWinsOverLate(t *testing.T) {
	// Telat berat + jam kerja pendek → HALF_DAY menang; flag telat tetap tercatat
	out, err := ComputeFinalStatus(finalizeInput("10:30:00", f64(2.0)))
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceHalfDay, out.Status)
	assert.True(t, out.IsLate)
	assert.Equal(t, 90, out.LateByMinutes)
}

func TestComputeFinalStatus_NoCheckoutNoHalfDay(t *testing.T) {
	// Tanpa jam kerja (belum/tidak check-out) kondisi half-day tidak berlaku
	out, err := ComputeFinalStatus(finalizeInput("09:50:00", nil))
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceLate, out.Status)
}

func TestComputeFinalStatus_ZeroWorkingHours(t *testing.T) {
	// wh == 0 (check-in dan check-out barengan) tidak dianggap half-day
	out, err := ComputeFinalStatus(finalizeInput("09:00:00", f64(0)))
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendancePresent, out.Status)
}

func TestComputeFinalStatus_BadStartTime(t *testing.T) {
	in := finalizeInput("09:00:00", nil)
	in.StartTime = "not-a-time"
	_, err := ComputeFinalStatus(in)
	assert.Error(t, err)
}
