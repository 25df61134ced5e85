// file: internals/helpers/civil_date.go
package helper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Organisasi beroperasi di satu zona sipil tetap per sekolah (offset menit dari
// UTC, contoh WIB = 420). Semua aritmetika tanggal sipil lewat helper ini
// supaya gampang di-upgrade ke timezone-aware tanpa menyentuh call site.

// CivilDateOf mengembalikan tanggal sipil (midnight UTC) dari sebuah instant
// setelah menerapkan offset tetap.
func CivilDateOf(t time.Time, offsetMinutes int) time.Time {
	local := t.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// LocalClock mengembalikan "jam dinding" lokal dari sebuah instant (naive,
// ber-tag UTC) setelah menerapkan offset tetap.
func LocalClock(t time.Time, offsetMinutes int) time.Time {
	return t.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
}

// CombineDateTime menempelkan jam "HH:MM" ke sebuah tanggal sipil.
func CombineDateTime(date time.Time, hhmm string) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("format jam tidak valid: %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, fmt.Errorf("format jam tidak valid: %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("format jam tidak valid: %q", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, time.UTC), nil
}

// NormalizeToDate memindahkan jam-menit-detik sebuah waktu ke tanggal sipil
// lain (dipakai finalizer: jam check-in dinormalkan ke tanggal record).
func NormalizeToDate(t time.Time, date time.Time) time.Time {
	h, m, s := t.Clock()
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, time.UTC)
}
