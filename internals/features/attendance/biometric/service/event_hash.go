// file: internals/features/attendance/biometric/service/event_hash.go
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventHash menghitung hash dedup sebuah punch: SHA-256 hex atas
// (id device, device_user_id, unix detik event_time). Pakai UUID device, bukan
// kodenya: kode device hanya unik per sekolah sedangkan index hash-nya global,
// jadi dua sekolah dengan kode device sama tidak boleh saling menabrak. Field
// lain (card_no, raw event id) sengaja tidak ikut: dua laporan punch fisik
// yang sama harus menghasilkan hash yang sama.
func EventHash(deviceID uuid.UUID, deviceUserID string, eventTime time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", deviceID, deviceUserID, eventTime.UTC().Unix())))
	return hex.EncodeToString(sum[:])
}
