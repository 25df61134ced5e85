package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEventHash(t *testing.T) {
	at := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	devA := uuid.New()
	devB := uuid.New()

	h1 := EventHash(devA, "1024", at)
	assert.Len(t, h1, 64)

	// Deterministik: laporan ulang punch yang sama → hash sama
	assert.Equal(t, h1, EventHash(devA, "1024", at))

	// Instant yang sama di zona lain tetap satu punch
	jakarta := time.FixedZone("WIB", 7*3600)
	assert.Equal(t, h1, EventHash(devA, "1024", at.In(jakarta)))

	// Komponen mana pun berubah → hash beda. Device lain (walau kodenya sama
	// di sekolah lain) harus menghasilkan hash sendiri.
	assert.NotEqual(t, h1, EventHash(devB, "1024", at))
	assert.NotEqual(t, h1, EventHash(devA, "1025", at))
	assert.NotEqual(t, h1, EventHash(devA, "1024", at.Add(time.Second)))

	// Sub-detik dibuang: dua pembacaan dalam detik yang sama itu duplikat
	assert.Equal(t, h1, EventHash(devA, "1024", at.Add(300*time.Millisecond)))
}
