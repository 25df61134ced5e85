// file: internals/features/attendance/biometric/service/notifier.go
package service

import (
	"log"

	"github.com/google/uuid"
)

// NotificationSender: dispatcher notifikasi yang dikonsumsi pipeline.
// Implementasi produksi menulis feed in-app (fitur notifications); test pakai
// stub. Kegagalan kirim TIDAK boleh menggagalkan pipeline — pemanggil selalu
// membungkus dengan notifySafe.
type NotificationSender interface {
	Send(schoolID uuid.UUID, userIDs []uuid.UUID, title, message string, notifType int, metadata map[string]any) error
}

// notifySafe: kirim notifikasi, error hanya dicatat.
func notifySafe(n NotificationSender, schoolID uuid.UUID, userIDs []uuid.UUID, title, message string, notifType int, metadata map[string]any) {
	if n == nil || len(userIDs) == 0 {
		return
	}
	if err := n.Send(schoolID, userIDs, title, message, notifType, metadata); err != nil {
		log.Printf("[NOTIF] gagal kirim %q ke %d user: %v", title, len(userIDs), err)
	}
}
