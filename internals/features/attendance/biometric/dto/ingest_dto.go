package dto

import (
	"time"
)

/* ===================== REQUESTS (agent → ingestion) ===================== */

// AgentPunchEvent: satu punch yang dilaporkan agent. Validasi field wajib
// dilakukan per-event di controller (event rusak dihitung error, bukan
// menggagalkan batch).
type AgentPunchEvent struct {
	DeviceUserID string     `json:"device_user_id"`
	EventType    string     `json:"event_type"` // check_in | check_out (default check_in)
	EventTime    *time.Time `json:"event_time"`
	CardNo       *string    `json:"card_no,omitempty"`
	RawEventID   *string    `json:"raw_event_id,omitempty"`
}

type IngestBatchRequest struct {
	DeviceID     string            `json:"device_id" validate:"required"`
	AgentVersion *string           `json:"agent_version,omitempty"`
	Events       []AgentPunchEvent `json:"events" validate:"required"`
}

/* ===================== RESPONSES ===================== */

// IngestStats: hasil itemized satu batch. Caller HARUS melihat object ini,
// bukan cuma HTTP status — batch dengan sebagian event gagal tetap 200.
type IngestStats struct {
	Received          int   `json:"received"`
	NewEvents         int   `json:"new_events"`
	Duplicates        int   `json:"duplicates"`
	AttendanceCreated int   `json:"attendance_created"`
	Errors            int   `json:"errors"`
	ExecutionMS       int64 `json:"execution_ms"`
}
