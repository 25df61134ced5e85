package dto

import (
	"time"

	"github.com/google/uuid"

	model "edubreezy_backend/internals/features/school/schools/model"
)

type SchoolResponse struct {
	SchoolID                uuid.UUID `json:"school_id"`
	SchoolName              string    `json:"school_name"`
	SchoolSlug              string    `json:"school_slug"`
	SchoolTimezoneOffsetMin int       `json:"school_timezone_offset_min"`
	SchoolIsActive          bool      `json:"school_is_active"`
	SchoolCreatedAt         time.Time `json:"school_created_at"`
}

func FromSchoolModel(m model.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:                m.SchoolID,
		SchoolName:              m.SchoolName,
		SchoolSlug:              m.SchoolSlug,
		SchoolTimezoneOffsetMin: m.SchoolTimezoneOffsetMin,
		SchoolIsActive:          m.SchoolIsActive,
		SchoolCreatedAt:         m.SchoolCreatedAt,
	}
}

// AgentKeyResponse: key mentah HANYA muncul di response rotasi ini, setelah
// itu yang tersimpan cuma hash bcrypt.
type AgentKeyResponse struct {
	SchoolID  uuid.UUID `json:"school_id"`
	AgentKey  string    `json:"agent_key"`
	RotatedAt time.Time `json:"rotated_at"`
}
