package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one link of a device's rotation chain. Rows are written once
// and afterwards only gain ReplacedBy, LastUsedAt or RevokedAt.
type RefreshToken struct {
	ID                uuid.UUID  `db:"id"                  json:"id"`
	UserID            uuid.UUID  `db:"user_id"             json:"userId"`
	TokenHash         string     `db:"token_hash"          json:"-"`
	DeviceID          string     `db:"device_id"           json:"deviceId"`
	IP                string     `db:"ip"                  json:"ip"`
	UA                string     `db:"user_agent"          json:"ua"`
	IssuedAt          time.Time  `db:"issued_at"           json:"issuedAt"`
	LastUsedAt        *time.Time `db:"last_used_at"        json:"lastUsedAt,omitempty"`
	IdleExpiresAt     time.Time  `db:"idle_expires_at"     json:"idleExpiresAt"`
	AbsoluteExpiresAt time.Time  `db:"absolute_expires_at" json:"absoluteExpiresAt"`
	ReplacedBy        *uuid.UUID `db:"replaced_by"         json:"replacedBy,omitempty"`
	RevokedAt         *time.Time `db:"revoked_at"          json:"revokedAt,omitempty"`
}

// Expired reports whether either deadline has passed at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.IdleExpiresAt) || !now.Before(t.AbsoluteExpiresAt)
}

func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) Replaced() bool {
	return t.ReplacedBy != nil
}

// Device groups the refresh tokens of one logical session.
type Device struct {
	ID     string    `json:"id"`
	UserID uuid.UUID `json:"userId"`
	UA     string    `json:"ua"`
	IP     string    `json:"ip"`
}

// ReuseIncident describes a superseded refresh secret being presented again.
type ReuseIncident struct {
	UserID     uuid.UUID `json:"userId"`
	TokenID    uuid.UUID `json:"tokenId"`
	DeviceIDs  []string  `json:"deviceIds"`
	IP         string    `json:"ip"`
	UA         string    `json:"ua"`
	DetectedAt time.Time `json:"detectedAt"`
}
