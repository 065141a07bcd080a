package dto

import "time"

type DeviceRequest struct {
	IP string `json:"ip"`
	UA string `json:"ua"`
}

type SessionResponse struct {
	DeviceID          string     `json:"deviceId"`
	IP                string     `json:"ip"`
	UA                string     `json:"ua"`
	IssuedAt          time.Time  `json:"issuedAt"`
	LastUsedAt        *time.Time `json:"lastUsedAt,omitempty"`
	IdleExpiresAt     time.Time  `json:"idleExpiresAt"`
	AbsoluteExpiresAt time.Time  `json:"absoluteExpiresAt"`
}
