package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `db:"id"                json:"id"`
	Email           string    `db:"email"             json:"email"`
	Password        string    `db:"password"          json:"-"`
	Role            string    `db:"role"              json:"role"`
	IsActive        bool      `db:"is_active"         json:"isActive"`
	IsEmailVerified bool      `db:"is_email_verified" json:"isEmailVerified"`
	CreatedAt       time.Time `db:"created_at"        json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at"        json:"updatedAt"`
}
