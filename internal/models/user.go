package models

import (
	"time"

	"github.com/google/uuid"
)

// User is one registered dashboard account, keyed by unique email.
// OTP and OTPExpiry are both nil or both set: a code is pending exactly
// when a signup/login/resend issued one and it has not been consumed.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"email_verified"`
	OTP           *string    `json:"-"`
	OTPExpiry     *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (u *User) GetID() string {
	return u.ID.String()
}
