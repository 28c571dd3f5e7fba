package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/dashboardhq/auth-service/internal/models"
)

// ----------------------
// Requests
// ----------------------

type SignupRequest struct {
	Name  string `json:"name" validate:"required,min=3,max=50"`
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ----------------------
// Responses
// ----------------------

type SignupResponse struct {
	Success bool `json:"success"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VerifyOTPResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type ResendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserProfile is the public projection of a user: no OTP material and
// no verification flag ever leave the service.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	Success bool        `json:"success"`
	User    UserProfile `json:"user"`
}

func NewUserProfileFromModel(u models.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
