package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dashboardhq/auth-service/internal/config"
	"github.com/dashboardhq/auth-service/internal/dtos"
	"github.com/dashboardhq/auth-service/internal/middleware"
	"github.com/dashboardhq/auth-service/internal/services"
	"github.com/dashboardhq/auth-service/internal/utils"
)

type AuthController struct {
	authService services.AuthService
	cfg         *config.Config
}

func NewAuthController(authService services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, cfg: cfg}
}

var validate = validator.New()

// Helper to parse the user ID the auth middleware stored in context.
func getUserIDFromContext(r *http.Request) *uuid.UUID {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return nil
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &parsed
}

// ---------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Email is required", err,
		)
		return
	}

	if err := c.authService.Login(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, utils.ErrUserNotFound):
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", err,
			)
		case errors.Is(err, utils.ErrEmailNotVerified):
			// Deliberately a 200: the account exists, it just has to
			// finish signup verification first.
			utils.RespondWithJSON(w, http.StatusOK, dtos.LoginResponse{
				Success: false,
				Message: "email not verified, verify first",
			})
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to send OTP email", err,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err,
			)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.LoginResponse{
		Success: true,
		Message: "OTP sent to your email",
	})
}

// ---------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req dtos.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Name and email are required", err,
		)
		return
	}

	if err := c.authService.Register(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, utils.ErrEmailExists):
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeConflict, "User already exists", err,
			)
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to send OTP email", err,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err,
			)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.SignupResponse{Success: true})
}

// ---------------------------------------------------------------------
// VerifyOTP
// ---------------------------------------------------------------------
func (c *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dtos.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Email and OTP are required", err,
		)
		return
	}

	token, err := c.authService.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrUserNotFound):
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", err,
			)
		case errors.Is(err, utils.ErrInvalidOTP):
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidOTP, "The OTP provided is invalid", err,
			)
		case errors.Is(err, utils.ErrOTPExpired):
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeOTPExpired, "The OTP has expired. Please request a new one", err,
			)
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to send welcome email", err,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err,
			)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.VerifyOTPResponse{
		Success: true,
		Token:   token,
		Message: "verification successful",
	})
}

// ---------------------------------------------------------------------
// ResendOTP
// ---------------------------------------------------------------------
func (c *AuthController) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req dtos.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Email is required", err,
		)
		return
	}

	if err := c.authService.ResendOTP(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, utils.ErrUserNotFound):
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", err,
			)
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to send OTP email", err,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err,
			)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.ResendOTPResponse{
		Success: true,
		Message: "OTP sent. Please check your email",
	})
}

// ---------------------------------------------------------------------
// GetProfile (behind AuthMiddleware)
// ---------------------------------------------------------------------
func (c *AuthController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject",
		)
		return
	}

	user, err := c.authService.GetProfile(r.Context(), *userID)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", err,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.ProfileResponse{
		Success: true,
		User:    dtos.NewUserProfileFromModel(*user),
	})
}
