package controllers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dashboardhq/auth-service/internal/config"
	"github.com/dashboardhq/auth-service/internal/dtos"
	"github.com/dashboardhq/auth-service/internal/middleware"
	"github.com/dashboardhq/auth-service/internal/models"
	"github.com/dashboardhq/auth-service/internal/utils"
)

// ------------------------------------------------------------
// Fake service
// ------------------------------------------------------------

type fakeAuthService struct {
	registerErr error
	loginErr    error
	resendErr   error

	verifyToken string
	verifyErr   error

	profile    *models.User
	profileErr error
}

func (f *fakeAuthService) Register(ctx context.Context, req dtos.SignupRequest) error {
	return f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, email string) error {
	return f.loginErr
}

func (f *fakeAuthService) ResendOTP(ctx context.Context, email string) error {
	return f.resendErr
}

func (f *fakeAuthService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return f.verifyToken, f.verifyErr
}

func (f *fakeAuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return f.profile, f.profileErr
}

func newTestController(svc *fakeAuthService) *AuthController {
	return NewAuthController(svc, &config.Config{OrganizationName: "Dashboard"})
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// ------------------------------------------------------------
// Login
// ------------------------------------------------------------

func TestLoginMissingEmail(t *testing.T) {
	c := newTestController(&fakeAuthService{})
	rec := doJSON(t, c.Login, http.MethodPost, "/login", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestLoginUnknownUser(t *testing.T) {
	c := newTestController(&fakeAuthService{loginErr: utils.ErrUserNotFound})
	rec := doJSON(t, c.Login, http.MethodPost, "/login", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginUnverifiedIsSoftFailure(t *testing.T) {
	c := newTestController(&fakeAuthService{loginErr: utils.ErrEmailNotVerified})
	rec := doJSON(t, c.Login, http.MethodPost, "/login", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, "email not verified, verify first", body["message"])
}

func TestLoginDeliveryFailure(t *testing.T) {
	c := newTestController(&fakeAuthService{loginErr: utils.ErrExternalServiceFailure})
	rec := doJSON(t, c.Login, http.MethodPost, "/login", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	c := newTestController(&fakeAuthService{})
	rec := doJSON(t, c.Login, http.MethodPost, "/login", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, "OTP sent to your email", body["message"])
}

// ------------------------------------------------------------
// Signup
// ------------------------------------------------------------

func TestSignupMissingFields(t *testing.T) {
	c := newTestController(&fakeAuthService{})
	rec := doJSON(t, c.Signup, http.MethodPost, "/signup", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupConflict(t *testing.T) {
	c := newTestController(&fakeAuthService{registerErr: utils.ErrEmailExists})
	rec := doJSON(t, c.Signup, http.MethodPost, "/signup", `{"name":"Alice","email":"a@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, utils.ErrCodeConflict, decodeBody(t, rec)["code"])
}

func TestSignupDeliveryFailure(t *testing.T) {
	c := newTestController(&fakeAuthService{registerErr: utils.ErrExternalServiceFailure})
	rec := doJSON(t, c.Signup, http.MethodPost, "/signup", `{"name":"Alice","email":"a@x.com"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSignupSuccess(t *testing.T) {
	c := newTestController(&fakeAuthService{})
	rec := doJSON(t, c.Signup, http.MethodPost, "/signup", `{"name":"Alice","email":"a@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["success"])
}

// ------------------------------------------------------------
// VerifyOTP
// ------------------------------------------------------------

func TestVerifyOTPInvalidCode(t *testing.T) {
	c := newTestController(&fakeAuthService{verifyErr: utils.ErrInvalidOTP})
	rec := doJSON(t, c.VerifyOTP, http.MethodPost, "/verify-otp", `{"email":"a@x.com","otp":"123456"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, utils.ErrCodeInvalidOTP, decodeBody(t, rec)["code"])
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	c := newTestController(&fakeAuthService{verifyErr: utils.ErrOTPExpired})
	rec := doJSON(t, c.VerifyOTP, http.MethodPost, "/verify-otp", `{"email":"a@x.com","otp":"123456"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, utils.ErrCodeOTPExpired, decodeBody(t, rec)["code"])
}

func TestVerifyOTPUnknownUser(t *testing.T) {
	c := newTestController(&fakeAuthService{verifyErr: utils.ErrUserNotFound})
	rec := doJSON(t, c.VerifyOTP, http.MethodPost, "/verify-otp", `{"email":"a@x.com","otp":"123456"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyOTPSuccessReturnsToken(t *testing.T) {
	c := newTestController(&fakeAuthService{verifyToken: "signed.jwt.token"})
	rec := doJSON(t, c.VerifyOTP, http.MethodPost, "/verify-otp", `{"email":"a@x.com","otp":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, "signed.jwt.token", body["token"])
	require.Equal(t, "verification successful", body["message"])
}

// ------------------------------------------------------------
// ResendOTP
// ------------------------------------------------------------

func TestResendOTPUnknownUser(t *testing.T) {
	c := newTestController(&fakeAuthService{resendErr: utils.ErrUserNotFound})
	rec := doJSON(t, c.ResendOTP, http.MethodPost, "/resend-otp", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResendOTPSuccess(t *testing.T) {
	c := newTestController(&fakeAuthService{})
	rec := doJSON(t, c.ResendOTP, http.MethodPost, "/resend-otp", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["success"])
}

// ------------------------------------------------------------
// GetProfile
// ------------------------------------------------------------

var profileTestKey, _ = rsa.GenerateKey(rand.Reader, 2048)

func sessionTokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": middleware.TokenIssuer,
		"sub": userID.String(),
		"exp": now.Add(24 * time.Hour).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(profileTestKey)
	require.NoError(t, err)
	return tokenStr
}

func TestGetProfileThroughMiddleware(t *testing.T) {
	user := &models.User{
		ID:            uuid.New(),
		Name:          "Alice",
		Email:         "alice@x.com",
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	c := newTestController(&fakeAuthService{profile: user})

	handler := middleware.AuthMiddleware(&profileTestKey.PublicKey)(http.HandlerFunc(c.GetProfile))

	req := httptest.NewRequest(http.MethodGet, "/get-profile", nil)
	req.Header.Set("Authorization", "Bearer "+sessionTokenFor(t, user.ID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])

	profile, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, user.ID.String(), profile["id"])
	require.Equal(t, "Alice", profile["name"])
	require.Equal(t, "alice@x.com", profile["email"])

	// OTP material and the verification flag never leave the service.
	require.NotContains(t, profile, "otp")
	require.NotContains(t, profile, "otp_expiry")
	require.NotContains(t, profile, "email_verified")
}

func TestGetProfileWithoutToken(t *testing.T) {
	c := newTestController(&fakeAuthService{})
	handler := middleware.AuthMiddleware(&profileTestKey.PublicKey)(http.HandlerFunc(c.GetProfile))

	req := httptest.NewRequest(http.MethodGet, "/get-profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProfileUnknownAccount(t *testing.T) {
	c := newTestController(&fakeAuthService{profileErr: utils.ErrUserNotFound})
	handler := middleware.AuthMiddleware(&profileTestKey.PublicKey)(http.HandlerFunc(c.GetProfile))

	req := httptest.NewRequest(http.MethodGet, "/get-profile", nil)
	req.Header.Set("Authorization", "Bearer "+sessionTokenFor(t, uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
