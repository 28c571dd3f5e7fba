package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/dashboardhq/auth-service/internal/config"
	"github.com/dashboardhq/auth-service/internal/dtos"
	"github.com/dashboardhq/auth-service/internal/models"
	"github.com/dashboardhq/auth-service/internal/repositories"
	"github.com/dashboardhq/auth-service/internal/utils"
)

// AuthService orchestrates the email-OTP flow: signup, login, resend,
// verification and session token issuance.
type AuthService interface {
	Register(ctx context.Context, req dtos.SignupRequest) error
	Login(ctx context.Context, email string) error
	ResendOTP(ctx context.Context, email string) error

	// VerifyOTP returns a 24h session token on success.
	VerifyOTP(ctx context.Context, email, otp string) (string, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	mailer   MailerService
	jwt      JWTService

	Cfg *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	mailer MailerService,
	jwt JWTService,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo: userRepo,
		mailer:   mailer,
		jwt:      jwt,
		Cfg:      cfg,
	}
}

// ---------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------
func (s *authService) Register(ctx context.Context, req dtos.SignupRequest) error {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing != nil {
		return utils.ErrEmailExists
	}

	code, expiresAt, err := generateOTP(s.Cfg.OTPExpiry)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		OTP:       &code,
		OTPExpiry: &expiresAt,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	if sendErr := s.mailer.SendOTPEmail(ctx, user.Email, user.Name, code, OTPKindSignup); sendErr != nil {
		// Roll back the half-registered account so the user can retry
		// signup from scratch.
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			utils.Logger.WithError(delErr).Errorf("Failed to roll back user %s after mail failure", user.ID)
		}
		return sendErr
	}
	return nil
}

// ---------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------
func (s *authService) Login(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || user == nil {
		if err == nil || errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrUserNotFound
		}
		return err
	}

	if !user.EmailVerified {
		// No code for unverified accounts; the client is expected to
		// redirect to signup completion instead.
		return utils.ErrEmailNotVerified
	}

	return s.issueCode(ctx, user, OTPKindLogin)
}

// ---------------------------------------------------------------------
// ResendOTP
// ---------------------------------------------------------------------
func (s *authService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || user == nil {
		if err == nil || errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrUserNotFound
		}
		return err
	}

	// Unlike Login, resend hands out codes to unverified accounts too;
	// the same endpoint serves signup and login retries.
	return s.issueCode(ctx, user, OTPKindResend)
}

// issueCode overwrites any pending code with a fresh one and mails it.
// The account is never rolled back here; it existed before this call.
func (s *authService) issueCode(ctx context.Context, user *models.User, kind OTPKind) error {
	code, expiresAt, err := generateOTP(s.Cfg.OTPExpiry)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(ctx, user.ID, code, expiresAt); err != nil {
		return err
	}
	return s.mailer.SendOTPEmail(ctx, user.Email, user.Name, code, kind)
}

// ---------------------------------------------------------------------
// VerifyOTP
// ---------------------------------------------------------------------
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || user == nil {
		if err == nil || errors.Is(err, pgx.ErrNoRows) {
			return "", utils.ErrUserNotFound
		}
		return "", err
	}

	// Exact string equality against the last-issued code; a consumed
	// (nil) code fails the same way as a wrong one.
	if user.OTP == nil || *user.OTP != otp {
		return "", utils.ErrInvalidOTP
	}
	if user.OTPExpiry != nil && user.OTPExpiry.Before(time.Now()) {
		return "", utils.ErrOTPExpired
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return "", err
	}

	// TODO: decouple welcome-mail delivery from the verify result. The
	// account is already persisted as verified at this point, so a 500
	// here leaves a retrying client staring at "invalid otp".
	if sendErr := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name); sendErr != nil {
		return "", sendErr
	}

	token, err := s.jwt.GenerateSessionToken(user.ID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to generate session token after verification")
		return "", err
	}
	return token, nil
}

// ---------------------------------------------------------------------
// GetProfile
// ---------------------------------------------------------------------
func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
