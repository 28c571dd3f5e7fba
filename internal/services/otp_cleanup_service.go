package services

import (
	"context"

	"github.com/dashboardhq/auth-service/internal/repositories"
	"github.com/dashboardhq/auth-service/internal/utils"
)

// OTPCleanupService purges codes whose expiry has passed. Only the
// latest code per account is ever valid, so an expired one is pure
// table noise.
type OTPCleanupService interface {
	CleanupDaily(ctx context.Context) error
}

type otpCleanupService struct {
	userRepo repositories.UserRepository
}

func NewOTPCleanupService(userRepo repositories.UserRepository) OTPCleanupService {
	return &otpCleanupService{userRepo: userRepo}
}

func (s *otpCleanupService) CleanupDaily(ctx context.Context) error {
	if err := s.userRepo.CleanupExpiredOTPs(ctx); err != nil {
		utils.Logger.WithError(err).Error("Failed to cleanup expired OTPs")
		return err
	}
	utils.Logger.Info("Daily OTP cleanup completed successfully.")
	return nil
}
