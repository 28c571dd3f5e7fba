package services

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dashboardhq/auth-service/internal/config"
	"github.com/dashboardhq/auth-service/internal/middleware"
)

// JWTService mints stateless session tokens. Validity is fully decided
// by signature and expiry; there is no revocation list.
type JWTService interface {
	GenerateSessionToken(userID uuid.UUID) (string, error)
}

type jwtService struct {
	privateKey *rsa.PrivateKey
	tokenTTL   time.Duration
}

func NewJWTService(cfg *config.Config) JWTService {
	return &jwtService{
		privateKey: cfg.RSAPrivateKey,
		tokenTTL:   cfg.SessionTokenTTL,
	}
}

func (j *jwtService) GenerateSessionToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": middleware.TokenIssuer,
		"sub": userID.String(),
		"exp": now.Add(j.tokenTTL).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}
