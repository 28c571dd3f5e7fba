package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dashboardhq/auth-service/internal/config"
	"github.com/dashboardhq/auth-service/internal/middleware"
)

func TestGenerateSessionTokenClaims(t *testing.T) {
	cfg := &config.Config{
		SessionTokenTTL: config.DefaultSessionTokenTTL,
		RSAPrivateKey:   testRSAKey,
		RSAPublicKey:    &testRSAKey.PublicKey,
	}
	svc := NewJWTService(cfg)

	userID := uuid.New()
	tokenStr, err := svc.GenerateSessionToken(userID)
	require.NoError(t, err)

	tok, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		require.IsType(t, &jwt.SigningMethodRSA{}, token.Method)
		return cfg.RSAPublicKey, nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, middleware.TokenIssuer, claims["iss"])
	require.Equal(t, userID.String(), claims["sub"])
	require.NotEmpty(t, claims["jti"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), time.Unix(int64(exp), 0), 5*time.Second)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{
		SessionTokenTTL: config.DefaultSessionTokenTTL,
		RSAPrivateKey:   testRSAKey,
		RSAPublicKey:    &testRSAKey.PublicKey,
	}
	svc := NewJWTService(cfg)

	tokenStr, err := svc.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	tok, err := middleware.ValidateSessionToken(tokenStr, cfg.RSAPublicKey)
	require.NoError(t, err)
	require.True(t, tok.Valid)
}
