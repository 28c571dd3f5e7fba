package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dashboardhq/auth-service/internal/utils"
)

// Config holds all application configuration, including secrets and flags.
type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	DBUrl            string

	SendGridAPIKey      string
	SendGridFromEmail   string
	SendGridSandboxMode bool

	OTPLength        int
	OTPExpiry        time.Duration
	SessionTokenTTL  time.Duration

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey
}

// Time-based configuration defaults.
const (
	AppName          = "auth-service"
	OrganizationName = "Dashboard"

	OTPLength              = 6
	DefaultOTPExpiry       = 5 * time.Minute
	DefaultSessionTokenTTL = 24 * time.Hour
)

// LoadConfig reads the environment and returns a *Config. Missing
// required values are fatal: the service must not come up half-wired.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	utils.Logger.Debugf("SPA origin allowed for CORS: %s", appUrl)

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	sendGridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendGridAPIKey == "" {
		utils.Logger.Fatal("SENDGRID_API_KEY env var is missing")
	}
	sendGridFromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if sendGridFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL env var is missing")
	}
	sandboxMode, _ := strconv.ParseBool(os.Getenv("SENDGRID_SANDBOX_MODE"))
	if sandboxMode {
		utils.Logger.Info("SendGrid sandbox mode enabled; no mail leaves the building")
	}

	//----------------------------------------------------------------------
	// RSA keypair for session tokens (base64-encoded PEM).
	//----------------------------------------------------------------------
	privateKeyBase64 := os.Getenv("RSA_PRIVATE_KEY_BASE64")
	if privateKeyBase64 == "" {
		utils.Logger.Fatal("RSA_PRIVATE_KEY_BASE64 env var is missing")
	}
	privateKeyPEM, err := base64.StdEncoding.DecodeString(privateKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 private key")
	}
	if block, _ := pem.Decode(privateKeyPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for private key")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyBase64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if publicKeyBase64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	publicKeyPEM, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 public key")
	}
	if block, _ := pem.Decode(publicKeyPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	return &Config{
		OrganizationName:    OrganizationName,
		AppName:             AppName,
		AppPort:             appPort,
		AppUrl:              appUrl,
		DBUrl:               dbUrl,
		SendGridAPIKey:      sendGridAPIKey,
		SendGridFromEmail:   sendGridFromEmail,
		SendGridSandboxMode: sandboxMode,
		OTPLength:           OTPLength,
		OTPExpiry:           DefaultOTPExpiry,
		SessionTokenTTL:     DefaultSessionTokenTTL,
		RSAPrivateKey:       privateKey,
		RSAPublicKey:        publicKey,
	}
}
