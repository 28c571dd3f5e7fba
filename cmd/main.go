package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/dashboardhq/auth-service/internal/app"
	"github.com/dashboardhq/auth-service/internal/config"
	"github.com/dashboardhq/auth-service/internal/controllers"
	"github.com/dashboardhq/auth-service/internal/middleware"
	"github.com/dashboardhq/auth-service/internal/repositories"
	"github.com/dashboardhq/auth-service/internal/services"
	"github.com/dashboardhq/auth-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	userRepo := repositories.NewUserRepository(application.DB)

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	mailerService := services.NewMailerService(cfg)
	jwtService := services.NewJWTService(cfg)
	authService := services.NewAuthService(userRepo, mailerService, jwtService, cfg)
	otpCleanupService := services.NewOTPCleanupService(userRepo)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	authController := controllers.NewAuthController(authService, cfg)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	// Public auth endpoints
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/signup", authController.Signup).Methods("POST")
	router.HandleFunc("/verify-otp", authController.VerifyOTP).Methods("POST")
	router.HandleFunc("/resend-otp", authController.ResendOTP).Methods("POST")

	// Protected endpoints require a valid session token
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	protected.HandleFunc("/get-profile", authController.GetProfile).Methods("GET")

	//----------------------------------------------------------------------
	// Setup daily cleanup via cron
	//----------------------------------------------------------------------
	c := cron.New()

	_, schErr := c.AddFunc("0 3 * * *", func() {
		if e := otpCleanupService.CleanupDaily(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled OTP cleanup failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule OTP cleanup job")
	}

	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
