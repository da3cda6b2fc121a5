package main

import (
	"context"
	"net/http"

	_ "time/tzdata" // Load timezone data

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/app"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/constants"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/controllers"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/middleware"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/routes"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/services"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

func main() {
	utils.InitLogger(constants.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(application.DB)
	tokenRepo := repositories.NewTokenRepository(application.DB)
	resetRepo := repositories.NewResetTokenRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	favoriteRepo := repositories.NewFavoriteRepository(application.DB)
	analysisRepo := repositories.NewAnalysisRepository(application.DB)
	motivationRepo := repositories.NewMotivationRepository(application.DB)
	revenueRepo := repositories.NewRevenueRepository(application.DB)
	maintenanceRepo := repositories.NewMaintenanceRepository(application.DB)
	activityRepo := repositories.NewActivityLogRepository(application.DB)

	// Services
	emailService := services.NewEmailService(cfg)
	jwtService := services.NewJWTService(cfg, tokenRepo, userRepo)
	authService := services.NewAuthService(cfg, userRepo, resetRepo, jwtService, emailService)
	userService := services.NewUserService(userRepo, favoriteRepo, activityRepo)
	propertyService := services.NewPropertyService(propertyRepo, favoriteRepo)
	analysisService := services.NewAnalysisService(
		cfg, analysisRepo, motivationRepo, revenueRepo, maintenanceRepo,
		activityRepo, userRepo, emailService,
	)
	storageService := services.NewStorageService(context.Background(), cfg)
	cleanupService := services.NewTokenCleanupService(tokenRepo, resetRepo)

	// Controllers
	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService, cfg)
	userController := controllers.NewUserController(userService)
	propertyController := controllers.NewPropertyController(propertyService)
	analysisController := controllers.NewAnalysisController(analysisService)
	uploadController := controllers.NewUploadController(storageService)

	// Nightly token cleanup
	c := cron.New()
	_, schErr := c.AddFunc(constants.TokenCleanupCronSpec, func() {
		if err := cleanupService.CleanupDaily(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("Scheduled token cleanup failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule token cleanup job")
	}
	c.Start()
	defer c.Stop()

	// Router
	router := mux.NewRouter()

	// Health
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc(routes.AuthRegister, authController.Register).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.Login).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthRefresh, authController.Refresh).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogout, authController.Logout).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthForgotPassword, authController.ForgotPassword).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthResetPassword, authController.ResetPassword).Methods(http.MethodPost)

	// Optional-auth routes: public content, richer when signed in
	optional := router.NewRoute().Subrouter()
	optional.Use(middleware.OptionalAuthMiddleware(cfg.RSAPublicKey))

	optional.HandleFunc(routes.AnalysesPublic, analysisController.ListPublic).Methods(http.MethodGet)
	optional.HandleFunc(routes.AnalysisByID, analysisController.GetByID).Methods(http.MethodGet)
	optional.HandleFunc(routes.AnalysisMotivation, analysisController.GetMotivation).Methods(http.MethodGet)
	optional.HandleFunc(routes.AnalysisRevenue, analysisController.GetRevenue).Methods(http.MethodGet)
	optional.HandleFunc(routes.AnalysisMaintenance, analysisController.GetMaintenance).Methods(http.MethodGet)
	optional.HandleFunc(routes.AnalysisSummary, analysisController.Summary).Methods(http.MethodGet)
	optional.HandleFunc(routes.Properties, propertyController.List).Methods(http.MethodGet)
	optional.HandleFunc(routes.PropertyByID, propertyController.GetByID).Methods(http.MethodGet)

	// Protected routes (JWT middleware)
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.AuthChangePassword, authController.ChangePassword).Methods(http.MethodPost)

	secured.HandleFunc(routes.UserProfile, userController.GetProfile).Methods(http.MethodGet)
	secured.HandleFunc(routes.UserProfile, userController.UpdateProfile).Methods(http.MethodPut)
	secured.HandleFunc(routes.UserFavorites, userController.ListFavorites).Methods(http.MethodGet)
	secured.HandleFunc(routes.UserActivity, userController.ListActivity).Methods(http.MethodGet)

	secured.HandleFunc(routes.Properties, propertyController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertiesMine, propertyController.ListMine).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.PropertyByID, propertyController.Delete).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyFavorite, propertyController.ToggleFavorite).Methods(http.MethodPost)

	secured.HandleFunc(routes.Analyses, analysisController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.Analyses, analysisController.ListMine).Methods(http.MethodGet)
	secured.HandleFunc(routes.AnalysisByID, analysisController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.AnalysisByID, analysisController.Delete).Methods(http.MethodDelete)
	secured.HandleFunc(routes.AnalysisFavorite, analysisController.SetFavorite).Methods(http.MethodPost)
	secured.HandleFunc(routes.AnalysisShare, analysisController.Share).Methods(http.MethodPost)

	secured.HandleFunc(routes.AnalysisMotivation, analysisController.SaveMotivation).Methods(http.MethodPut)
	secured.HandleFunc(routes.AnalysisRevenue, analysisController.SaveRevenue).Methods(http.MethodPut)
	secured.HandleFunc(routes.AnalysisMaintenance, analysisController.SaveMaintenance).Methods(http.MethodPut)

	secured.HandleFunc(routes.UploadImage, uploadController.UploadImage).Methods(http.MethodPost)
	secured.HandleFunc(routes.UploadImages, uploadController.UploadImages).Methods(http.MethodPost)
	secured.HandleFunc(routes.UploadDocument, uploadController.UploadDocument).Methods(http.MethodPost)

	// Admin-only routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuthMiddleware(cfg.RSAPublicKey))

	admin.HandleFunc(routes.UploadByKey, uploadController.Delete).Methods(http.MethodDelete)

	// CORS config
	co := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
