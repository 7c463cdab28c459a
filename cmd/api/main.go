package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/anesthesia-api/internal/config"
	"github.com/jwalitptl/anesthesia-api/internal/filestore"
	authHandler "github.com/jwalitptl/anesthesia-api/internal/handler/auth"
	dashboardHandler "github.com/jwalitptl/anesthesia-api/internal/handler/dashboard"
	fileHandler "github.com/jwalitptl/anesthesia-api/internal/handler/file"
	hospitalHandler "github.com/jwalitptl/anesthesia-api/internal/handler/hospital"
	prometheusHandler "github.com/jwalitptl/anesthesia-api/internal/handler/prometheus"
	serviceHandler "github.com/jwalitptl/anesthesia-api/internal/handler/service"
	"github.com/jwalitptl/anesthesia-api/internal/middleware"
	"github.com/jwalitptl/anesthesia-api/internal/repository/postgres"
	"github.com/jwalitptl/anesthesia-api/internal/router"
	authService "github.com/jwalitptl/anesthesia-api/internal/service/auth"
	billingService "github.com/jwalitptl/anesthesia-api/internal/service/billing"
	hospitalService "github.com/jwalitptl/anesthesia-api/internal/service/hospital"
	"github.com/jwalitptl/anesthesia-api/internal/service/report"
	"github.com/jwalitptl/anesthesia-api/pkg/auth"
	"github.com/jwalitptl/anesthesia-api/pkg/logger"
	"github.com/jwalitptl/anesthesia-api/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level})

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	hasher := security.NewBcryptHasher(12)

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := postgres.Seed(ctx, db, hasher); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	// Initialize file storage
	files, err := filestore.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize file storage")
	}

	// Initialize repositories
	practitionerRepo := postgres.NewPractitionerRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)

	// Initialize services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authSvc := authService.NewService(practitionerRepo, jwtSvc, hasher)
	hospitalSvc := hospitalService.NewService(hospitalRepo)
	billingSvc := billingService.NewService(serviceRepo, hospitalRepo, files)
	exporter := report.NewExporter(billingSvc)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Initialize handlers
	promH := prometheusHandler.New()
	authH := authHandler.NewHandler(authSvc)
	hospitalH := hospitalHandler.NewHandler(hospitalSvc)
	serviceH := serviceHandler.NewHandler(billingSvc, exporter)
	dashboardH := dashboardHandler.NewHandler(billingSvc)
	fileH := fileHandler.NewHandler(files)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		authH,
		hospitalH,
		serviceH,
		dashboardH,
		fileH,
		promH,
		router.Config{
			CORS: corsConfig,
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			},
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.Timeout(),
		WriteTimeout: cfg.Server.Timeout(),
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
