package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/khunmostz/Repair-Management-System/internal/auth"
	"github.com/khunmostz/Repair-Management-System/internal/cache"
	"github.com/khunmostz/Repair-Management-System/internal/config"
	"github.com/khunmostz/Repair-Management-System/internal/database"
	"github.com/khunmostz/Repair-Management-System/internal/db"
	"github.com/khunmostz/Repair-Management-System/internal/handlers"
	"github.com/khunmostz/Repair-Management-System/internal/health"
	h "github.com/khunmostz/Repair-Management-System/internal/http"
	"github.com/khunmostz/Repair-Management-System/internal/middleware"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
	"github.com/khunmostz/Repair-Management-System/internal/services"
	"github.com/khunmostz/Repair-Management-System/internal/storage"
	"github.com/khunmostz/Repair-Management-System/migrations"
)

func newImageStore(cfg *config.Config) (storage.ImageStore, error) {
	if cfg.Uploads.Driver == "s3" {
		return storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:    cfg.Uploads.S3Bucket,
			Endpoint:  cfg.Uploads.S3Endpoint,
			Region:    cfg.Uploads.S3Region,
			AccessKey: cfg.Uploads.S3AccessKey,
			SecretKey: cfg.Uploads.S3SecretKey,
			BaseURL:   cfg.Uploads.S3BaseURL,
		})
	}
	return storage.NewLocalStore(cfg.Uploads.Dir)
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Println("[DB] Connected successfully")

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager and health checker
	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	repairRequestRepo := repositories.NewRepairRequestRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)

	// Initialize services
	encryptionService := services.NewEncryptionService(cfg.Settings.EncryptionKey)
	settingsService := services.NewSettingsService(settingRepo, encryptionService)
	telegramService := services.NewTelegramService(settingsService)
	userService := services.NewUserService(userRepo, jwtManager)
	categoryService := services.NewCategoryService(categoryRepo)
	repairRequestService := services.NewRepairRequestService(repairRequestRepo, telegramService)

	// Seed default settings so the admin screen always has a full document
	if err := settingsService.InitializeDefaultSettings(ctx); err != nil {
		log.Printf("Warning: Failed to initialize default settings: %v", err)
	}

	// Initialize upload storage
	imageStore, err := newImageStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}
	log.Printf("[Uploads] Using %s storage", cfg.Uploads.Driver)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	repairRequestHandler := handlers.NewRepairRequestHandler(repairRequestService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, telegramService)
	uploadHandler := handlers.NewUploadHandler(imageStore)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		repairRequestHandler,
		categoryHandler,
		userHandler,
		settingsHandler,
		uploadHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery, metrics and request logging middleware
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.RequestLogging(
				corsMiddleware(router))))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
