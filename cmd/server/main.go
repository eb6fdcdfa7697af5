package main

import (
	"filevault-backend/config"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filevault-backend/internal/auth"
	"filevault-backend/internal/database"
	"filevault-backend/internal/files"
	"filevault-backend/internal/handlers"
	"filevault-backend/internal/middleware"
	"filevault-backend/internal/repository"
	"filevault-backend/internal/response"
	"filevault-backend/internal/scheduler"
	"filevault-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Configure zerolog based on config
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logLevel, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	output := os.Stdout
	if cfg.Logger.OutputPath != "" {
		file, err := os.OpenFile(cfg.Logger.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			output = file
		}
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
	})
}

func main() {
	cfg := config.Get()

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()

	// Run database migrations after database initialization
	if err := database.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize the blob store
	blobStore, err := storage.NewBlobStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize blob store")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	sessionRepo := repository.NewSessionRepository(database.GetDB())
	blockRepo := repository.NewBlockedTokenRepository(database.GetDB())
	fileRepo := repository.NewFileRepository(database.GetDB())

	// Initialize scheduler with the blocklist cleanup job
	scheduler.Initialize(blockRepo, cfg)
	defer scheduler.Stop()

	// Create new Fiber instance
	app := fiber.New(fiber.Config{
		AppName:      "FileVault API",
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		// Multipart bodies above the upload ceiling are rejected before
		// a handler runs; leave headroom for the multipart framing.
		BodyLimit: int(cfg.Storage.MaxUploadSize) + 64*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Error().Err(err).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Error handling request")

			code := fiber.StatusInternalServerError
			message := "internal server error"
			if e, ok := err.(*fiber.Error); ok {
				// Framework-level errors (route not found, body too
				// large) carry no internal detail and can pass through.
				code = e.Code
				message = e.Message
			}

			return response.Error(c, message, code)
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))

	// Health check routes
	app.Get("/health", healthCheck)
	app.Get("/ready", readinessCheck)

	// Initialize services and handlers
	authService := auth.NewAuthService(userRepo, sessionRepo, blockRepo)
	authHandler := handlers.NewAuthHandler(authService)

	fileService := files.NewFileService(fileRepo, blobStore, cfg.Storage.MaxUploadSize)
	fileHandler := handlers.NewFileHandler(fileService)

	protected := middleware.Protected(blockRepo)

	// Auth routes; signup, signin and new_token bypass the guard
	app.Post("/auth/signup", authHandler.Signup)
	app.Post("/auth/signin", authHandler.Signin)
	app.Post("/auth/new_token", authHandler.NewToken)
	app.Post("/auth/logout", protected, authHandler.Logout)
	app.Get("/auth/info", protected, authHandler.Info)

	// File routes; /file/list must be registered before /file/:id
	app.Post("/file/upload", protected, fileHandler.Upload)
	app.Get("/file/list", protected, fileHandler.List)
	app.Get("/file/download/:id", protected, fileHandler.Download)
	app.Put("/file/update/:id", protected, fileHandler.Update)
	app.Delete("/file/delete/:id", protected, fileHandler.Delete)
	app.Get("/file/:id", protected, fileHandler.Get)

	// Start server in a goroutine
	serverAddr := cfg.Server.Host + ":" + cfg.Server.Port
	go func() {
		if err := app.Listen(serverAddr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
}

// Health check handler
func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// Readiness check handler
func readinessCheck(c *fiber.Ctx) error {
	if database.GetDB() == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}
