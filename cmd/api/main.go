package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"carehome-backend/internal/checker"
	"carehome-backend/internal/config"
	"carehome-backend/internal/handler"
	"carehome-backend/internal/middleware"
	"carehome-backend/internal/repository"
	"carehome-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zapLogger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		zapLogger.Warn("failed to connect to Redis, caching and checker lock disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	complianceChecker := checker.New(&checker.CheckerServices{
		Alert:      services.Alert,
		Resident:   services.Resident,
		FoodFluid:  services.FoodFluid,
		NightCheck: services.NightCheck,
	}, redisClient, cfg, zapLogger)
	go complianceChecker.Run(ctx)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Internal-Key",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	zapLogger.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Scheduler-facing endpoints bypass staff auth behind the internal key.
	internal := v1.Group("/internal", middleware.InternalOnly(cfg.InternalAPIKey))
	internal.Post("/alerts", h.Alert.Create)

	protected := v1.Group("", middleware.AuthRequired(cfg.JWTSecret))

	alerts := protected.Group("/alerts")
	alerts.Get("/", h.Alert.ListForOrganization)
	alerts.Post("/counts", h.Alert.CountsForResidents)
	alerts.Post("/clear", middleware.RequireRole("admin"), h.Alert.ClearAll)
	alerts.Post("/:alertId/resolve", h.Alert.Resolve)

	residents := protected.Group("/residents")
	residents.Post("/", h.Resident.Create)
	residents.Get("/", h.Resident.List)
	residents.Get("/:residentId", h.Resident.Get)

	residents.Get("/:residentId/alerts", h.Alert.ListForResident)
	residents.Get("/:residentId/alerts/counts", h.Alert.CountsForResident)

	residents.Get("/:residentId/food-fluid/check", h.FoodFluid.CheckAlerts)
	residents.Post("/:residentId/food-fluid", h.FoodFluid.CreateLog)
	residents.Get("/:residentId/food-fluid", h.FoodFluid.ListToday)

	residents.Post("/:residentId/night-checks/configurations", h.NightCheck.CreateConfiguration)
	residents.Post("/:residentId/night-checks", h.NightCheck.RecordCheck)
	residents.Get("/:residentId/night-checks", h.NightCheck.ListRecordings)

	residents.Post("/:residentId/medications", h.Medication.CreateIntake)
	residents.Get("/:residentId/medications", h.Medication.ListForResident)
	protected.Patch("/medications/:intakeId/status", h.Medication.UpdateIntakeStatus)
}
