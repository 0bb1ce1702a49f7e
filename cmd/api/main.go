package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"swasthya-admin/internal/config"
	"swasthya-admin/internal/handler"
	"swasthya-admin/internal/middleware"
	"swasthya-admin/internal/pkg/logger"
	"swasthya-admin/internal/repository"
	"swasthya-admin/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zlog := logger.New(cfg.Environment)
	defer func() { _ = zlog.Sync() }()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		zlog.Warn("failed to connect to MinIO, icon upload disabled", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, zlog, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Subscriber-facing reads; the mobile gateway terminates end-user auth
	// before traffic reaches these.
	public := v1.Group("/algorithms/:vertical")
	public.Get("/trees", h.Algorithm.GetAllTrees)
	public.Get("/nodes/:nodeId", h.Algorithm.GetTree)
	public.Get("/visible-roots/:subscriberId", h.Algorithm.GetVisibleRoots)

	admin := v1.Group("/admin", middleware.AdminRequired(cfg.JWTSecret))

	algorithms := admin.Group("/algorithms/:vertical")
	algorithms.Get("/roots", h.Algorithm.ListRoots)
	algorithms.Get("/nodes", h.Algorithm.ListNodes)
	algorithms.Post("/nodes", h.Algorithm.CreateNode)
	algorithms.Get("/nodes/:nodeId", h.Algorithm.GetNode)
	algorithms.Put("/nodes/:nodeId", h.Algorithm.UpdateNode)
	algorithms.Patch("/nodes/:nodeId/activated", h.Algorithm.SetActivated)
	algorithms.Delete("/nodes/:nodeId", h.Algorithm.DeleteNode)
	algorithms.Post("/nodes/:nodeId/notify", h.Algorithm.Notify)

	notifications := admin.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/:id", h.Notification.Get)

	media := admin.Group("/media")
	media.Post("/icons", h.Media.UploadIcon)
}
