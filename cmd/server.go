package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Abraxas-365/shiftboard/pkg/fiberx"
	"github.com/Abraxas-365/shiftboard/pkg/logx"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountapi"
	"github.com/Abraxas-365/shiftboard/recruitment/application/applicationapi"
	"github.com/Abraxas-365/shiftboard/recruitment/dashboard/dashboardapi"
	"github.com/Abraxas-365/shiftboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/shiftboard/recruitment/session/sessionapi"
)

func main() {
	// 1. Load configuration and initialize logger
	cfg, err := LoadConfig()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting Shiftboard API Server...", "db", cfg.DBDriver, "status_mode", cfg.StatusMode)

	// 2. Initialize Dependency Container
	ctx := context.Background()
	container, err := NewContainer(ctx, cfg)
	if err != nil {
		logx.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	// 3. Create Fiber App
	app := fiberx.NewApp("Shiftboard API")

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check and metrics
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status":    "ok",
			"in_flight": container.Simulator.InFlight(),
		}
		if container.DB != nil {
			status["db"] = container.DB.PingContext(c.Context()) == nil
		}
		if container.Redis != nil {
			status["redis"] = container.Redis.Ping(c.Context()).Err() == nil
		}
		return c.JSON(status)
	})
	app.Get("/metrics", adaptor.HTTPHandler(container.Metrics.Handler()))

	// 6. Register Routes

	// Auth and users: /api/auth, /api/users
	accountapi.RegisterRoutes(app, container.AccountHandlers, container.AuthMiddleware)

	// Jobs: /api/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)

	// Applications: /api/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// Session state: /api/session
	sessionapi.RegisterRoutes(app, container.SessionHandlers, container.AuthMiddleware)

	// Admin dashboard: /api/dashboard
	dashboardapi.RegisterRoutes(app, container.DashboardHandlers, container.AuthMiddleware)

	// 7. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}
