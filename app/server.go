package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"enrollment/config"
	"enrollment/metrics"
	"enrollment/middleware"
	"enrollment/services/enrollment/delivery"
	"enrollment/services/enrollment/repository"
	"enrollment/services/enrollment/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTP(cmd.Context())
	},
}

func startHTTP(ctx context.Context) error {
	log.Info("Starting HTTP")

	db, err := config.BootDB()
	if err != nil {
		log.WithError(err).Error("Failed to boot DB")
		return err
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.WithError(err).Error("Error closing DB pool")
		}
		log.Info("DB pool closed")
	}()

	if autoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
		data, err := config.DefaultSeedData()
		if err != nil {
			return err
		}
		if err := config.SeedLookups(ctx, db, data); err != nil {
			return err
		}
	}

	redisClient, err := config.NewRedisClient(ctx)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, lookup cache disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	app := newApp(db, redisClient, metrics.New(nil))

	return serve(ctx, app, config.GetFiberListenAddress())
}

// serve runs app on addr until a signal arrives, ctx ends, or Listen fails.
func serve(ctx context.Context, app *fiber.App, addr string) error {
	var wg sync.WaitGroup
	listenErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on %s", addr)
		if err := app.Listen(addr); err != nil {
			listenErr <- err
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	select {
	case err := <-listenErr:
		log.Errorf("Error starting server: %v", err)
		wg.Wait()
		return fmt.Errorf("http listen: %w", err)
	case <-signalChan:
	case <-ctx.Done():
	}

	log.Info("Shutting down the server...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
	return nil
}

// newApp wires repositories, usecases and handlers onto a fiber app.
func newApp(db *gorm.DB, redisClient *redis.Client, m *metrics.Metrics) *fiber.App {
	app := fiber.New(config.GetFiberConfig())

	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware())
	app.Use(m.Middleware())

	timeout := config.GetUseCaseTimeout()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	lookupCache := repository.NewRedisLookupCache(redisClient)

	// Usecases
	authUC := usecase.NewAuthUseCase(userRepo, timeout)
	lookupUC := usecase.NewLookupUseCase(lookupRepo, lookupCache, config.GetLookupCacheTTL(), timeout)
	registrationUC := usecase.NewRegistrationUseCase(registrationRepo, m, timeout)
	studentUC := usecase.NewStudentUseCase(studentRepo, timeout)

	// Delivery
	delivery.NewAuthDelivery(app, authUC)
	delivery.NewLookupDelivery(app, lookupUC)
	delivery.NewRegistrationDelivery(app, registrationUC, studentUC)
	delivery.NewStudentDelivery(app, studentUC, registrationUC)

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Context())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})
	app.Get("/metrics", m.Handler())

	return app
}
