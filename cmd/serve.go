package cmd

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"

	"os/signal"
	"syscall"

	config "flowlancer.com/flowlancer/internal/configs"
	httpapi "flowlancer.com/flowlancer/internal/http"
	"flowlancer.com/flowlancer/internal/locks"
	repository "flowlancer.com/flowlancer/internal/repositories"
	"flowlancer.com/flowlancer/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the Flowlancer project, time-tracking and invoicing API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		var redisClient rueidis.Client
		if cfg.RedisAddr != "" {
			redisClient = config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
		} else {
			log.Println("REDIS_HOST not set, rate limiting and billing locks disabled")
		}

		projectRepo := repository.NewProjectRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		timeEntryRepo := repository.NewTimeEntryRepository(database)
		invoiceRepo := repository.NewInvoiceRepository(database)

		var locker locks.ProjectLocker = locks.NoopLocker{}
		if redisClient != nil {
			locker = locks.NewRedisProjectLocker(
				redisClient,
				time.Duration(cfg.BillingLockTTLSeconds)*time.Second,
			)
		}

		timeService := services.NewTimeService(timeEntryRepo, taskRepo, cfg.SummaryIncludeRunning)
		projectService := services.NewProjectService(projectRepo, taskRepo, invoiceRepo, timeService)
		taskService := services.NewTaskService(projectRepo, taskRepo)
		invoiceService := services.NewInvoiceService(projectRepo, taskRepo, invoiceRepo, timeService, locker)
		dashboardService := services.NewDashboardService(projectRepo, taskRepo, timeService)

		e := echo.New()
		handler := httpapi.NewHandler(projectService, taskService, timeService, invoiceService, dashboardService)
		httpapi.Register(e, handler, redisClient, cfg.RateLimit, cfg.InvoiceRateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
