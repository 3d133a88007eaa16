package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableside/internal/admin"
	"tableside/internal/assistant"
	"tableside/internal/catalog"
	"tableside/internal/config"
	"tableside/internal/database"
	"tableside/internal/handler"
	"tableside/internal/kitchen"
	"tableside/internal/notify"
	"tableside/internal/repository"
	"tableside/internal/router"
	"tableside/internal/service"
	"tableside/internal/session"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting tableside API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// S3 client is shared by the menu loader and the export publisher.
	var s3Client *s3.Client
	if cfg.S3.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to load AWS configuration, falling back to local file system only")
		} else {
			s3Client = s3.NewFromConfig(awsCfg)
		}
	}

	doc, err := loadMenu(ctx, cfg, s3Client, logger)
	if err != nil {
		return err
	}
	menu, err := catalog.New(doc)
	if err != nil {
		return fmt.Errorf("failed to build catalogue: %w", err)
	}
	logger.Info().
		Str("restaurant", doc.Restaurant.Name).
		Int("items", len(menu.Available())).
		Msg("menu loaded")

	pool, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	orderRepo := repository.NewOrderRepository(pool, logger)
	complaintRepo := repository.NewComplaintRepository(pool, logger)
	billRepo := repository.NewBillRepository(pool, logger)

	publisher, err := newKitchenPublisher(cfg.Kitchen, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close kitchen publisher")
		}
	}()

	notifier, err := newNotifier(cfg.Telegram, logger)
	if err != nil {
		return err
	}

	gate, err := admin.NewGate(cfg.Admin.Password, cfg.Admin.PasswordHash, cfg.Admin.TokenTTL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize admin gate: %w", err)
	}
	var menuPublisher admin.Publisher
	if s3Client != nil {
		menuPublisher = admin.NewS3Publisher(s3Client, cfg.S3.Bucket, cfg.S3.Prefix, logger)
	}

	store := session.NewStore(cfg.Session.TTL, logger)
	go store.Run(ctx, cfg.Session.SweepInterval)

	// Initialize services
	menuService := service.NewMenuService(menu)
	sessionService := service.NewSessionService(store, menu, service.RandomPoints, logger)
	orderService := service.NewOrderService(store, orderRepo, publisher, logger)
	complaintService := service.NewComplaintService(store, complaintRepo, notifier, logger)
	billService := service.NewBillService(store, billRepo, notifier, menu.Currency(), logger)
	assistantService := service.NewAssistantService(store, assistant.New(menu), logger)
	adminService := service.NewAdminService(gate, admin.NewEditor(menu.Document()), menuPublisher, logger)

	mux := router.New(router.Handlers{
		Menu:      handler.NewMenuHandler(menuService, logger),
		Session:   handler.NewSessionHandler(sessionService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Staff:     handler.NewStaffHandler(complaintService, billService, logger),
		Assistant: handler.NewAssistantHandler(assistantService, logger),
		Admin:     handler.NewAdminHandler(adminService, logger),
	}, adminService, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadMenu reads the menu document from S3 when configured, falling back to
// the bundled file.
func loadMenu(ctx context.Context, cfg *config.Config, client *s3.Client, logger zerolog.Logger) (catalog.Document, error) {
	fileLoader := catalog.NewFileLoader(logger)

	var s3Loader catalog.Loader
	if client != nil {
		s3Loader = catalog.NewS3Loader(client, cfg.S3.Bucket, logger)
	} else {
		logger.Info().Msg("using local file system for the menu (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, client != nil, logger)
	doc, err := loader.Load(ctx, cfg.Menu.File)
	if err != nil {
		return catalog.Document{}, fmt.Errorf("failed to load menu: %w", err)
	}
	return doc, nil
}

func newKitchenPublisher(cfg config.KitchenConfig, logger zerolog.Logger) (kitchen.Publisher, error) {
	if !cfg.Enabled {
		logger.Info().Msg("kitchen queue disabled, tickets are logged only")
		return kitchen.NewLogPublisher(logger), nil
	}
	p, err := kitchen.NewAMQPPublisher(cfg.URL, cfg.Queue, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to kitchen queue: %w", err)
	}
	return p, nil
}

func newNotifier(cfg config.TelegramConfig, logger zerolog.Logger) (notify.Notifier, error) {
	if !cfg.Enabled {
		return notify.NewLogNotifier(logger), nil
	}
	n, err := notify.NewTelegramNotifier(cfg.Token, cfg.ChatID, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
	}
	return n, nil
}
