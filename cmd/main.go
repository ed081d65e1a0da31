package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/config"
	"github.com/sidjey-y/hellweekcoffee/internal/database"
	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/messaging"
	"github.com/sidjey-y/hellweekcoffee/internal/seed"
	"github.com/sidjey-y/hellweekcoffee/internal/services/analytics"
	"github.com/sidjey-y/hellweekcoffee/internal/services/catalog"
	"github.com/sidjey-y/hellweekcoffee/internal/services/customer"
	"github.com/sidjey-y/hellweekcoffee/internal/services/notification"
	"github.com/sidjey-y/hellweekcoffee/internal/services/pos"
	"github.com/sidjey-y/hellweekcoffee/internal/services/promo"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (pos-server, notification-subscriber, seed)")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "pos-server":
		if err := runPOSServer(ctx, cfg, log); err != nil {
			log.Error("service_failed", "POS server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	case "seed":
		if err := runSeed(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Seeding failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runPOSServer wires the database, messaging and every HTTP surface into
// one server process.
func runPOSServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	catalogStore := catalog.NewStore(db)
	customerStore := customer.NewStore(db)
	orderStore := pos.NewStore(db)
	promoStore := promo.NewStore(db)
	analyticsStore := analytics.NewStore(db)

	catalogService := catalog.NewService(catalogStore, log)
	customerService := customer.NewService(customerStore, log)
	promoService := promo.NewService(promoStore, log)
	analyticsService := analytics.NewService(analyticsStore, log)
	posService := pos.NewService(orderStore, catalogStore, customerService, publisher, log, cfg.Server.CashierName)

	mux := http.NewServeMux()
	pos.NewHandler(posService, log).Register(mux)
	catalog.NewHandler(catalogService, log).Register(mux)
	customer.NewHandler(customerService, log).Register(mux)
	promo.NewHandler(promoService, log).Register(mux)
	analytics.NewHandler(analyticsService, log).Register(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("POS server started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)
	return subscriber.Start(ctx)
}

// runSeed loads the starter catalog and promo codes, then exits.
func runSeed(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	catalogStore := catalog.NewStore(db)
	promoStore := promo.NewStore(db)
	catalogService := catalog.NewService(catalogStore, log)
	promoService := promo.NewService(promoStore, log)

	return seed.New(catalogService, promoService, catalogStore, log).Run(ctx)
}
