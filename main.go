package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/UmangSachdeva/BudgetX/config"
	"github.com/UmangSachdeva/BudgetX/currency"
	"github.com/UmangSachdeva/BudgetX/events"
	"github.com/UmangSachdeva/BudgetX/handlers"
	"github.com/UmangSachdeva/BudgetX/router"
	"github.com/UmangSachdeva/BudgetX/scheduler"
	"github.com/UmangSachdeva/BudgetX/services"
	"github.com/UmangSachdeva/BudgetX/store"
	"github.com/UmangSachdeva/BudgetX/utils"
)

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("Using in-memory store; data is lost on exit")
		return store.NewMemoryStore(), nil
	}

	client, err := config.ConnectToMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	s := store.NewMongoStore(client, cfg.DBName)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = s.Close(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return s, nil
}

func openPublisher(cfg config.Config) (events.Publisher, error) {
	if cfg.RabbitMQURL == "" {
		log.Println("RABBITMQ_URL not set; budget alerts go to the log")
		return events.LogPublisher{}, nil
	}
	return events.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
}

func run(ctx context.Context) error {
	// Load Env file
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	publisher, err := openPublisher(cfg)
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	defer publisher.Close()

	converter := currency.NewConverter(currency.DefaultRates(), cfg.BaseCurrency)
	users := services.NewUserService(db, utils.NewJWT(cfg.SecretKey, cfg.TokenTTL))
	budgets := services.NewBudgetService(db, db)
	recurring := services.NewRecurringProcessor(db)

	h := handlers.New(handlers.Services{
		Users:        users,
		Transactions: services.NewTransactionService(db, budgets, publisher),
		Budgets:      budgets,
		Analytics:    services.NewAnalyticsService(db, converter),
		Converter:    converter,
		Recurring:    recurring,
	})

	routes := router.New(h, router.Options{
		Auth:           users,
		MaintenanceKey: cfg.MaintenanceKey,
		CORSOrigins:    cfg.CORSOrigins,
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go scheduler.NewRecurring(recurring, cfg.RecurringInterval).Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on port %d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}
