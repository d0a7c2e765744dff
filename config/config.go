package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UmangSachdeva/BudgetX/models"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config is everything the server reads from the environment.
type Config struct {
	Port              int
	MongoURI          string
	DBName            string
	StoreDriver       string
	SecretKey         string
	TokenTTL          time.Duration
	BaseCurrency      models.Currency
	RecurringInterval time.Duration
	MaintenanceKey    string
	RabbitMQURL       string
	RabbitMQQueue     string
	CORSOrigins       []string
}

// Getenv lets tests supply the environment.
type Getenv func(string) string

func getOr(getenv Getenv, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func duration(getenv Getenv, key, def string) (time.Duration, error) {
	raw := getOr(getenv, key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

// Load reads the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

func LoadFrom(getenv Getenv) (Config, error) {
	var cfg Config
	var err error

	cfg.Port, err = strconv.Atoi(getOr(getenv, "PORT", "5001"))
	if err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("PORT: invalid port %q", getenv("PORT"))
	}

	cfg.StoreDriver = strings.ToLower(getOr(getenv, "STORE_DRIVER", DriverMongo))
	switch cfg.StoreDriver {
	case DriverMongo, DriverMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER: unknown driver %q", cfg.StoreDriver)
	}
	cfg.MongoURI = getenv("MONGO_URI")
	if cfg.StoreDriver == DriverMongo && cfg.MongoURI == "" {
		return Config{}, errors.New("MONGO_URI not set")
	}
	cfg.DBName = getOr(getenv, "DB_NAME", "budgetx")

	cfg.SecretKey = getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY not set")
	}
	if cfg.TokenTTL, err = duration(getenv, "TOKEN_TTL", "720h"); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTL == 0 {
		return Config{}, errors.New("TOKEN_TTL: must be positive")
	}

	cfg.BaseCurrency = models.Currency(strings.ToUpper(getOr(getenv, "BASE_CURRENCY", string(models.INR))))
	if !cfg.BaseCurrency.Valid() {
		return Config{}, fmt.Errorf("BASE_CURRENCY: unsupported currency %q", cfg.BaseCurrency)
	}
	if cfg.RecurringInterval, err = duration(getenv, "RECURRING_INTERVAL", "1h"); err != nil {
		return Config{}, err
	}

	cfg.MaintenanceKey = getenv("MAINTENANCE_KEY")
	cfg.RabbitMQURL = getenv("RABBITMQ_URL")
	cfg.RabbitMQQueue = getOr(getenv, "RABBITMQ_QUEUE", "budget_alerts")

	for _, o := range strings.Split(getOr(getenv, "CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ConnectToMongo opens a client and pings the primary before returning it.
func ConnectToMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}
