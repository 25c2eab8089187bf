package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported ledger backends.
const (
	BackendMemory   = "memory"
	BackendPebble   = "pebble"
	BackendPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port               string
	IsProduction       bool
	LogLevel           string
	LedgerBackend      string
	DatabaseURL        string
	EnableDBCheck      bool
	MigrationsPath     string
	PebbleDir          string
	JWTSecret          string
	JWTIssuer          string
	RateLimit          string
	CORSAllowedOrigins []string
	OwnerEncoding      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LEDGER_BACKEND", BackendMemory)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PEBBLE_DIR", "./data/ledger")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "exchange-ledger")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("OWNER_ENCODING", "base64")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		LogLevel:       strings.ToLower(viper.GetString("LOG_LEVEL")),
		LedgerBackend:  strings.ToLower(viper.GetString("LEDGER_BACKEND")),
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		PebbleDir:      viper.GetString("PEBBLE_DIR"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		JWTIssuer:      viper.GetString("JWT_ISSUER"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		OwnerEncoding:  strings.ToLower(viper.GetString("OWNER_ENCODING")),
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	switch cfg.LedgerBackend {
	case BackendMemory, BackendPebble:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("LEDGER_BACKEND=%s requires PGSQL_URL", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown LEDGER_BACKEND %q", cfg.LedgerBackend)
	}

	if cfg.LedgerBackend == BackendMemory {
		log.Println("Warning: LEDGER_BACKEND is memory. Nothing survives a restart.")
	}

	return cfg, nil
}
