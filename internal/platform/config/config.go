package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool
	StorageDriver string
	JWTSecret     string // empty disables bearer auth
	RateLimit     string // ulule formatted, e.g. "100-M"; empty disables
	CORSOrigins   []string

	Ledger LedgerConfig
}

// LedgerConfig holds the defaults applied to ledger inputs that omit optional fields.
type LedgerConfig struct {
	DefaultDomain    string
	DefaultLanguage  string
	DefaultCurrency  string
	CurrencyDecimals int32
	ReviewedDefault  bool
}

// LoadConfig loads configuration from environment variables, a .env file if present,
// and the YAML/JSON/TOML file named by CONFIG_FILE.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LEDGER_DOMAIN_DEFAULT", "GJ")
	v.SetDefault("LEDGER_LANGUAGE_DEFAULT", "en")
	v.SetDefault("LEDGER_CURRENCY_DEFAULT", "USD")
	v.SetDefault("LEDGER_CURRENCY_DECIMALS", 2)
	v.SetDefault("LEDGER_ENTRY_REVIEWED_DEFAULT", false)

	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		JWTSecret:     v.GetString("JWT_SECRET"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
		Ledger: LedgerConfig{
			DefaultDomain:    v.GetString("LEDGER_DOMAIN_DEFAULT"),
			DefaultLanguage:  v.GetString("LEDGER_LANGUAGE_DEFAULT"),
			DefaultCurrency:  strings.ToUpper(v.GetString("LEDGER_CURRENCY_DEFAULT")),
			CurrencyDecimals: v.GetInt32("LEDGER_CURRENCY_DECIMALS"),
			ReviewedDefault:  v.GetBool("LEDGER_ENTRY_REVIEWED_DEFAULT"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			slog.Warn("PGSQL_URL environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.Ledger.CurrencyDecimals < 0 {
		return nil, fmt.Errorf("LEDGER_CURRENCY_DECIMALS must not be negative, got %d", cfg.Ledger.CurrencyDecimals)
	}
	if cfg.Ledger.DefaultDomain == "" {
		return nil, fmt.Errorf("LEDGER_DOMAIN_DEFAULT must not be empty")
	}

	if cfg.IsProduction && cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set in production; API is unauthenticated")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
