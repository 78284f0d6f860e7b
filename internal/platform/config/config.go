package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// StorageDriver selects the persistence adapter.
type StorageDriver string

const (
	StoragePostgres StorageDriver = "postgres"
	StorageMemory   StorageDriver = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver StorageDriver
	JWTSecret     string

	ReferenceCurrency string
	SecondaryCurrency string
	// ExchangeRates maps a currency code to the number of reference units per unit.
	// The reference currency itself is always present with rate 1.
	ExchangeRates map[string]decimal.Decimal

	// RejectToCorrectStages lists the stages whose rejection returns the requisition to its initiator.
	RejectToCorrectStages []string
	BudgetEnforce         bool

	StageTimeout  time.Duration
	SweepInterval time.Duration
	SweepStages   []string

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

// Currencies returns the two supported currencies, reference first.
func (c *Config) Currencies() []string {
	return []string{c.ReferenceCurrency, c.SecondaryCurrency}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", string(StoragePostgres))
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("REFERENCE_CURRENCY", "USD")
	v.SetDefault("SECONDARY_CURRENCY", "CDF")
	v.SetDefault("EXCHANGE_RATES", "CDF=0.00036")
	v.SetDefault("REJECT_TO_CORRECT_STAGES", "")
	v.SetDefault("BUDGET_ENFORCE", false)
	v.SetDefault("STAGE_TIMEOUT", "0s")
	v.SetDefault("SWEEP_INTERVAL", "5m")
	v.SetDefault("SWEEP_STAGES", "analyst,challenger")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:           v.GetString("PGSQL_URL"),
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:         StorageDriver(strings.ToLower(v.GetString("STORAGE_DRIVER"))),
		JWTSecret:             v.GetString("JWT_SECRET"),
		ReferenceCurrency:     strings.ToUpper(strings.TrimSpace(v.GetString("REFERENCE_CURRENCY"))),
		SecondaryCurrency:     strings.ToUpper(strings.TrimSpace(v.GetString("SECONDARY_CURRENCY"))),
		RejectToCorrectStages: splitList(v.GetString("REJECT_TO_CORRECT_STAGES")),
		BudgetEnforce:         v.GetBool("BUDGET_ENFORCE"),
		SweepStages:           splitList(v.GetString("SWEEP_STAGES")),
		RateLimit:             v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:         v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.ReferenceCurrency == "" || cfg.SecondaryCurrency == "" || cfg.ReferenceCurrency == cfg.SecondaryCurrency {
		return nil, fmt.Errorf("REFERENCE_CURRENCY and SECONDARY_CURRENCY must be two distinct codes")
	}

	rates, err := parseRates(v.GetString("EXCHANGE_RATES"))
	if err != nil {
		return nil, err
	}
	rates[cfg.ReferenceCurrency] = decimal.NewFromInt(1)
	if _, ok := rates[cfg.SecondaryCurrency]; !ok {
		return nil, fmt.Errorf("EXCHANGE_RATES has no rate for %s", cfg.SecondaryCurrency)
	}
	cfg.ExchangeRates = rates

	cfg.StageTimeout, err = time.ParseDuration(v.GetString("STAGE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid STAGE_TIMEOUT: %w", err)
	}
	cfg.SweepInterval, err = time.ParseDuration(v.GetString("SWEEP_INTERVAL"))
	if err != nil || cfg.SweepInterval < time.Second {
		cfg.SweepInterval = 5 * time.Minute
		log.Printf("Warning: invalid SWEEP_INTERVAL. Defaulting to %s.\n", cfg.SweepInterval)
	}

	return cfg, nil
}

// parseRates reads "CDF=0.00036,EUR=1.08".
func parseRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, pair := range splitList(raw) {
		code, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid EXCHANGE_RATES entry %q", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || !rate.IsPositive() {
			return nil, fmt.Errorf("invalid rate for %s in EXCHANGE_RATES", code)
		}
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return rates, nil
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
