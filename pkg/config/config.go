package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Polymarket CLOB API
	ClobHost   string
	ChainID    int64
	PrivateKey string
	Funder     string
	APIKey     string
	Secret     string
	Passphrase string

	// Market catalog
	MarketKeywords    []string
	RefreshEveryScans int

	// Arbitrage detection
	ArbThreshold float64
	FeeHaircut   float64

	// Execution
	ExecutionMode  string // "paper" or "live"
	SharesPerTrade float64

	// Scheduler
	ScanInterval  time.Duration
	FaultCooldown time.Duration

	// Capital allocation (sum must be 100)
	ArbPurePercent int
	ArbLagPercent  int

	// Reporting
	DiscordWebhookURL string

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string

	// InvertOutcomeOrder flips the token-index convention (index 0 = NO,
	// index 1 = YES). The upstream API does not document the ordering, so
	// an operator who observes inverted fills can correct it here without
	// a code change.
	InvertOutcomeOrder bool
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// CLOB API defaults
		ClobHost:   getEnvOrDefault("POLYMARKET_CLOB_HOST", "https://clob.polymarket.com"),
		ChainID:    int64(getIntOrDefault("POLYMARKET_CHAIN_ID", 137)), // Polygon mainnet
		PrivateKey: os.Getenv("POLYMARKET_PRIVATE_KEY"),
		Funder:     os.Getenv("POLYMARKET_FUNDER"),
		APIKey:     os.Getenv("POLYMARKET_API_KEY"),
		Secret:     os.Getenv("POLYMARKET_SECRET"),
		Passphrase: os.Getenv("POLYMARKET_PASSPHRASE"),

		// Catalog defaults
		MarketKeywords:    getListOrDefault("MARKET_KEYWORDS", defaultKeywords()),
		RefreshEveryScans: getIntOrDefault("REFRESH_EVERY_SCANS", 50),

		// Arbitrage defaults
		ArbThreshold: getFloat64OrDefault("ARB_THRESHOLD", 0.98),
		FeeHaircut:   getFloat64OrDefault("FEE_HAIRCUT", 0.02),

		// Execution defaults
		ExecutionMode:  getEnvOrDefault("EXECUTION_MODE", "paper"),
		SharesPerTrade: getFloat64OrDefault("SHARES_PER_TRADE", 25.0),

		// Scheduler defaults
		ScanInterval:  getDurationOrDefault("SCAN_INTERVAL", 2*time.Second),
		FaultCooldown: getDurationOrDefault("FAULT_COOLDOWN", 5*time.Second),

		// Allocation defaults
		ArbPurePercent: getIntOrDefault("ARB_PURE_PERCENT", 75),
		ArbLagPercent:  getIntOrDefault("ARB_LAG_PERCENT", 25),

		// Reporting
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "pairbot"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "pairbot123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "pairbot"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),

		InvertOutcomeOrder: getBoolOrDefault("INVERT_OUTCOME_ORDER", false),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid. Validation failures
// here are fatal: the process must not start with a broken configuration.
func (c *Config) Validate() error {
	if c.ExecutionMode != "paper" && c.ExecutionMode != "live" {
		return fmt.Errorf("EXECUTION_MODE must be 'paper' or 'live', got %q", c.ExecutionMode)
	}

	if c.ExecutionMode == "live" && c.PrivateKey == "" {
		return fmt.Errorf("POLYMARKET_PRIVATE_KEY is required in live mode")
	}

	if c.ArbThreshold <= 0 || c.ArbThreshold >= 1.0 {
		return fmt.Errorf("ARB_THRESHOLD must be between 0 and 1.0, got %f", c.ArbThreshold)
	}

	if c.FeeHaircut < 0 || c.FeeHaircut >= 1.0 {
		return fmt.Errorf("FEE_HAIRCUT must be in [0, 1.0), got %f", c.FeeHaircut)
	}

	if c.SharesPerTrade <= 0 {
		return fmt.Errorf("SHARES_PER_TRADE must be positive, got %f", c.SharesPerTrade)
	}

	if c.RefreshEveryScans <= 0 {
		return fmt.Errorf("REFRESH_EVERY_SCANS must be positive, got %d", c.RefreshEveryScans)
	}

	if c.ArbPurePercent+c.ArbLagPercent != 100 {
		return fmt.Errorf("ARB_PURE_PERCENT (%d) + ARB_LAG_PERCENT (%d) must equal 100",
			c.ArbPurePercent, c.ArbLagPercent)
	}

	if len(c.MarketKeywords) == 0 {
		return fmt.Errorf("MARKET_KEYWORDS cannot be empty")
	}

	return nil
}

func defaultKeywords() []string {
	return []string{"15 minute", "bitcoin", "btc", "ethereum", "eth", "solana", "sol", "xrp"}
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolVal
}

func getListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
