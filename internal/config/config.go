// Package config provides configuration management for the godbot pipeline.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Store      StoreConfig      `mapstructure:"store" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Providers  ProvidersConfig  `mapstructure:"providers" validate:"required"`
	HTTP       HTTPConfig       `mapstructure:"http" validate:"required"`
	Scanner    ScannerConfig    `mapstructure:"scanner" validate:"required"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	Optimizer  OptimizerConfig  `mapstructure:"optimizer" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Health     HealthConfig     `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents Postgres connection configuration. Only used
// when the store driver is postgres.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// StoreConfig selects the pick store backend
type StoreConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,storedriver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// CacheConfig selects the team stats cache backend
type CacheConfig struct {
	Driver        string        `mapstructure:"driver" validate:"required,cachedriver"`
	TTL           time.Duration `mapstructure:"ttl" validate:"gte=0"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"gte=0"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
}

// ProvidersConfig groups the external data providers
type ProvidersConfig struct {
	OddsAPI    OddsAPIConfig    `mapstructure:"odds_api"`
	APISports  APISportsConfig  `mapstructure:"api_sports"`
	Polymarket PolymarketConfig `mapstructure:"polymarket"`
}

// OddsAPIConfig configures The Odds API client
type OddsAPIConfig struct {
	BaseURL  string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey   string        `mapstructure:"api_key"`
	Sport    string        `mapstructure:"sport" validate:"required"`
	Region   string        `mapstructure:"region" validate:"required"`
	Markets  string        `mapstructure:"markets"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
}

// APISportsConfig configures the API-Sports client
type APISportsConfig struct {
	BaseURL  string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey   string        `mapstructure:"api_key"`
	Season   string        `mapstructure:"season" validate:"required"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
}

// PolymarketConfig configures the Gamma API client
type PolymarketConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// HTTPConfig configures the shared provider transport
type HTTPConfig struct {
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"gte=0"`
	RetryWaitMin      time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax      time.Duration `mapstructure:"retry_wait_max"`
	RateLimit         float64       `mapstructure:"rate_limit" validate:"gt=0"`
	CircuitBreakerMax int           `mapstructure:"circuit_breaker_max" validate:"gt=0"`
	CircuitResetAfter time.Duration `mapstructure:"circuit_reset_after"`
}

// ScannerConfig tunes the matchup scanner
type ScannerConfig struct {
	SportLabel          string   `mapstructure:"sport_label" validate:"required"`
	StarPlayers         []string `mapstructure:"star_players"`
	StarPenalty         float64  `mapstructure:"star_penalty" validate:"gte=0"`
	BackToBackPenalty   float64  `mapstructure:"back_to_back_penalty" validate:"gte=0"`
	SpreadThreshold     float64  `mapstructure:"spread_threshold" validate:"gt=0"`
	TotalThreshold      float64  `mapstructure:"total_threshold" validate:"gt=0"`
	TotalStarPenalty    float64  `mapstructure:"total_star_penalty" validate:"gte=0"`
	TotalFatiguePenalty float64  `mapstructure:"total_fatigue_penalty" validate:"gte=0"`
	MoneylineProbEdge   float64  `mapstructure:"moneyline_prob_edge" validate:"gt=0,lt=1"`
	MoneylineMinProb    float64  `mapstructure:"moneyline_min_prob" validate:"gt=0,lt=1"`
}

// SettlementConfig tunes settlement
type SettlementConfig struct {
	LookaheadDays int `mapstructure:"lookahead_days" validate:"gte=0"`
}

// BacktestConfig configures simulations
type BacktestConfig struct {
	Days   int   `mapstructure:"days" validate:"gt=0"`
	Seeded bool  `mapstructure:"seeded"`
	Seed   int64 `mapstructure:"seed"`
}

// OptimizerConfig configures the random-search optimizer
type OptimizerConfig struct {
	Iterations  int     `mapstructure:"iterations" validate:"gt=0"`
	Variability float64 `mapstructure:"variability" validate:"gt=0"`
	WindowDays  int     `mapstructure:"window_days" validate:"gt=0"`
}

// SchedulerConfig configures the cron daemon
type SchedulerConfig struct {
	ScanCron        string        `mapstructure:"scan_cron" validate:"required,cronspec"`
	SettleCron      string        `mapstructure:"settle_cron" validate:"required,cronspec"`
	StatsCron       string        `mapstructure:"stats_cron" validate:"required,cronspec"`
	RunTimeout      time.Duration `mapstructure:"run_timeout" validate:"gt=0"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// HealthConfig configures the health server
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
