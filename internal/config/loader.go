package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "GODBOT"
	defaultConfigPath = "config/config.yaml"
)

// DefaultStarPlayers are the players whose absence moves a line
var DefaultStarPlayers = []string{
	"LeBron James", "Anthony Davis", "Stephen Curry", "Kevin Durant",
	"Giannis Antetokounmpo", "Nikola Jokic", "Joel Embiid", "Luka Doncic",
	"Jayson Tatum", "Shai Gilgeous-Alexander", "Devin Booker", "Jimmy Butler",
	"Kawhi Leonard", "Damian Lillard", "Donovan Mitchell", "Anthony Edwards",
	"Ja Morant", "Zion Williamson", "Trae Young", "Tyrese Haliburton",
	"Jalen Brunson", "Victor Wembanyama", "De'Aaron Fox", "Paolo Banchero",
}

// LoadDotEnv loads a .env file into the process environment when present
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if len(cfg.Scanner.StarPlayers) == 0 {
		cfg.Scanner.StarPlayers = append([]string(nil), DefaultStarPlayers...)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "godbot")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "godbot")
	v.SetDefault("database.user", "godbot")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "godbot.db")

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.key_prefix", "godbot")

	v.SetDefault("providers.odds_api.base_url", "https://api.the-odds-api.com/v4/sports")
	v.SetDefault("providers.odds_api.sport", "basketball_nba")
	v.SetDefault("providers.odds_api.region", "us")
	v.SetDefault("providers.odds_api.markets", "h2h,spreads,totals")
	v.SetDefault("providers.odds_api.cache_ttl", 300*time.Second)
	v.SetDefault("providers.api_sports.base_url", "https://v2.nba.api-sports.io")
	v.SetDefault("providers.api_sports.season", "2024")
	v.SetDefault("providers.api_sports.cache_ttl", 60*time.Second)
	v.SetDefault("providers.polymarket.base_url", "https://gamma-api.polymarket.com")

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.retry_wait_min", 200*time.Millisecond)
	v.SetDefault("http.retry_wait_max", 5*time.Second)
	v.SetDefault("http.rate_limit", 5.0)
	v.SetDefault("http.circuit_breaker_max", 5)
	v.SetDefault("http.circuit_reset_after", time.Minute)

	v.SetDefault("scanner.sport_label", "NBA")
	v.SetDefault("scanner.star_penalty", 3.0)
	v.SetDefault("scanner.back_to_back_penalty", 3.0)
	v.SetDefault("scanner.spread_threshold", 2.0)
	v.SetDefault("scanner.total_threshold", 5.0)
	v.SetDefault("scanner.total_star_penalty", 1.5)
	v.SetDefault("scanner.total_fatigue_penalty", 1.0)
	v.SetDefault("scanner.moneyline_prob_edge", 0.08)
	v.SetDefault("scanner.moneyline_min_prob", 0.40)

	v.SetDefault("settlement.lookahead_days", 1)

	v.SetDefault("backtest.days", 30)
	v.SetDefault("backtest.seeded", false)

	v.SetDefault("optimizer.iterations", 50)
	v.SetDefault("optimizer.variability", 0.5)
	v.SetDefault("optimizer.window_days", 7)

	v.SetDefault("scheduler.scan_cron", "@every 1h")
	v.SetDefault("scheduler.settle_cron", "@every 6h")
	v.SetDefault("scheduler.stats_cron", "@daily")
	v.SetDefault("scheduler.run_timeout", 10*time.Minute)
	v.SetDefault("scheduler.graceful_timeout", 30*time.Second)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("health.port", 8080)
}
