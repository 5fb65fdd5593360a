package config

import (
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	invalidConfigPath     = "testdata/invalid_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
	expectedNonNilConfig  = "expected non-nil config"
	godbotName            = "godbot"
	developmentEnv        = "development"
	localhostHost         = "localhost"
	postgresPort          = 5432
	postgresPrefix        = "postgres://"
	testAppName           = "test-app"
	testOddsKey           = "expanded_odds_key"
	testSQLitePath        = "/tmp/godbot-test.db"
	environmentValidation = "development, staging, production"
	storeDriverValidation = "postgres, sqlite"
	cronSpecValidation    = "cron spec"
	logLevelValidation    = "logrus level"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != godbotName {
		t.Errorf("expected app name '%s', got '%s'", godbotName, cfg.App.Name)
	}
	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}
	if cfg.Database.Host != localhostHost {
		t.Errorf("expected database host '%s', got '%s'", localhostHost, cfg.Database.Host)
	}
	if cfg.Database.Port != postgresPort {
		t.Errorf("expected database port %d, got %d", postgresPort, cfg.Database.Port)
	}
	if cfg.Providers.OddsAPI.CacheTTL != 5*time.Minute {
		t.Errorf("expected odds cache ttl 5m, got %s", cfg.Providers.OddsAPI.CacheTTL)
	}
	if cfg.Scheduler.RunTimeout != 10*time.Minute {
		t.Errorf("expected run timeout 10m, got %s", cfg.Scheduler.RunTimeout)
	}
	if len(cfg.Scanner.StarPlayers) != 2 {
		t.Errorf("expected 2 star players, got %d", len(cfg.Scanner.StarPlayers))
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load(nonexistentConfigPath); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("GODBOT_APP_NAME", testAppName)

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadWithDefaultsExpandsPlaceholders tests ${VAR} expansion over defaults
func TestLoadWithDefaultsExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", testOddsKey)
	t.Setenv("TEST_SQLITE_PATH", testSQLitePath)

	cfg, err := LoadWithDefaults(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Providers.OddsAPI.APIKey != testOddsKey {
		t.Errorf("expected odds key '%s', got '%s'", testOddsKey, cfg.Providers.OddsAPI.APIKey)
	}
	if cfg.Store.SQLitePath != testSQLitePath {
		t.Errorf("expected sqlite path '%s', got '%s'", testSQLitePath, cfg.Store.SQLitePath)
	}
	if cfg.Providers.APISports.APIKey != "" {
		t.Errorf("expected missing variable to expand to empty, got '%s'", cfg.Providers.APISports.APIKey)
	}
	if cfg.Providers.OddsAPI.Sport != "basketball_nba" {
		t.Errorf("expected default sport, got '%s'", cfg.Providers.OddsAPI.Sport)
	}
	if cfg.Scheduler.ScanCron != "@every 1h" {
		t.Errorf("expected default scan cron, got '%s'", cfg.Scheduler.ScanCron)
	}
	if len(cfg.Scanner.StarPlayers) != len(DefaultStarPlayers) {
		t.Errorf("expected default star players, got %d", len(cfg.Scanner.StarPlayers))
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults alone form a valid config
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("expected sqlite store by default, got '%s'", cfg.Store.Driver)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

// TestValidateRejectsInvalidValues tests the custom validation tags
func TestValidateRejectsInvalidValues(t *testing.T) {
	cfg, err := LoadWithDefaults(invalidConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{environmentValidation, storeDriverValidation, cronSpecValidation, logLevelValidation} {
		if !strings.Contains(strings.ToLower(msg), strings.ToLower(want)) {
			t.Errorf("expected error to mention %q, got:\n%s", want, msg)
		}
	}
}

// TestValidateCrossField tests cross-field rules
func TestValidateCrossField(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(validConfigPath)
		if err != nil {
			t.Fatalf(expectedNoErrorMsg, err)
		}
		return cfg
	}

	cfg := base()
	cfg.App.Environment = "production"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "SSL") {
		t.Errorf("expected SSL error in production, got %v", err)
	}

	cfg = base()
	cfg.Cache.Driver = "redis"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "redis_addr") {
		t.Errorf("expected redis address error, got %v", err)
	}

	cfg = base()
	cfg.Cache.Driver = "postgres"
	cfg.Store.Driver = "sqlite"
	cfg.Store.SQLitePath = "picks.db"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "postgres store") {
		t.Errorf("expected postgres cache error, got %v", err)
	}

	cfg = base()
	cfg.Backtest.Seed = 0
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "backtest.seed") {
		t.Errorf("expected seed error, got %v", err)
	}

	cfg = base()
	cfg.Database.MaxIdleConnections = 20
	if err := Validate(cfg); err == nil {
		t.Error("expected idle connection error")
	}
}

// TestGetDatabaseDSN tests DSN formatting
func TestGetDatabaseDSN(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	dsn := cfg.GetDatabaseDSN()
	if !strings.HasPrefix(dsn, postgresPrefix) {
		t.Errorf("expected DSN to start with %s, got %s", postgresPrefix, dsn)
	}
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("expected sslmode in DSN, got %s", dsn)
	}
}

// TestSecretsOverlay tests applying a Secrets Manager payload
func TestSecretsOverlay(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	secrets, err := parseSecretData(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"database_password":"db-secret","odds_api_key":"odds-secret","redis_password":"redis-secret"}`),
	})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	overlaySecretsOnConfig(cfg, secrets)

	if cfg.Database.Password != "db-secret" {
		t.Errorf("expected database password overlay, got '%s'", cfg.Database.Password)
	}
	if cfg.Providers.OddsAPI.APIKey != "odds-secret" {
		t.Errorf("expected odds key overlay, got '%s'", cfg.Providers.OddsAPI.APIKey)
	}
	if cfg.Providers.APISports.APIKey != "sports-key" {
		t.Errorf("expected api-sports key untouched, got '%s'", cfg.Providers.APISports.APIKey)
	}
	if cfg.Cache.RedisPassword != "redis-secret" {
		t.Errorf("expected redis password overlay, got '%s'", cfg.Cache.RedisPassword)
	}

	if _, err := parseSecretData(&secretsmanager.GetSecretValueOutput{}); err == nil {
		t.Error("expected error for empty secret")
	}
}
