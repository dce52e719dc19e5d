// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// CredentialStorage selects where the encrypted API key is persisted.
type CredentialStorage string

const (
	// CredentialStorageDatabase keeps the key in the active database backend.
	CredentialStorageDatabase CredentialStorage = "database"
	// CredentialStorageLocal keeps the key in a JSON file under the data dir.
	CredentialStorageLocal CredentialStorage = "local"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	dbFileName         = "memos.db"
	credentialFileName = "credentials.json"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string `env:"AIMEMO_LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	DataDir    string `env:"AIMEMO_DATA_DIR"    envDefault:"data"`

	ManagedDB   bool   `env:"AIMEMO_MANAGED_DB"   envDefault:"false"`
	DatabaseURL string `env:"AIMEMO_DATABASE_URL"`

	SecretKey         string            `env:"AIMEMO_SECRET_KEY"         envDefault:"ai-memo-app-secret-key"`
	CredentialStorage CredentialStorage `env:"AIMEMO_CREDENTIAL_STORAGE" envDefault:"database"`

	LLMBaseURL      string        `env:"AIMEMO_LLM_BASE_URL"      envDefault:"https://api.anthropic.com/v1"`
	LLMModel        string        `env:"AIMEMO_LLM_MODEL"         envDefault:"claude-3-5-haiku-20241022"`
	LLMTimeout      time.Duration `env:"AIMEMO_LLM_TIMEOUT"       envDefault:"60s"`
	SummaryLanguage string        `env:"AIMEMO_SUMMARY_LANGUAGE"  envDefault:"Japanese"`
	SummaryMaxChars int           `env:"AIMEMO_SUMMARY_MAX_CHARS" envDefault:"144"`

	LogLevel  string `env:"AIMEMO_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"AIMEMO_LOG_FORMAT" envDefault:"text"`
}

// DBPath returns the embedded database file path inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, dbFileName)
}

// CredentialFilePath returns the local credential file path inside DataDir.
func (c *Config) CredentialFilePath() string {
	return filepath.Join(c.DataDir, credentialFileName)
}

// SlogLevel returns LogLevel as an slog.Level. Validate has already rejected
// unknown names.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

// Load reads an optional .env file from the working directory, then the
// environment, and returns a validated Config. Variables already set in the
// environment take precedence over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.CredentialStorage = CredentialStorage(strings.ToLower(strings.TrimSpace(string(cfg.CredentialStorage))))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.ManagedDB && c.DatabaseURL == "" {
		errs = append(errs, errors.New("AIMEMO_DATABASE_URL is required when AIMEMO_MANAGED_DB is true"))
	}

	switch c.CredentialStorage {
	case CredentialStorageDatabase, CredentialStorageLocal:
	default:
		errs = append(errs, fmt.Errorf("AIMEMO_CREDENTIAL_STORAGE must be %q or %q, got %q",
			CredentialStorageDatabase, CredentialStorageLocal, c.CredentialStorage))
	}

	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("AIMEMO_LLM_TIMEOUT must be positive, got %s", c.LLMTimeout))
	}

	if c.SummaryMaxChars <= 0 {
		errs = append(errs, fmt.Errorf("AIMEMO_SUMMARY_MAX_CHARS must be positive, got %d", c.SummaryMaxChars))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("AIMEMO_LOG_LEVEL has invalid level %q", c.LogLevel))
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("AIMEMO_LOG_FORMAT must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.LogFormat))
	}

	if c.DataDir == "" && (!c.ManagedDB || c.CredentialStorage == CredentialStorageLocal) {
		errs = append(errs, errors.New("AIMEMO_DATA_DIR must not be empty"))
	}

	return errors.Join(errs...)
}
