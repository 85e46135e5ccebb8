package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`      // current application environment (local, dev, production etc)
	Log      Log      `mapstructure:"log"`      // logging configuration section
	Gateway  Gateway  `mapstructure:"gateway"`  // quiz API client configuration section
	Quiz     Quiz     `mapstructure:"quiz"`     // session behaviour
	Telegram Telegram `mapstructure:"telegram"` // telegram front end configuration section
	Server   Server   `mapstructure:"server"`   // quiz server configuration section
	DB       DB       `mapstructure:"database"` // database configuration section
}

// Log contains logger settings.
type Log struct {
	Level string `mapstructure:"level"` // minimum level: debug, info, warn, error
	File  string `mapstructure:"file"`  // optional path of a rotated JSON log file
}

// Gateway contains settings of the remote quiz API client.
type Gateway struct {
	BaseURL string        `mapstructure:"base_url"` // scheme and host of the quiz API
	Timeout time.Duration `mapstructure:"timeout"`  // per-request timeout, zero disables it
}

// Quiz contains session settings.
type Quiz struct {
	Scoring string `mapstructure:"scoring"` // per_question or legacy, parsed by service.ParseScoringMode
}

// Telegram contains bot settings.
type Telegram struct {
	APIToken string `mapstructure:"-"`       // bot token loaded from environment
	ChatID   int64  `mapstructure:"chat_id"` // the only chat allowed to drive the session
}

// Server contains quiz server settings.
type Server struct {
	Addr          string   `mapstructure:"addr"`           // listen address
	QuestionsPath string   `mapstructure:"questions_path"` // path to the JSON question bank
	CORSOrigins   []string `mapstructure:"cors_origins"`   // allowed browser origins
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Enabled reports whether a database is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// BotToken returns the telegram token if it is configured.
func (t Telegram) BotToken() (string, error) {
	if t.APIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return t.APIToken, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from config.yaml in dir and environment variables.
func LoadFrom(dir string) (*Config, error) {
	// A missing .env file is fine, variables may come from the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("gateway.base_url", "http://localhost:3001")
	v.SetDefault("gateway.timeout", "15s")
	v.SetDefault("quiz.scoring", "per_question")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("server.addr", ":3001")
	v.SetDefault("server.questions_path", "assets/questions.json")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.file", "LOG_FILE")
	_ = v.BindEnv("gateway.base_url", "QUIZ_API_URL")
	_ = v.BindEnv("gateway.timeout", "QUIZ_API_TIMEOUT")
	_ = v.BindEnv("quiz.scoring", "QUIZ_SCORING")
	_ = v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	_ = v.BindEnv("server.addr", "SERVER_ADDR")
	_ = v.BindEnv("server.questions_path", "QUESTIONS_PATH")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	cfg.Gateway.BaseURL = strings.TrimSuffix(cfg.Gateway.BaseURL, "/")

	return &cfg, nil
}
