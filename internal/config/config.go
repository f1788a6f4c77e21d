package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Database — postgres:// DSN or a path ending in .db for local sqlite
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis — report cache + async job queue. Optional: empty disables both.
	RedisURL string `mapstructure:"REDIS_URL"`

	// SMTP — delivery of the cierre de caja report
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	// ReporteEmail receives the daily close PDF. Empty disables the emails.
	ReporteEmail string `mapstructure:"REPORTE_EMAIL"`

	// Business
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/optica/pdfs")
	viper.SetDefault("DATABASE_URL", "optica.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
