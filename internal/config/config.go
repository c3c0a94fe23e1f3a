package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port                     int    `env:"PORT"`
	DatabaseURL              string `env:"DATABASE_URL"`
	LogLevel                 string `env:"LOG_LEVEL"`
	HandSize                 int    `env:"HAND_SIZE"`
	RoundLimit               int    `env:"ROUND_LIMIT"`
	MaxPlayers               int    `env:"MAX_PLAYERS"`
	GameCodeDigits           int    `env:"GAME_CODE_DIGITS"`
	GameCodeAttempts         int    `env:"GAME_CODE_ATTEMPTS"`
	StoreMaxAttempts         int    `env:"STORE_MAX_ATTEMPTS"`
	ChooseSeconds            int    `env:"CHOOSE_SECONDS"`
	DBMaxOpenConns           int    `env:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `env:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeSeconds int    `env:"DB_CONN_MAX_LIFETIME_SECONDS"`
	DBConnMaxIdleTimeSeconds int    `env:"DB_CONN_MAX_IDLE_SECONDS"`
}

func Default() Config {
	return Config{
		Port:                     8080,
		LogLevel:                 "info",
		HandSize:                 7,
		RoundLimit:               69,
		MaxPlayers:               25,
		GameCodeDigits:           6,
		GameCodeAttempts:         10,
		StoreMaxAttempts:         5,
		ChooseSeconds:            0,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

// Load overlays environment variables on Default and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port))
	}
	if c.HandSize < 1 {
		errs = append(errs, fmt.Errorf("HAND_SIZE must be positive: %d", c.HandSize))
	}
	if c.RoundLimit < 1 {
		errs = append(errs, fmt.Errorf("ROUND_LIMIT must be at least 1: %d", c.RoundLimit))
	}
	if c.MaxPlayers < 3 || c.MaxPlayers > 40 {
		errs = append(errs, fmt.Errorf("MAX_PLAYERS must be between 3-40 inclusive: %d", c.MaxPlayers))
	}
	if c.GameCodeDigits < 4 || c.GameCodeDigits > 12 {
		errs = append(errs, fmt.Errorf("GAME_CODE_DIGITS must be between 4-12 inclusive: %d", c.GameCodeDigits))
	}
	if c.GameCodeAttempts < 1 {
		errs = append(errs, fmt.Errorf("GAME_CODE_ATTEMPTS must be positive: %d", c.GameCodeAttempts))
	}
	if c.StoreMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("STORE_MAX_ATTEMPTS must be positive: %d", c.StoreMaxAttempts))
	}
	if c.ChooseSeconds < 0 {
		errs = append(errs, fmt.Errorf("CHOOSE_SECONDS must not be negative: %d", c.ChooseSeconds))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) ChooseDuration() time.Duration {
	return time.Duration(c.ChooseSeconds) * time.Second
}

func (c Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeSeconds) * time.Second
}

func (c Config) ConnMaxIdleTime() time.Duration {
	return time.Duration(c.DBConnMaxIdleTimeSeconds) * time.Second
}
