package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all runtime settings, sourced from the environment with
// an optional .env file for local development.
type Config struct {
	Debug bool   `mapstructure:"DEBUG"`
	Port  string `mapstructure:"PORT"`

	SecretKey                 string `mapstructure:"SECRET_KEY"`
	AccessTokenExpireMinutes  int    `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	RefreshTokenExpireMinutes int    `mapstructure:"REFRESH_TOKEN_EXPIRE_MINUTES"`
	EmailOtpExpireMinutes     int    `mapstructure:"EMAIL_OTP_EXPIRE_MINUTES"`

	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresServer   string `mapstructure:"POSTGRES_SERVER"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	PostgresDB       string `mapstructure:"POSTGRES_DB"`
}

// Load reads configuration from the environment, falling back to the
// .env file at path if one exists.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("DEBUG", false)
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("PORT", "8000")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("REFRESH_TOKEN_EXPIRE_MINUTES", 10080)
	v.SetDefault("EMAIL_OTP_EXPIRE_MINUTES", 15)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_SERVER", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_DB", "auction")

	v.SetConfigFile(path)
	v.SetConfigType("env")
	// missing .env is fine, env vars still apply
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("config: SECRET_KEY is required")
	}
	return &cfg, nil
}

// DatabaseDSN assembles the postgres connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.PostgresServer, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort,
	)
}
