package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drivestack/drivestack/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	RBAC       RBACConfig
	Rental     RentalConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

type AuthConfig struct {
	// Secret signs and validates the HMAC JWTs issued at login
	Secret string `validate:"required"`

	// TokenExpiryHours bounds the lifetime of issued tokens
	TokenExpiryHours int
}

type RBACConfig struct {
	// RolesConfigPath optionally overrides the built-in role table with a
	// roles.json file. Empty means the static defaults apply.
	RolesConfigPath string
}

// RentalConfig carries tenant-independent rental policy defaults. Tenants can
// override the daily distance limit inside the documented bounds; values
// outside the bounds fall back to DefaultDailyKmLimit.
type RentalConfig struct {
	DefaultDailyKmLimit  decimal.Decimal
	MinDailyKmLimit      decimal.Decimal
	MaxDailyKmLimit      decimal.Decimal
	DefaultTaxPercent    decimal.Decimal
	DefaultDepositAmount decimal.Decimal
}

func NewConfig() (*Configuration, error) {
	// Local development overrides, ignored when no .env exists
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/drivestack")

	// Set up environment variables support
	v.SetEnvPrefix("DRIVESTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// applyDefaults fills the rental policy bounds and token lifetime when the
// config file leaves them unset
func (c *Configuration) applyDefaults() {
	if c.Auth.TokenExpiryHours <= 0 {
		c.Auth.TokenExpiryHours = 24 * 30
	}
	if c.Rental.DefaultDailyKmLimit.IsZero() {
		c.Rental.DefaultDailyKmLimit = decimal.NewFromInt(300)
	}
	if c.Rental.MinDailyKmLimit.IsZero() {
		c.Rental.MinDailyKmLimit = decimal.NewFromInt(50)
	}
	if c.Rental.MaxDailyKmLimit.IsZero() {
		c.Rental.MaxDailyKmLimit = decimal.NewFromInt(2000)
	}
	if c.Rental.DefaultTaxPercent.IsZero() {
		c.Rental.DefaultTaxPercent = decimal.NewFromInt(19)
	}
	if c.Rental.DefaultDepositAmount.IsZero() {
		c.Rental.DefaultDepositAmount = decimal.NewFromInt(500)
	}
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	cfg := &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth:       AuthConfig{Secret: "local-dev-secret"},
	}
	cfg.applyDefaults()
	return cfg
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
