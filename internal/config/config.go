package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"creatorflow-backend-go/internal/models"
)

// Storage drivers.
const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"
)

// Auth modes.
const (
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
	AuthStatic   = "static"
)

const minJWTSecretLen = 32

// Config holds all configuration for the application.
type Config struct {
	Port     string `mapstructure:"PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// ClientURL is a comma separated list of allowed CORS origins.
	ClientURL string `mapstructure:"CLIENT_URL"`

	DBDriver                         string `mapstructure:"DB_DRIVER"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	MongoURI                         string `mapstructure:"MONGO_URI"`
	MongoDatabase                    string `mapstructure:"MONGO_DATABASE"`

	AuthMode  string `mapstructure:"AUTH_MODE"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTIssuer string `mapstructure:"JWT_ISSUER"`

	// Identity used by AUTH_MODE=static.
	DevUserID    string `mapstructure:"DEV_USER_ID"`
	DevUserName  string `mapstructure:"DEV_USER_NAME"`
	DevUserEmail string `mapstructure:"DEV_USER_EMAIL"`
	DevUserPlan  string `mapstructure:"DEV_USER_PLAN"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	ReadTimeout     time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"WRITE_TIMEOUT"`
}

var keys = []string{
	"PORT", "GIN_MODE", "LOG_LEVEL", "CLIENT_URL",
	"DB_DRIVER", "FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"MONGO_URI", "MONGO_DATABASE",
	"AUTH_MODE", "JWT_SECRET", "JWT_ISSUER",
	"DEV_USER_ID", "DEV_USER_NAME", "DEV_USER_EMAIL", "DEV_USER_PLAN",
	"SHUTDOWN_TIMEOUT", "READ_TIMEOUT", "WRITE_TIMEOUT",
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Release deployments are expected to set real environment variables.
func LoadDotEnv() error {
	if strings.EqualFold(os.Getenv("GIN_MODE"), "release") {
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverFirestore)
	v.SetDefault("MONGO_DATABASE", "creatorflow")
	v.SetDefault("AUTH_MODE", AuthFirebase)
	v.SetDefault("DEV_USER_ID", "507f1f77bcf86cd799439011")
	v.SetDefault("DEV_USER_NAME", "Demo Creator")
	v.SetDefault("DEV_USER_EMAIL", "demo@creatorflow.app")
	v.SetDefault("DEV_USER_PLAN", string(models.PlanPro))
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("READ_TIMEOUT", "15s")
	v.SetDefault("WRITE_TIMEOUT", "15s")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and cross-field rules.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverFirestore:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when DB_DRIVER=firestore")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when DB_DRIVER=mongo")
		}
		if c.MongoDatabase == "" {
			return errors.New("MONGO_DATABASE is required when DB_DRIVER=mongo")
		}
	case DriverMemory:
		if c.IsRelease() {
			return errors.New("DB_DRIVER=memory is not allowed in release mode")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want firestore, mongo or memory)", c.DBDriver)
	}

	switch c.AuthMode {
	case AuthFirebase:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when AUTH_MODE=firebase")
		}
	case AuthJWT:
		if len(c.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("JWT_SECRET must be at least %d bytes when AUTH_MODE=jwt", minJWTSecretLen)
		}
	case AuthStatic:
		if c.IsRelease() {
			return errors.New("AUTH_MODE=static is not allowed in release mode")
		}
		if c.DevUserID == "" {
			return errors.New("DEV_USER_ID is required when AUTH_MODE=static")
		}
		if !models.Plan(c.DevUserPlan).IsValid() {
			return fmt.Errorf("DEV_USER_PLAN %q is not a valid plan", c.DevUserPlan)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q (want firebase, jwt or static)", c.AuthMode)
	}

	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}

// NeedsFirebase reports whether a Firebase app must be initialised.
func (c *Config) NeedsFirebase() bool {
	return c.DBDriver == DriverFirestore || c.AuthMode == AuthFirebase
}

// ClientOrigins splits ClientURL into individual origins.
func (c *Config) ClientOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.ClientURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DevIdentity is the identity used by AUTH_MODE=static.
func (c *Config) DevIdentity() models.Identity {
	return models.Identity{
		Subject: c.DevUserID,
		Email:   c.DevUserEmail,
		Name:    c.DevUserName,
		Plan:    models.Plan(c.DevUserPlan),
	}
}
