// Package config loads server settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Image store backends.
const (
	ImageStoreDB = "db"
	ImageStoreS3 = "s3"
)

type Config struct {
	Env         string `yaml:"env" env:"APP_ENV" env-default:"local" env-description:"deployment environment"`
	Secret      string `yaml:"app_secret" env:"APP_SECRET" env-description:"JWT signing key (stored in the database when empty)"`
	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:7777" env-description:"public base URL used in reset links"`
	DBPath      string `yaml:"db_path" env:"DB_PATH" env-default:"sickfits.sqlite3" env-description:"SQLite database path"`
	LogPath     string `yaml:"log_path" env:"LOG_PATH" env-description:"log file path"`

	HTTP  HTTP  `yaml:"http"`
	Mail  Mail  `yaml:"mail"`
	Image Image `yaml:"image"`
}

type HTTP struct {
	Address      string `yaml:"address" env:"HTTP_ADDR" env-default:":7777" env-description:"listen address"`
	CookieSecure bool   `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false" env-description:"mark the session cookie Secure"`
}

// Mail configures Amazon SES. An empty FromEmail disables sending.
type Mail struct {
	Region    string `yaml:"region" env:"SES_REGION" env-default:"us-east-1" env-description:"SES region"`
	FromEmail string `yaml:"from_email" env:"SES_FROM_EMAIL" env-description:"sender address"`
	FromName  string `yaml:"from_name" env:"SES_FROM_NAME" env-default:"Sick Fits" env-description:"sender name"`
}

type Image struct {
	Store     string `yaml:"store" env:"IMAGE_STORE" env-default:"db" env-description:"image backend: db or s3"`
	Bucket    string `yaml:"s3_bucket" env:"S3_BUCKET" env-description:"S3 bucket"`
	Region    string `yaml:"s3_region" env:"S3_REGION" env-default:"us-east-1" env-description:"S3 region"`
	Endpoint  string `yaml:"s3_endpoint" env:"S3_ENDPOINT" env-description:"S3-compatible endpoint (empty for AWS)"`
	AccessKey string `yaml:"s3_access_key" env:"S3_ACCESS_KEY" env-description:"S3 access key"`
	SecretKey string `yaml:"s3_secret_key" env:"S3_SECRET_KEY" env-description:"S3 secret key"`
	PublicURL string `yaml:"s3_public_url" env:"S3_PUBLIC_URL" env-description:"base URL objects are served from"`
}

// Load reads the YAML file at path (if non-empty) and then the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")

	switch c.Image.Store {
	case ImageStoreDB:
	case ImageStoreS3:
		if c.Image.Bucket == "" {
			return errors.New("S3_BUCKET is required when IMAGE_STORE=s3")
		}
		if c.Image.PublicURL == "" {
			return errors.New("S3_PUBLIC_URL is required when IMAGE_STORE=s3")
		}
	default:
		return fmt.Errorf("unknown image store %q", c.Image.Store)
	}
	return nil
}

// Usage describes the environment variables.
func Usage() string {
	header := "Environment variables:"
	desc, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return ""
	}
	return desc
}
