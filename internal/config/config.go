package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Recognition
	CascadePath         string  `envconfig:"CASCADE_PATH" default:"haarcascade_frontalface_default.xml"`
	UploadDir           string  `envconfig:"UPLOAD_DIR" default:"uploads/facial_data"`
	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.6"`
	DescriptorSize      int     `envconfig:"DESCRIPTOR_SIZE" default:"100"`

	// Security
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer    string `envconfig:"JWT_ISSUER" default:"rollcall"`
	JWTExpiryHrs int    `envconfig:"JWT_EXPIRY_HOURS" default:"12"`
	MaxUploadMB  int    `envconfig:"MAX_UPLOAD_MB" default:"10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
