package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors Config for environment variables. Pointer fields stay nil
// when the variable is unset so only explicitly provided values override.
type EnvConfig struct {
	Port                        *string        `env:"PORT"`
	EndpointAddrHTTP            *string        `env:"HTTP_ADDRESS"`
	EndpointAddrHealth          *string        `env:"HEALTH_ADDRESS"`
	DatabaseDSN                 *string        `env:"DATABASE_URL"`
	SecretKey                   *string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration *time.Duration `env:"ACCESS_TOKEN_TTL"`
	BcryptCost                  *int           `env:"BCRYPT_COST"`
	CORSOrigin                  *string        `env:"CORS_ORIGIN"`
	LogLevel                    *string        `env:"LOG_LEVEL"`
	S3RootUser                  *string        `env:"S3_ROOT_USER"`
	S3RootPassword              *string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket                    *string        `env:"S3_BUCKET"`
	S3Region                    *string        `env:"S3_REGION"`
	S3BaseEndpoint              *string        `env:"S3_BASE_ENDPOINT"`
	ImagesBaseURL               *string        `env:"IMAGES_BASE_URL"`
	ImageURLValidity            *time.Duration `env:"IMAGE_URL_TTL"`
	ShutdownTimeout             *time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// parseEnv loads the dotenv file (-env, default ".env") when it exists and
// overlays environment variables onto config. Malformed values panic.
func parseEnv(config *Config, args []string) {
	// a missing dotenv file is normal outside local development
	_ = godotenv.Load(flagx.EnvFile(args))

	c := EnvConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *EnvConfig) apply(config *Config) {
	if c.Port != nil && *c.Port != "" {
		config.EndpointAddrHTTP = ":" + *c.Port
	}
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrHealth, c.EndpointAddrHealth)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CORSOrigin, c.CORSOrigin)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.ImagesBaseURL, c.ImagesBaseURL)

	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *c.AccessTokenValidityDuration
	}
	if c.ImageURLValidity != nil {
		config.ImageURLValidity = *c.ImageURLValidity
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = *c.ShutdownTimeout
	}
}
