// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups and is built once at process
// start; the capability clients it configures live for the process lifetime.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	AWS      AWSConfig      `mapstructure:"aws"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AWSConfig contains the settings for the managed AWS services the
// workflows call: the Cognito user pool, the SNS notification topic and the
// SES sender identity.
type AWSConfig struct {
	Region       string `mapstructure:"region"         validate:"required"`
	UserPoolID   string `mapstructure:"user_pool_id"   validate:"required"`
	ClientID     string `mapstructure:"client_id"      validate:"required"`
	ClientSecret string `mapstructure:"client_secret"  validate:"required"`
	TopicARN     string `mapstructure:"topic_arn"      validate:"required"`
	SenderEmail  string `mapstructure:"sender_email"   validate:"required,email"`

	// Endpoint overrides the AWS endpoint for local development against
	// LocalStack. Empty in production.
	Endpoint string `mapstructure:"endpoint"`
}
