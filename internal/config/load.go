package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKBOARD_SERVER_PORT.
const EnvPrefix = "TASKBOARD"

// DefaultEnvFile is the dotenv file read before the environment is consulted.
const DefaultEnvFile = ".env"

type loadOptions struct {
	configFile string
	envFile    string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithConfigFile reads the given YAML file instead of searching for
// config.yaml in the working directory.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnvFile reads variables from the given dotenv file. An empty path
// disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files, and
// variables already present in the process environment take precedence over
// the dotenv file. Returns a populated Config or an error if loading or
// validation fails.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{envFile: DefaultEnvFile}
	for _, opt := range opts {
		opt(&o)
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", o.envFile, err)
		}
	}

	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("store.seed_file", "")
	v.SetDefault("events.worker_count", 2)
	v.SetDefault("events.queue_size", 100)
	v.SetDefault("events.kafka.brokers", []string{})
	v.SetDefault("events.kafka.topic", "task-events")

	v.SetConfigType("yaml")
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", o.configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about, so every key is
	// bound explicitly to make env-only configuration work.
	bindEnvs := []string{
		"server.port",
		"server.log_level",
		"server.shutdown_timeout_seconds",
		"store.seed_file",
		"events.worker_count",
		"events.queue_size",
		"events.kafka.brokers",
		"events.kafka.topic",
	}
	for _, key := range bindEnvs {
		envVar := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
