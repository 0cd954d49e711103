package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"`
	Events EventsConfig `mapstructure:"events" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// StoreConfig configures the in-memory task store.
type StoreConfig struct {
	// SeedFile is an optional YAML file of tasks loaded at start-up.
	SeedFile string `mapstructure:"seed_file"`
}

// EventsConfig configures asynchronous delivery of task lifecycle events.
type EventsConfig struct {
	WorkerCount int         `mapstructure:"worker_count" validate:"gte=1,lte=64"`
	QueueSize   int         `mapstructure:"queue_size"   validate:"gte=1"`
	Kafka       KafkaConfig `mapstructure:"kafka"`
}

// KafkaConfig enables the Kafka event publisher when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers" validate:"omitempty,dive,hostname_port"`
	Topic   string   `mapstructure:"topic"   validate:"required_with=Brokers"`
}

// Enabled reports whether events should be published to Kafka.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}
