package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"TASKBOARD_SERVER_PORT",
	"TASKBOARD_SERVER_LOG_LEVEL",
	"TASKBOARD_SERVER_SHUTDOWN_TIMEOUT_SECONDS",
	"TASKBOARD_STORE_SEED_FILE",
	"TASKBOARD_EVENTS_WORKER_COUNT",
	"TASKBOARD_EVENTS_QUEUE_SIZE",
	"TASKBOARD_EVENTS_KAFKA_BROKERS",
	"TASKBOARD_EVENTS_KAFKA_TOPIC",
}

// setupEnv clears every TASKBOARD_ variable and then sets the given ones.
// Original values are restored when the test finishes.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	for _, name := range configEnvVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// loadIsolated runs Load from an empty directory without a dotenv file.
func loadIsolated(t *testing.T, opts ...Option) (*Config, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	return Load(append([]Option{WithEnvFile("")}, opts...)...)
}

// TestLoadDefaults verifies the defaults applied when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, nil)

	cfg, err := loadIsolated(t)

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Empty(t, cfg.Store.SeedFile)
	assert.Equal(t, 2, cfg.Events.WorkerCount)
	assert.Equal(t, 100, cfg.Events.QueueSize)
	assert.Empty(t, cfg.Events.Kafka.Brokers)
	assert.False(t, cfg.Events.Kafka.Enabled())
	assert.Equal(t, "task-events", cfg.Events.Kafka.Topic)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"TASKBOARD_SERVER_PORT":          "9090",
		"TASKBOARD_SERVER_LOG_LEVEL":     "debug",
		"TASKBOARD_STORE_SEED_FILE":      "/tmp/seed.yaml",
		"TASKBOARD_EVENTS_WORKER_COUNT":  "4",
		"TASKBOARD_EVENTS_KAFKA_BROKERS": "kafka-1:9092,kafka-2:9092",
		"TASKBOARD_EVENTS_KAFKA_TOPIC":   "tasks",
	})

	cfg, err := loadIsolated(t)

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	assert.Equal(t, 9090, cfg.Server.Port, "Server port should be loaded from environment variables")
	assert.Equal(t, "debug", cfg.Server.LogLevel, "Log level should be loaded from environment variables")
	assert.Equal(t, "/tmp/seed.yaml", cfg.Store.SeedFile)
	assert.Equal(t, 4, cfg.Events.WorkerCount)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, "tasks", cfg.Events.Kafka.Topic)
	assert.True(t, cfg.Events.Kafka.Enabled())
}

func TestLoadFromConfigFile(t *testing.T) {
	setupEnv(t, map[string]string{
		"TASKBOARD_SERVER_LOG_LEVEL": "error",
	})

	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	content := `
server:
  port: 7000
  log_level: warn
events:
  queue_size: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadIsolated(t, WithConfigFile(path))

	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Server.LogLevel, "environment should override the config file")
	assert.Equal(t, 5, cfg.Events.QueueSize)
}

func TestLoadMissingConfigFile(t *testing.T) {
	setupEnv(t, nil)

	cfg, err := loadIsolated(t, WithConfigFile(filepath.Join(t.TempDir(), "nope.yaml")))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromEnvFile(t *testing.T) {
	setupEnv(t, map[string]string{
		"TASKBOARD_SERVER_LOG_LEVEL": "warn",
	})

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "TASKBOARD_SERVER_PORT=6060\nTASKBOARD_SERVER_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := loadIsolated(t, WithEnvFile(envFile))

	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel, "process environment should win over the dotenv file")
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Invalid port number",
			envVars: map[string]string{"TASKBOARD_SERVER_PORT": "999999"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"TASKBOARD_SERVER_LOG_LEVEL": "invalid-level"},
		},
		{
			name:    "Zero workers",
			envVars: map[string]string{"TASKBOARD_EVENTS_WORKER_COUNT": "0"},
		},
		{
			name:    "Malformed broker address",
			envVars: map[string]string{"TASKBOARD_EVENTS_KAFKA_BROKERS": "not a broker"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := loadIsolated(t)

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
