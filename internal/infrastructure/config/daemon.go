package config

import "time"

// DaemonConfig holds settings for the real-time driver process
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout, including the final save
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
