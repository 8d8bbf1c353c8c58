package config

import (
	"net"
	"strconv"
)

// MetricsConfig controls the Prometheus endpoint served by the daemon
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Bind address, localhost by default
	Host string `mapstructure:"host"`

	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Address is the host:port the metrics server listens on
func (c MetricsConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
