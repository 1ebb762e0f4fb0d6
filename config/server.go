package config

import (
	"fmt"
	"net"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address        string `json:"address"`
	MetricsEnabled bool   `json:"metrics_enabled"`
	// MetricsAddress serves /metrics on a dedicated listener when set.
	MetricsAddress string `json:"metrics_address"`
	// ShutdownTimeoutSeconds bounds the graceful shutdown.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		c.ShutdownTimeoutSeconds = 5
	}
}

func (c ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return fmt.Errorf("server.address: %w", err)
	}
	if c.MetricsAddress != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddress); err != nil {
			return fmt.Errorf("server.metrics_address: %w", err)
		}
	}
	return nil
}
