package config

import "time"

// Config is the root configuration for a relay instance.
type Config struct {
	// Bind is the host and port the WebSocket listener serves on.
	Bind string `yaml:"bind"`
	// StatusBind is the host and port for the status endpoint. Empty
	// disables it.
	StatusBind string `yaml:"status_bind"`
	// AllowedOrigins restricts browser origins on upgrade. Empty allows any.
	AllowedOrigins []string `yaml:"allowed_origins"`

	PingInterval   time.Duration `yaml:"ping_interval"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxMessageSize int64         `yaml:"max_message_size"`
	InboundBuffer  int           `yaml:"inbound_buffer"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bind:           "0.0.0.0:3001",
		PingInterval:   30 * time.Second,
		ReadTimeout:    75 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 1 << 20,
		InboundBuffer:  16,
	}
}
