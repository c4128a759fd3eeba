package server

import (
	"os"
	"time"
)

// Config holds configuration for the builder HTTP server
type Config struct {
	// Port is the port to listen on (default: $PORT or 8080)
	Port string

	// Host is the host to bind to (default: "")
	Host string

	// EnableCORS enables CORS middleware (default: true)
	EnableCORS bool

	// EnableLogger enables request logging middleware (default: true)
	EnableLogger bool

	// EnableRecover enables panic recovery middleware (default: true)
	EnableRecover bool

	// ShutdownTimeout is the timeout for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration

	// MaxBatchSize caps the value types accepted by one batch request
	MaxBatchSize int

	// MaxBodySize caps request bodies, in echo's size notation such as "1M" (default: "1M")
	MaxBodySize string
}

// DefaultConfig returns a server configuration with sensible defaults
func DefaultConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:            port,
		Host:            "",
		EnableCORS:      true,
		EnableLogger:    true,
		EnableRecover:   true,
		ShutdownTimeout: 30 * time.Second,
		MaxBatchSize:    256,
		MaxBodySize:     "1M",
	}
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return c.Host + ":" + c.Port
}
