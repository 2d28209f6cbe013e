package config

import "time"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		REST: RESTConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			RateLimit:    100,
			CORSOrigins:  []string{"*"},
		},
		GRPC: GRPCConfig{
			Address: "",
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}
