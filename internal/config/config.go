package config

import "time"

// Config holds the complete failover service configuration.
type Config struct {
	REST    RESTConfig `yaml:"rest"`
	GRPC    GRPCConfig `yaml:"grpc"`
	Logging LogConfig  `yaml:"logging"`
}

// RESTConfig holds the HTTP API configuration.
type RESTConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
	RateLimit    int           `yaml:"rateLimit"`
	TrustProxy   bool          `yaml:"trustProxy"`
	CORSOrigins  []string      `yaml:"corsOrigins"`
}

// GRPCConfig holds the gRPC health endpoint configuration.
// An empty address disables the endpoint.
type GRPCConfig struct {
	Address string `yaml:"address"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}
