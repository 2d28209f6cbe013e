package config

import "os"

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "FAILOVER_"

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern FAILOVER_<SECTION>_<KEY>.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "REST_ADDRESS"); v != "" {
		cfg.REST.Address = v
	}
	if v := os.Getenv(EnvPrefix + "GRPC_ADDRESS"); v != "" {
		cfg.GRPC.Address = v
	}
	if v := os.Getenv(EnvPrefix + "LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvPrefix + "LOGGING_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}
}
