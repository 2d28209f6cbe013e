// Package config loads and validates the failover service configuration.
//
// Configuration is read from a YAML file. Values may reference the
// environment with ${VAR} or ${VAR:-default}; keys that are absent keep the
// value from DefaultConfig, and unknown keys are rejected.
//
// A typical configuration file:
//
//	rest:
//	  address: ":8080"
//	  readTimeout: 10s
//	  writeTimeout: 10s
//	  idleTimeout: 60s
//	  rateLimit: 100
//	  trustProxy: false  # key rate limits on X-Forwarded-For
//	  corsOrigins: ["*"]
//
//	grpc:
//	  address: "${FAILOVER_GRPC_ADDR:-:9090}"
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stdout"
//
// ApplyEnvOverrides lets FAILOVER_<SECTION>_<KEY> variables such as
// FAILOVER_REST_ADDRESS or FAILOVER_LOGGING_LEVEL replace loaded values.
//
// ValidateConfig reports every problem at once as ValidationError values.
// ConfigWatcher polls the file and hands each valid new version to a
// callback, which the serve command uses to change the log level at runtime.
package config
