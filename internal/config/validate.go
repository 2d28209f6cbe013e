package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error

	errs = append(errs, validateRESTConfig(&config.REST)...)
	errs = append(errs, validateGRPCConfig(&config.GRPC)...)
	errs = append(errs, validateLogConfig(&config.Logging)...)

	if config.GRPC.Address != "" && config.GRPC.Address == config.REST.Address {
		errs = append(errs, ValidationError{
			Field:   "grpc.address",
			Message: "must differ from rest.address",
		})
	}

	return errs
}

func validateRESTConfig(config *RESTConfig) []error {
	var errs []error

	if config.Address == "" {
		errs = append(errs, ValidationError{
			Field:   "rest.address",
			Message: "is required",
		})
	} else if err := validateAddress(config.Address); err != nil {
		errs = append(errs, ValidationError{
			Field:   "rest.address",
			Message: err.Error(),
		})
	}

	timeouts := []struct {
		field string
		value int64
	}{
		{"rest.readTimeout", int64(config.ReadTimeout)},
		{"rest.writeTimeout", int64(config.WriteTimeout)},
		{"rest.idleTimeout", int64(config.IdleTimeout)},
	}
	for _, tc := range timeouts {
		if tc.value < 0 {
			errs = append(errs, ValidationError{
				Field:   tc.field,
				Message: "must be non-negative",
			})
		}
	}

	if config.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "rest.rateLimit",
			Message: "must be non-negative",
		})
	}

	for i, origin := range config.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("rest.corsOrigins[%d]", i),
				Message: "must not be empty",
			})
		}
	}

	return errs
}

func validateGRPCConfig(config *GRPCConfig) []error {
	if config.Address == "" {
		return nil
	}
	if err := validateAddress(config.Address); err != nil {
		return []error{ValidationError{
			Field:   "grpc.address",
			Message: err.Error(),
		}}
	}
	return nil
}

// validateLogConfig validates logging configuration.
func validateLogConfig(config *LogConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if config.Level != "" && !validLevels[strings.ToLower(config.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be debug, info, warn, or error",
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if config.Format != "" && !validFormats[strings.ToLower(config.Format)] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be text or json",
		})
	}

	if config.Output != "" && config.Output != "stdout" && config.Output != "stderr" {
		dir := filepath.Dir(config.Output)
		if !filepath.IsAbs(config.Output) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: "must be stdout, stderr, or an absolute file path",
			})
		} else if _, err := os.Stat(dir); os.IsNotExist(err) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: fmt.Sprintf("directory %s does not exist", dir),
			})
		}
	}

	return errs
}

// validateAddress validates a network address in host:port format.
func validateAddress(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %v", err)
	}
	if port == "" {
		return fmt.Errorf("port is required")
	}
	return nil
}
