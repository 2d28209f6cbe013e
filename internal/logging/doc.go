// Package logging provides structured logging for the failover simulator.
//
// # Overview
//
// The package wraps logrus behind a small interface with:
//
//   - Four levels (debug, info, warn, error)
//   - Text and JSON output formats
//   - Request ID tracking for HTTP requests
//   - Field-based contextual logging
//
// # Creating a Logger
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	})
//
// For testing, use a no-op logger:
//
//	logger := logging.NewNop()
//
// # Structured Logging
//
// Add key-value pairs to log entries:
//
//	logger.Info("failover started",
//	    "cluster", "pd",
//	    "leader", "pd1",
//	    "majority", false,
//	)
//
// Keys must be strings; pairs with non-string keys are dropped.
//
// # Contextual Fields
//
//	simLogger := logger.WithSource("simulation").WithFields("run_id", runID)
//	reqLogger := logger.WithRequestID(logging.GenerateRequestID())
package logging
