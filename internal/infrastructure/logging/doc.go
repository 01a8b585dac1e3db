// Package logging provides structured logging for docsubset.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the tool.
//
// # Features
//
//   - Text output for interactive use (human-readable, the default)
//   - JSON output for machine parsing
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in the settings file:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # text, json
//	  output: "stderr"   # stderr, stdout
//
// Logs go to stderr by default so the change summary and other primary
// output on stdout stay pipeable.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("generated subset", "path", out)
//	logger.Error("section not found", "section", target)
package logging
