// Package logging provides structured logging utilities for manifold components.
//
// # Overview
//
// This package wraps the standard library slog package with manifold-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("manifold", version.Get().Version)
//
//	    slog.Info("conversion started", "inputs", len(paths))
//	    slog.Warn("conversion warning", "warning", w)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("manifold", "v1.0.0", "debug")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug manifold convert --input ./manifests
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format so that converted manifests
// on stdout stay machine-readable:
//
//	{
//	    "time": "2025-06-12T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "generated trust bundle",
//	    "module": "manifold",
//	    "version": "v1.0.0",
//	    "bundle": "ca1",
//	    "sources": 2
//	}
package logging
