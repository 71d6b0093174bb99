// Package logging provides structured logging utilities shared by all
// kubedeploy components.
//
// It wraps the standard library slog package with JSON output to stderr,
// module/version context injection, environment-based log level configuration
// (LOG_LEVEL), and source location tracking for debug logs.
//
// Set the default logger early in main():
//
//	logging.SetDefaultStructuredLogger("kubedeployd", version)
//	slog.Info("starting", "port", 8080)
package logging
