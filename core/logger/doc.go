// Package logger provides a structured logging facility based on Zap.
//
// It builds a configured logger instance for the editor backend and
// integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the request's RayID from a Fiber context and
// attaches it to the log entry, so every log line produced while serving an
// asset request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (interactive CLI use)
//
// Debug level switches to the development config so refresh traces stay
// readable during local runs.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
