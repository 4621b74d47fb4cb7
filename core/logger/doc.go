// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production).
//
// # Run Awareness
//
// Every reconciliation run carries a run id. The WithRun helper attaches it to the
// logger so that all entries of one run can be correlated with its archived report.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Mirror started")
//
//	// Inside a run:
//	l := logger.WithRun(log, report.RunID)
//	l.Error("Run failed", zap.Error(err))
package logger
