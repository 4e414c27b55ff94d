// Package log provides structured logging for mdwloc.
//
// Loggers are immutable from the caller's point of view: WithField,
// WithCorrelationID and friends return specialised copies that share the
// underlying writer. Entries are rendered as JSON, plain text or colored
// console lines.
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelInfo, Format: log.FormatText})
//	runLog := logger.WithCorrelationID(runID).WithField("component", "driver")
//	runLog.Info("generation started", log.Fields{"documents": 12})
package log
