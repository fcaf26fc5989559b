// Package observability provides structured logging, metrics and tracing
// for the board host: slog for logs, OpenTelemetry for metrics and spans.
//
// Everything is opt-in with no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds run context to a logger.
// Returns a new logger carrying run_id, board and instance fields.
func EnrichLogger(logger *slog.Logger, runID, board, instance string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("board", board),
		slog.String("instance", instance),
	)
}

// LogRunStart logs the start of a board run.
func LogRunStart(logger *slog.Logger, runID, board string) {
	if logger == nil {
		return
	}
	logger.Info("run starting",
		slog.String("run_id", runID),
		slog.String("board", board),
	)
}

// LogRunComplete logs a finished run with its outcome.
func LogRunComplete(logger *slog.Logger, runID, outcome string, durationMs float64, activations int) {
	if logger == nil {
		return
	}
	logger.Info("run finished",
		slog.String("run_id", runID),
		slog.String("outcome", outcome),
		slog.Float64("duration_ms", durationMs),
		slog.Int("activations", activations),
	)
}

// LogRunAborted logs an aborted run with its reason.
func LogRunAborted(logger *slog.Logger, runID string, err error, durationMs float64, lastInstance string) {
	if logger == nil {
		return
	}
	logger.Error("run aborted",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_instance", lastInstance),
	)
}

// LogActivation logs the start of a node activation.
func LogActivation(logger *slog.Logger, instance, node string) {
	if logger == nil {
		return
	}
	logger.Debug("node activating",
		slog.String("instance", instance),
		slog.String("node", node),
	)
}

// LogNodeResult logs a completed activation.
func LogNodeResult(logger *slog.Logger, instance, node, status, message string, durationMs float64) {
	if logger == nil {
		return
	}
	if status == "fail" {
		logger.Warn("node failed",
			slog.String("instance", instance),
			slog.String("node", node),
			slog.String("message", message),
			slog.Float64("duration_ms", durationMs),
		)
		return
	}
	logger.Debug("node completed",
		slog.String("instance", instance),
		slog.String("node", node),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDenial logs a capability gate denial. Denials are expected,
// node-handleable outcomes; they log at Info, not Error.
func LogDenial(logger *slog.Logger, instance, node, capability string) {
	if logger == nil {
		return
	}
	logger.Info("capability denied",
		slog.String("instance", instance),
		slog.String("node", node),
		slog.String("capability", capability),
	)
}
