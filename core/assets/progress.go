package assets

import (
	"time"

	"go.uber.org/zap"
)

// ProgressTask tracks one running operation in the feedback sink.
type ProgressTask interface {
	// Update moves the task to progress (0..total) with an optional label.
	Update(progress float64, label string)
	// Close ends the task. A non-zero delay lets display sinks keep the
	// finished state visible briefly.
	Close(delay time.Duration)
}

// ProgressSink receives aggregate progress for refresh, ingest and clean
// passes. Implementations must be display-only: they must never call back
// into the coordinator (that would reenter the state machine).
type ProgressSink interface {
	Open(total float64, label string) ProgressTask
}

// LogSink reports progress through the application logger.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink that logs progress at debug level and
// completion at info level.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Open(total float64, label string) ProgressTask {
	s.logger.Info("Task started", zap.String("label", label), zap.Float64("total", total))
	return &logTask{logger: s.logger, label: label, total: total, started: time.Now()}
}

type logTask struct {
	logger  *zap.Logger
	label   string
	total   float64
	started time.Time
}

func (t *logTask) Update(progress float64, label string) {
	if label == "" {
		label = t.label
	}
	t.logger.Debug("Task progress",
		zap.String("label", label),
		zap.Float64("progress", progress),
		zap.Float64("total", t.total))
}

func (t *logTask) Close(delay time.Duration) {
	t.logger.Info("Task completed",
		zap.String("label", t.label),
		zap.Duration("duration", time.Since(t.started)))
}

// NopSink discards all progress.
type NopSink struct{}

func (NopSink) Open(total float64, label string) ProgressTask { return nopTask{} }

type nopTask struct{}

func (nopTask) Update(progress float64, label string) {}
func (nopTask) Close(delay time.Duration)             {}
