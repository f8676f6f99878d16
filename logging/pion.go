package logging

import (
	"fmt"
	"log/slog"

	pionlogging "github.com/pion/logging"
)

var _ pionlogging.LoggerFactory = (*PionLoggerFactory)(nil)

// PionLoggerFactory creates pion LeveledLoggers that write to slog.
type PionLoggerFactory struct {
	logger *slog.Logger
}

func NewPionLoggerFactory(logger *slog.Logger) *PionLoggerFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &PionLoggerFactory{logger: logger}
}

// NewLogger implements pionlogging.LoggerFactory.
func (f *PionLoggerFactory) NewLogger(scope string) pionlogging.LeveledLogger {
	return &pionLogger{sl: f.logger.With("scope", scope)}
}

type pionLogger struct {
	sl *slog.Logger
}

// Trace implements pionlogging.LeveledLogger.
func (p *pionLogger) Trace(msg string) {
	p.sl.Debug("pion-trace-log", "msg", msg)
}

// Tracef implements pionlogging.LeveledLogger.
func (p *pionLogger) Tracef(format string, args ...any) {
	p.sl.Debug("pion-trace-log", "msg", fmt.Sprintf(format, args...))
}

// Debug implements pionlogging.LeveledLogger.
func (p *pionLogger) Debug(msg string) {
	p.sl.Debug("pion-debug-log", "msg", msg)
}

// Debugf implements pionlogging.LeveledLogger.
func (p *pionLogger) Debugf(format string, args ...any) {
	p.sl.Debug("pion-debug-log", "msg", fmt.Sprintf(format, args...))
}

// Info implements pionlogging.LeveledLogger.
func (p *pionLogger) Info(msg string) {
	p.sl.Info("pion-info-log", "msg", msg)
}

// Infof implements pionlogging.LeveledLogger.
func (p *pionLogger) Infof(format string, args ...any) {
	p.sl.Info("pion-info-log", "msg", fmt.Sprintf(format, args...))
}

// Warn implements pionlogging.LeveledLogger.
func (p *pionLogger) Warn(msg string) {
	p.sl.Warn("pion-warn-log", "msg", msg)
}

// Warnf implements pionlogging.LeveledLogger.
func (p *pionLogger) Warnf(format string, args ...any) {
	p.sl.Warn("pion-warn-log", "msg", fmt.Sprintf(format, args...))
}

// Error implements pionlogging.LeveledLogger.
func (p *pionLogger) Error(msg string) {
	p.sl.Error("pion-error-log", "msg", msg)
}

// Errorf implements pionlogging.LeveledLogger.
func (p *pionLogger) Errorf(format string, args ...any) {
	p.sl.Error("pion-error-log", "msg", fmt.Sprintf(format, args...))
}
