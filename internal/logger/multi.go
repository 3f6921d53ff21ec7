package logger

import (
	"time"

	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/harrison/cleanfilenames/internal/rename"
)

// MultiLogger forwards every call to each of its loggers in order.
type MultiLogger struct {
	loggers []RunLogger
}

// NewMultiLogger combines loggers; nil entries are dropped.
func NewMultiLogger(loggers ...RunLogger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// LogRunStart forwards to every logger.
func (m *MultiLogger) LogRunStart(root string, mode rename.Mode, total int) {
	for _, l := range m.loggers {
		l.LogRunStart(root, mode, total)
	}
}

// LogOutcome forwards to every logger.
func (m *MultiLogger) LogOutcome(c *models.Candidate, index, total int) {
	for _, l := range m.loggers {
		l.LogOutcome(c, index, total)
	}
}

// LogSummary forwards to every logger.
func (m *MultiLogger) LogSummary(res *rename.Result, duration time.Duration) {
	for _, l := range m.loggers {
		l.LogSummary(res, duration)
	}
}
