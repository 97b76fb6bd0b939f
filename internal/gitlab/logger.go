package gitlab

import (
	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"
)

// requestLogger routes the request pipeline's log lines to a charmbracelet
// logger. Everything is logged at debug level: failed calls are reported by
// the engine with their stage message.
type requestLogger struct {
	log *log.Logger
}

var _ retryablehttp.LeveledLogger = (*requestLogger)(nil)

func newRequestLogger(l *log.Logger) *requestLogger {
	return &requestLogger{log: l.WithPrefix("gitlab")}
}

func (r *requestLogger) Error(msg string, keysAndValues ...interface{}) {
	r.log.Debug(msg, keysAndValues...)
}

func (r *requestLogger) Info(msg string, keysAndValues ...interface{}) {
	r.log.Debug(msg, keysAndValues...)
}

func (r *requestLogger) Debug(msg string, keysAndValues ...interface{}) {
	r.log.Debug(msg, keysAndValues...)
}

func (r *requestLogger) Warn(msg string, keysAndValues ...interface{}) {
	r.log.Debug(msg, keysAndValues...)
}
