package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
)

// Logger writes a leveled message with structured metadata
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Log levels, lowest first
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelRank = map[string]int{LevelDebug: 0, LevelInfo: 1, LevelWarn: 2, LevelError: 3}

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// StdLogger writes through the standard library logger as text or JSON lines
type StdLogger struct {
	logger   *log.Logger
	minLevel int
	json     bool
}

// NewStdLogger creates a logger writing to w. Unknown levels default to info.
func NewStdLogger(w io.Writer, level, format string) *StdLogger {
	min, ok := levelRank[strings.ToLower(level)]
	if !ok {
		min = levelRank[LevelInfo]
	}
	return &StdLogger{
		logger:   log.New(w, "", log.LstdFlags),
		minLevel: min,
		json:     strings.EqualFold(format, "json"),
	}
}

// Log writes the entry when its level is at or above the configured minimum
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	if rank < l.minLevel {
		return
	}

	if l.json {
		entry := make(map[string]interface{}, len(metadata)+2)
		for k, v := range metadata {
			entry[k] = v
		}
		entry["level"] = strings.ToLower(level)
		entry["msg"] = message
		data, err := json.Marshal(entry)
		if err != nil {
			l.logger.Printf("[%s] %s (metadata not encodable: %v)", strings.ToUpper(level), message, err)
			return
		}
		l.logger.Print(string(data))
		return
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", strings.ToUpper(level), message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	l.logger.Print(b.String())
}
