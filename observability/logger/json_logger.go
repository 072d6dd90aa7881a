// Package logger provides the structured JSON logger used across the service.
// Every entry is a single JSON object with a consistent field set, ready for
// Loki or any other line-oriented log aggregator.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"recontracker/observability/types"
)

// LogLevel represents the severity level of a log message.
// Higher values indicate more severe messages.
type LogLevel int

// Log level constants ordered by severity (lowest to highest).
const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel converts a string representation to a LogLevel.
// Unrecognized levels default to InfoLevel.
func ParseLevel(level string) LogLevel {
	switch level {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// String returns the string representation of a LogLevel.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// JSONLogger implements types.Logger with one JSON object per line.
// Each entry carries timestamp, level, service, env, hostname and message,
// plus request_id, trace_id and route when the context holds them.
type JSONLogger struct {
	// mu is shared by every logger derived through WithFields.
	mu               *sync.Mutex
	output           io.Writer
	serviceName      string
	environment      string
	hostname         string
	minLevel         LogLevel
	persistentFields types.Fields
}

// New creates a JSONLogger. If output is nil, it defaults to os.Stdout.
//
// Example:
//
//	logger := New("recon-tracker.api", "production", "info", os.Stdout,
//		types.Fields{"version": "1.0.0"})
func New(serviceName, environment, logLevel string, output io.Writer, additionalFields types.Fields) *JSONLogger {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	if output == nil {
		output = os.Stdout
	}

	fields := make(types.Fields, len(additionalFields))
	for k, v := range additionalFields {
		fields[k] = v
	}

	return &JSONLogger{
		mu:               &sync.Mutex{},
		output:           output,
		serviceName:      serviceName,
		environment:      environment,
		hostname:         hostname,
		minLevel:         ParseLevel(logLevel),
		persistentFields: fields,
	}
}

// Info logs at INFO level.
func (l *JSONLogger) Info(ctx context.Context, msg string, fields types.Fields) {
	if l.minLevel > InfoLevel {
		return
	}
	l.log(ctx, InfoLevel, msg, nil, fields)
}

// Error logs at ERROR level. The error message and its dynamic type are both
// recorded.
func (l *JSONLogger) Error(ctx context.Context, msg string, err error, fields types.Fields) {
	if l.minLevel > ErrorLevel {
		return
	}
	l.log(ctx, ErrorLevel, msg, err, fields)
}

// Warn logs at WARN level.
func (l *JSONLogger) Warn(ctx context.Context, msg string, fields types.Fields) {
	if l.minLevel > WarnLevel {
		return
	}
	l.log(ctx, WarnLevel, msg, nil, fields)
}

// Debug logs at DEBUG level.
func (l *JSONLogger) Debug(ctx context.Context, msg string, fields types.Fields) {
	if l.minLevel > DebugLevel {
		return
	}
	l.log(ctx, DebugLevel, msg, nil, fields)
}

// WithFields returns a new logger sharing this logger's output and
// configuration, with fields added to every entry.
//
// Example:
//
//	requestLogger := logger.WithFields(types.Fields{"request_id": "abc-123"})
//	requestLogger.Info(ctx, "Listing programs", nil)
func (l *JSONLogger) WithFields(fields types.Fields) types.Logger {
	newFields := make(types.Fields, len(l.persistentFields)+len(fields))
	for k, v := range l.persistentFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &JSONLogger{
		mu:               l.mu,
		output:           l.output,
		serviceName:      l.serviceName,
		environment:      l.environment,
		hostname:         l.hostname,
		minLevel:         l.minLevel,
		persistentFields: newFields,
	}
}

// log assembles the entry. Precedence, lowest to highest: standard fields,
// context values, persistent fields, call-specific fields.
func (l *JSONLogger) log(ctx context.Context, level LogLevel, msg string, err error, fields types.Fields) {
	entry := make(types.Fields, 8+len(l.persistentFields)+len(fields))

	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["service"] = l.serviceName
	entry["env"] = l.environment
	entry["hostname"] = l.hostname
	entry["message"] = msg

	if ctx != nil {
		for _, key := range []types.ContextKey{types.RequestIDKey, types.TraceIDKey, types.RouteKey} {
			if value, ok := ctx.Value(key).(string); ok && value != "" {
				entry[string(key)] = value
			}
		}
	}

	if err != nil {
		entry["error"] = err.Error()
		entry["error_type"] = fmt.Sprintf("%T", err)
	}

	for k, v := range l.persistentFields {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}

	jsonBytes, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		return
	}

	// One Write per entry.
	jsonBytes = append(jsonBytes, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.output.Write(jsonBytes)
}
