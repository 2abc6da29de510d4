package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
	ctrl "sigs.k8s.io/controller-runtime"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// ParseLevel converts a textual level (debug, info, warn, warning, error) into a LogLevel.
// Unknown values fall back to LevelInfo.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	defaultLogger  *slog.Logger
	fallbackOutput io.Writer = os.Stderr
	level                    = new(slog.LevelVar)
	runID          string
)

// InitForCLI initializes the logging system for CLI mode.
// This should be called once at application startup, before any command runs.
// Every record carries a "run" attribute identifying the current invocation.
// Output from controller-runtime and client-go (klog) is routed through the
// same handler.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	level.Set(filterLevel.SlogLevel())
	opts := &slog.HandlerOptions{
		Level: level,
	}

	runID = uuid.NewString()
	handler := slog.NewTextHandler(output, opts).WithAttrs([]slog.Attr{
		slog.String("run", runID),
	})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)

	initKubernetesLoggers(handler)
}

// initKubernetesLoggers points controller-runtime and klog at the given handler.
func initKubernetesLoggers(handler slog.Handler) {
	if handler == nil {
		return
	}
	ctrl.SetLogger(logr.FromSlogHandler(handler))
	klog.SetSlogLogger(slog.New(handler))
}

// SetLevel changes the filter level of an initialized logger.
// Settings loaded after start-up (RACY_VERBOSE) use it to raise verbosity.
func SetLevel(filterLevel LogLevel) {
	level.Set(filterLevel.SlogLevel())
}

// RunID returns the identifier of the current invocation, or an empty string
// when logging has not been initialized.
func RunID() string {
	return runID
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	if defaultLogger == nil {
		if level < LevelWarn {
			return
		}
		msg := fmt.Sprintf(messageFmt, args...)
		if err != nil {
			msg += ": " + err.Error()
		}
		fmt.Fprintf(fallbackOutput, "[%s] %s: %s\n", level, subsystem, msg)
		return
	}
	if !defaultLogger.Enabled(context.Background(), level.SlogLevel()) {
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	slogAttrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		slogAttrs = append(slogAttrs, slog.String("error", err.Error()))
	}

	defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, slogAttrs...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}
