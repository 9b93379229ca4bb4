package util

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Output is a log destination.
type Output interface {
	Write(entry LogEntry) error
	Close() error
}

// LogEntry is a single log line before formatting.
type LogEntry struct {
	Timestamp time.Time
	Level     string
	Message   string
}

// Logger fans entries out to its outputs when they pass the level filter.
type Logger struct {
	level   LogLevel
	outputs []Output
	mu      sync.RWMutex
}

// NewLogger creates a logger writing to logFile and, when debugToConsole
// is set, to stderr as well.
func NewLogger(levelStr, logFile string, debugToConsole bool) *Logger {
	logger := &Logger{level: parseLogLevel(levelStr)}

	if debugToConsole {
		logger.outputs = append(logger.outputs, &writerOutput{w: os.Stderr})
	}
	if logFile != "" {
		if out, err := newFileOutput(logFile); err == nil {
			logger.outputs = append(logger.outputs, out)
		} else if !debugToConsole {
			// Last resort so logging never disappears entirely.
			logger.outputs = append(logger.outputs, &writerOutput{w: os.Stderr})
		}
	}
	return logger
}

func parseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
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

func (l *Logger) log(level LogLevel, levelName, msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level {
		return
	}
	entry := LogEntry{Timestamp: time.Now(), Level: levelName, Message: msg}
	for _, out := range l.outputs {
		_ = out.Write(entry)
	}
}

func (l *Logger) Debug(msg string) { l.log(LevelDebug, "DEBUG", msg) }
func (l *Logger) Info(msg string)  { l.log(LevelInfo, "INFO", msg) }
func (l *Logger) Warn(msg string)  { l.log(LevelWarn, "WARN", msg) }
func (l *Logger) Error(msg string) { l.log(LevelError, "ERROR", msg) }

// Close closes all outputs.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, out := range l.outputs {
		_ = out.Close()
	}
}

// writerOutput writes text-formatted entries to an io.Writer.
type writerOutput struct {
	w  io.Writer
	mu sync.Mutex
}

func (o *writerOutput) Write(entry LogEntry) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := fmt.Fprintf(o.w, "%s [%s] %s\n",
		entry.Timestamp.Format("2006/01/02 15:04:05"), entry.Level, entry.Message)
	return err
}

func (o *writerOutput) Close() error { return nil }

// fileOutput appends text-formatted entries to a log file.
type fileOutput struct {
	writerOutput
	file *os.File
}

func newFileOutput(path string) (Output, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	out := &fileOutput{file: file}
	out.w = file
	return out, nil
}

func (o *fileOutput) Close() error { return o.file.Close() }

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// InitLogger initializes the process-wide logger. Subsequent calls are
// no-ops.
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	loggerOnce.Do(func() {
		globalLogger = NewLogger(logLevel, logFile, debugToConsole)
	})
}

func LogDebug(msg string) {
	if globalLogger != nil {
		globalLogger.Debug(msg)
	}
}

func LogInfo(msg string) {
	if globalLogger != nil {
		globalLogger.Info(msg)
	}
}

func LogWarn(msg string) {
	if globalLogger != nil {
		globalLogger.Warn(msg)
	}
}

func LogError(msg string) {
	if globalLogger != nil {
		globalLogger.Error(msg)
	}
}
