package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LogLevel 日志级别
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

// Logger writes leveled entries to a file and fans them out to any
// subscriber channels. The pipeline takes a *Logger instead of printing
// directly, so tests can subscribe and assert on progress lines.
type Logger struct {
	file        *os.File
	filename    string
	maxSize     int64 // rotate above this many bytes; 0 = never
	mu          sync.Mutex
	subscribers []chan string
}

// NewLogger opens (or creates) the log file in append mode.
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:     file,
		filename: filename,
	}, nil
}

// SetMaxSize configures size-based rotation. The expression format matches
// the config file, e.g. "10 * 1024 * 1024".
func (l *Logger) SetMaxSize(expr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxSize = eval(expr)
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Log 记录日志
func (l *Logger) Log(level LogLevel, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := fmt.Sprintf("[%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		level.String(),
		message)

	l.file.WriteString(entry)
	l.checkRotate()

	for _, ch := range l.subscribers {
		select {
		case ch <- strings.TrimRight(entry, "\n"):
		default: // drop when a subscriber is not draining
		}
	}
}

func (l *Logger) checkRotate() {
	if l.maxSize <= 0 {
		return
	}

	info, err := l.file.Stat()
	if err != nil || info.Size() <= l.maxSize {
		return
	}

	l.file.Close()
	os.Rename(l.filename, fmt.Sprintf("%s.%s", l.filename, time.Now().Format("20060102150405")))

	l.file, err = os.OpenFile(l.filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		// keep running without a file; subscribers still get entries
		l.file, _ = os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
}

// Subscribe returns a buffered channel receiving every formatted entry.
func (l *Logger) Subscribe() <-chan string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan string, 100)
	l.subscribers = append(l.subscribers, ch)
	return ch
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// eval parses the "n * n * n" size expression from the config file.
func eval(expr string) int64 {
	parts := strings.Split(expr, " * ")
	var result int64 = 1
	for _, part := range parts {
		num, _ := strconv.Atoi(strings.TrimSpace(part))
		result *= int64(num)
	}
	return result
}

func (l *Logger) Debug(msg string)   { l.Log(DEBUG, msg) }
func (l *Logger) Info(msg string)    { l.Log(INFO, msg) }
func (l *Logger) Warning(msg string) { l.Log(WARNING, msg) }
func (l *Logger) Error(msg string)   { l.Log(ERROR, msg) }
func (l *Logger) Fatal(msg string)   { l.Log(FATAL, msg) }
