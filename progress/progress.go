// Package progress appends timestamped phase messages to the job log file.
package progress

import (
	"fmt"
	"os"
	"time"
)

// TimestampFormat is the layout of the timestamp prefixing every log line
const TimestampFormat = "2006-01-02 15:04:05"

// Logger appends one line per message to a file. The file is opened and
// closed on every call; no handle is held between messages.
type Logger struct {
	path string
	now  func() time.Time
}

// NewLogger creates a logger writing to path
func NewLogger(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// Path returns the log file path
func (l *Logger) Path() string {
	return l.path
}

// Log appends "<timestamp> - <message>" to the log file, creating it if needed
func (l *Logger) Log(message string) error {
	line := fmt.Sprintf("%s - %s\n", l.now().Format(TimestampFormat), message)

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return file.Close()
}
