// Package logtest has loggers for tests that need to check what was logged.
package logtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jacobpatterson1549/selene-arena/server/log"
)

type (
	// discardLogger drops every message.
	discardLogger struct{}

	// Logger records each message so tests can inspect them.  It is safe for concurrent use.
	Logger struct {
		mu       sync.Mutex
		messages []string
	}
)

// DiscardLogger is used by tests that do not care what is logged.
var DiscardLogger log.Logger = discardLogger{}

var _ log.Logger = (*Logger)(nil)

// NewLogger creates an empty Logger.
func NewLogger() *Logger {
	return new(Logger)
}

// Printf does nothing.
func (discardLogger) Printf(format string, v ...interface{}) {
	// NOOP
}

// Printf records the formatted message.
func (l *Logger) Printf(format string, v ...interface{}) {
	m := fmt.Sprintf(format, v...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, m)
}

// Messages is a copy of the recorded messages, oldest first.
func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// String joins the recorded messages with newlines.
func (l *Logger) String() string {
	return strings.Join(l.Messages(), "\n")
}

// Contains determines if any recorded message has the text.
func (l *Logger) Contains(text string) bool {
	for _, m := range l.Messages() {
		if strings.Contains(m, text) {
			return true
		}
	}
	return false
}

// Empty determines if nothing was logged.
func (l *Logger) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages) == 0
}

// Reset forgets the recorded messages.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}
