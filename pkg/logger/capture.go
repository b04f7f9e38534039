package logger

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is a single captured log record.
type Entry struct {
	// Level is the record's level (debug, info, warn, error).
	Level string

	// Message is the log message.
	Message string

	// Fields holds the key-value pairs attached to the record.
	Fields map[string]interface{}
}

// CaptureLogger records log entries in memory.
//
// It lets tests assert on log content without depending on a global
// logger or parsing handler output.
type CaptureLogger struct {
	mu      sync.Mutex
	entries []Entry
	fields  []interface{}
}

// Capture returns a logger that records every entry in memory.
func Capture() *CaptureLogger {
	return &CaptureLogger{}
}

// Entries returns a copy of all captured entries.
func (c *CaptureLogger) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Contains reports whether any captured message contains substr.
func (c *CaptureLogger) Contains(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Reset discards all captured entries.
func (c *CaptureLogger) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

func (c *CaptureLogger) record(level, msg string, keysAndValues []interface{}) {
	fields := make(map[string]interface{})

	all := make([]interface{}, 0, len(c.fields)+len(keysAndValues))
	all = append(all, c.fields...)
	all = append(all, keysAndValues...)

	for i := 0; i+1 < len(all); i += 2 {
		key, ok := all[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", all[i])
		}
		fields[key] = all[i+1]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
}

// Debug implements Logger.Debug.
func (c *CaptureLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.record("debug", msg, keysAndValues)
}

// Info implements Logger.Info.
func (c *CaptureLogger) Info(msg string, keysAndValues ...interface{}) {
	c.record("info", msg, keysAndValues)
}

// Warn implements Logger.Warn.
func (c *CaptureLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.record("warn", msg, keysAndValues)
}

// Error implements Logger.Error.
func (c *CaptureLogger) Error(msg string, keysAndValues ...interface{}) {
	c.record("error", msg, keysAndValues)
}

// With implements Logger.With.
//
// The returned logger shares the same entry buffer, so entries logged
// through it remain visible via Entries on the parent.
func (c *CaptureLogger) With(keysAndValues ...interface{}) Logger {
	return &captureChild{
		parent: c,
		fields: append(append([]interface{}{}, c.fields...), keysAndValues...),
	}
}

// captureChild forwards records to the parent capture logger with
// pre-bound fields.
type captureChild struct {
	parent *CaptureLogger
	fields []interface{}
}

func (c *captureChild) merged(keysAndValues []interface{}) []interface{} {
	out := make([]interface{}, 0, len(c.fields)+len(keysAndValues))
	out = append(out, c.fields...)
	return append(out, keysAndValues...)
}

func (c *captureChild) Debug(msg string, keysAndValues ...interface{}) {
	c.parent.record("debug", msg, c.merged(keysAndValues))
}

func (c *captureChild) Info(msg string, keysAndValues ...interface{}) {
	c.parent.record("info", msg, c.merged(keysAndValues))
}

func (c *captureChild) Warn(msg string, keysAndValues ...interface{}) {
	c.parent.record("warn", msg, c.merged(keysAndValues))
}

func (c *captureChild) Error(msg string, keysAndValues ...interface{}) {
	c.parent.record("error", msg, c.merged(keysAndValues))
}

func (c *captureChild) With(keysAndValues ...interface{}) Logger {
	return &captureChild{
		parent: c.parent,
		fields: append(append([]interface{}{}, c.fields...), keysAndValues...),
	}
}
