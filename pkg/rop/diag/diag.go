package diag

import (
	"fmt"
	"strings"
	"time"
)

type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Entry is a single immutable diagnostics record.
type Entry struct {
	Timestamp time.Time `yaml:"timestamp"`
	Level     Level     `yaml:"level"`
	Message   string    `yaml:"message"`
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s][%s] %s", e.Timestamp.Format(time.RFC3339Nano), e.Level, e.Message)
}

// Log is an ordered, append-only diagnostics trail. It is owned by a single
// run and is not safe for concurrent use.
type Log struct {
	entries []Entry
}

func New() *Log {
	return &Log{}
}

func (l *Log) Info(message string) {
	l.Add(Info, message)
}

func (l *Log) Warn(message string) {
	l.Add(Warning, message)
}

func (l *Log) Error(message string) {
	l.Add(Error, message)
}

func (l *Log) Infof(format string, args ...any) {
	l.Add(Info, fmt.Sprintf(format, args...))
}

func (l *Log) Warnf(format string, args ...any) {
	l.Add(Warning, fmt.Sprintf(format, args...))
}

func (l *Log) Errorf(format string, args ...any) {
	l.Add(Error, fmt.Sprintf(format, args...))
}

// Add appends an entry stamped with the current UTC time. Blank messages are
// silently dropped.
func (l *Log) Add(level Level, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	l.entries = append(l.entries, Entry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
	})
}

// Append copies other's entries after the entries already in l.
func (l *Log) Append(other *Log) {
	if other == nil {
		return
	}
	l.entries = append(l.entries, other.entries...)
}

// Entries returns a copy of the entries in insertion order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Last returns the newest entry.
func (l *Log) Last() (Entry, bool) {
	if l.Len() == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Contains reports whether any entry message contains substr.
func (l *Log) Contains(substr string) bool {
	if l == nil {
		return false
	}
	for _, e := range l.entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of l, or nil for a nil log.
func (l *Log) Clone() *Log {
	if l == nil {
		return nil
	}
	return &Log{entries: l.Entries()}
}

func (l *Log) String() string {
	if l == nil {
		return ""
	}
	lines := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}

// Merge concatenates logs in call order into a fresh log. Nil logs are
// skipped; if every log is nil the result is nil.
func Merge(logs ...*Log) *Log {
	var merged *Log
	for _, l := range logs {
		if l == nil {
			continue
		}
		if merged == nil {
			merged = New()
		}
		merged.Append(l)
	}
	return merged
}
