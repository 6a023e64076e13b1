package diag

import (
	"github.com/rs/zerolog"
)

// ZerologLevel maps a diagnostics level onto the zerolog level used by Emit.
func (l Level) ZerologLevel() zerolog.Level {
	switch l {
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

func (e Entry) MarshalZerologObject(ev *zerolog.Event) {
	ev.Time("timestamp", e.Timestamp).
		Str("level", e.Level.String()).
		Str("message", e.Message)
}

func (l *Log) MarshalZerologArray(a *zerolog.Array) {
	if l == nil {
		return
	}
	for _, e := range l.entries {
		a.Object(e)
	}
}

// MarshalYAML serializes the log as a plain list of entries.
func (l *Log) MarshalYAML() (interface{}, error) {
	return l.Entries(), nil
}

// Emit writes every entry to logger at its mapped level, keeping the original
// entry timestamp under the "at" field.
func (l *Log) Emit(logger zerolog.Logger) {
	if l == nil {
		return
	}
	for _, e := range l.entries {
		logger.WithLevel(e.Level.ZerologLevel()).
			Time("at", e.Timestamp).
			Msg(e.Message)
	}
}
