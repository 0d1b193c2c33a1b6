package logs

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Level is the severity of a log entry
type Level string

// Recognized severities
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Levels lists every recognized severity in display order
var Levels = []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}

// ParseLevel maps a raw level value onto a recognized severity, falling back to info
func ParseLevel(v any) Level {
	s, ok := v.(string)
	if !ok {
		return LevelInfo
	}

	switch level := Level(strings.ToLower(strings.TrimSpace(s))); level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return level
	default:
		return LevelInfo
	}
}

// Entry is one decoded log record. Entries are never mutated once created.
type Entry struct {
	ID        uint64
	Timestamp string
	Level     Level
	Message   string
	Fields    map[string]any
}

// Time parses the origin-supplied timestamp
func (e Entry) Time() (time.Time, bool) {
	if e.Timestamp == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// Field returns the string form of a field value
func (e Entry) Field(key string) (string, bool) {
	v, ok := e.Fields[key]
	if !ok {
		return "", false
	}

	return Stringify(v), true
}

// Stringify renders an arbitrary decoded JSON value as text
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}

		return string(data)
	}
}
