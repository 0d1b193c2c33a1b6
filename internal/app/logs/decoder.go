package logs

import (
	"encoding/json"
	"io"
	"strings"
	"sync/atomic"
)

// Wire keys with special meaning; everything else lands in Entry.Fields
const (
	KeyTime      = "time"
	KeyTimestamp = "timestamp"
	KeyLevel     = "level"
	KeyMessage   = "message"

	dataPrefix = "data:"
)

// Decoder turns framed stream records into entries and assigns their ids.
// One decoder lives as long as its tailer so ids keep increasing across reconnects.
type Decoder struct {
	lastID  atomic.Uint64
	dropped atomic.Uint64
}

// NewDecoder creates a decoder whose first entry gets id 1
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses one record. Malformed records return false and are counted, never reported.
func (d *Decoder) Decode(line string) (Entry, bool) {
	payload := stripPrefix(strings.TrimSpace(line))
	if payload == "" {
		return Entry{}, false
	}

	data, ok := decodeObject(payload)
	if !ok {
		d.dropped.Add(1)
		return Entry{}, false
	}

	entry := Entry{
		Timestamp: firstString(data, KeyTime, KeyTimestamp),
		Level:     ParseLevel(data[KeyLevel]),
		Message:   firstString(data, KeyMessage),
	}

	for _, key := range []string{KeyTime, KeyTimestamp, KeyLevel, KeyMessage} {
		delete(data, key)
	}

	entry.Fields = data
	entry.ID = d.lastID.Add(1)

	return entry, true
}

// LastID returns the most recently assigned id
func (d *Decoder) LastID() uint64 {
	return d.lastID.Load()
}

// Dropped returns how many non-empty records failed to decode
func (d *Decoder) Dropped() uint64 {
	return d.dropped.Load()
}

// stripPrefix removes the event-stream "data:" field name and its optional single space
func stripPrefix(line string) string {
	if !strings.HasPrefix(line, dataPrefix) {
		return line
	}

	line = strings.TrimPrefix(line, dataPrefix)
	line = strings.TrimPrefix(line, " ")

	return strings.TrimSpace(line)
}

// decodeObject accepts exactly one JSON object and nothing after it
func decodeObject(payload string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil || data == nil {
		return nil, false
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	return data, true
}

// firstString returns the string form of the first key holding a non-null value
func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key]; ok && v != nil {
			return Stringify(v)
		}
	}

	return ""
}
