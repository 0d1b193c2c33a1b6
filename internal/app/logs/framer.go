package logs

import "bytes"

// MaxLineSize bounds a single framed record; longer records are discarded
const MaxLineSize = 1 << 20

// Framer splits a chunked byte stream into newline-delimited records.
// A trailing partial record is held until the next chunk completes it.
type Framer struct {
	pending    []byte
	discarding bool
	oversized  int
}

// NewFramer creates an empty framer
func NewFramer() *Framer {
	return &Framer{}
}

// Push feeds the next chunk and returns every record it completes, in order
func (f *Framer) Push(chunk []byte) []string {
	var lines []string

	for len(chunk) > 0 {
		idx := bytes.IndexByte(chunk, '\n')
		if idx < 0 {
			f.hold(chunk)
			break
		}

		part := chunk[:idx]
		chunk = chunk[idx+1:]

		if f.discarding {
			f.discarding = false
			continue
		}

		if len(f.pending)+len(part) > MaxLineSize {
			f.pending = f.pending[:0]
			f.oversized++

			continue
		}

		var line []byte
		if len(f.pending) > 0 {
			line = append(f.pending, part...)
			f.pending = nil
		} else {
			line = part
		}

		lines = append(lines, string(bytes.TrimSuffix(line, []byte{'\r'})))
	}

	return lines
}

// Flush returns the held partial record, if any, and clears it
func (f *Framer) Flush() (string, bool) {
	if f.discarding || len(f.pending) == 0 {
		f.Reset()
		return "", false
	}

	line := string(bytes.TrimSuffix(f.pending, []byte{'\r'}))
	f.pending = nil

	return line, true
}

// Reset drops any held fragment
func (f *Framer) Reset() {
	f.pending = nil
	f.discarding = false
}

// Pending returns the size of the held fragment in bytes
func (f *Framer) Pending() int {
	return len(f.pending)
}

// Oversized returns how many records were discarded for exceeding MaxLineSize
func (f *Framer) Oversized() int {
	return f.oversized
}

// hold appends an unterminated fragment, switching to discard mode once it grows past the limit
func (f *Framer) hold(fragment []byte) {
	if f.discarding {
		return
	}

	if len(f.pending)+len(fragment) > MaxLineSize {
		f.pending = nil
		f.discarding = true
		f.oversized++

		return
	}

	f.pending = append(f.pending, fragment...)
}
