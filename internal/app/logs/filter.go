package logs

import (
	"maps"
	"slices"
	"strings"
)

// Filter is the view parameter applied to a buffer snapshot. It never touches the buffer.
type Filter struct {
	levels map[Level]bool
	query  string
}

// NewFilter creates a filter enabling the given levels; unknown names are ignored
func NewFilter(levels []string, query string) Filter {
	f := Filter{
		levels: make(map[Level]bool, len(Levels)),
		query:  query,
	}

	for _, name := range levels {
		level := Level(strings.ToLower(strings.TrimSpace(name)))
		if slices.Contains(Levels, level) {
			f.levels[level] = true
		}
	}

	return f
}

// AllLevels creates a filter with every level enabled and no query
func AllLevels() Filter {
	f := Filter{levels: make(map[Level]bool, len(Levels))}
	for _, level := range Levels {
		f.levels[level] = true
	}

	return f
}

// IsEnabled reports whether entries of the given level pass
func (f Filter) IsEnabled(level Level) bool {
	return f.levels[level]
}

// Toggle returns a copy with the level flipped
func (f Filter) Toggle(level Level) Filter {
	next := f.clone()
	if next.levels[level] {
		delete(next.levels, level)
	} else {
		next.levels[level] = true
	}

	return next
}

// WithQuery returns a copy with the search text replaced
func (f Filter) WithQuery(query string) Filter {
	next := f.clone()
	next.query = query

	return next
}

// Query returns the search text
func (f Filter) Query() string {
	return f.query
}

// Enabled returns the enabled levels in display order
func (f Filter) Enabled() []Level {
	out := make([]Level, 0, len(f.levels))
	for _, level := range Levels {
		if f.levels[level] {
			out = append(out, level)
		}
	}

	return out
}

// Match reports whether one entry is visible under the filter
func (f Filter) Match(entry Entry) bool {
	if !f.levels[entry.Level] {
		return false
	}

	if f.query == "" {
		return true
	}

	q := strings.ToLower(f.query)

	if strings.Contains(strings.ToLower(entry.Message), q) {
		return true
	}

	for _, v := range entry.Fields {
		if strings.Contains(strings.ToLower(Stringify(v)), q) {
			return true
		}
	}

	return false
}

// Apply returns the visible subsequence of entries, preserving order
func Apply(entries []Entry, f Filter) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if f.Match(entry) {
			out = append(out, entry)
		}
	}

	return out
}

func (f Filter) clone() Filter {
	levels := maps.Clone(f.levels)
	if levels == nil {
		levels = make(map[Level]bool, len(Levels))
	}

	return Filter{levels: levels, query: f.query}
}
