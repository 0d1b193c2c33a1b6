package logs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Filter_Match(t *testing.T) {
	entry := Entry{
		Level:   LevelWarn,
		Message: "Upstream Timeout",
		Fields:  map[string]any{"route": "/api/users", "status": json.Number("504")},
	}

	tests := []struct {
		name     string
		filter   Filter
		expected bool
	}{
		{name: "all levels no query", filter: AllLevels(), expected: true},
		{name: "level disabled", filter: NewFilter([]string{"error"}, ""), expected: false},
		{name: "message case insensitive", filter: NewFilter([]string{"warn"}, "timeout"), expected: true},
		{name: "field value", filter: NewFilter([]string{"warn"}, "/API/"), expected: true},
		{name: "numeric field", filter: NewFilter([]string{"warn"}, "504"), expected: true},
		{name: "field keys are not searched", filter: NewFilter([]string{"warn"}, "route"), expected: false},
		{name: "no match", filter: NewFilter([]string{"warn"}, "database"), expected: false},
		{name: "level gate beats query", filter: NewFilter([]string{"info"}, "timeout"), expected: false},
		{name: "no levels", filter: NewFilter(nil, ""), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Match(entry))
		})
	}
}

func Test_Apply(t *testing.T) {
	entries := []Entry{
		{ID: 1, Level: LevelInfo, Message: "match me"},
		{ID: 2, Level: LevelError, Message: "other"},
		{ID: 3, Level: LevelDebug, Message: "match me too"},
	}

	t.Run("only enabled level regardless of query", func(t *testing.T) {
		got := Apply(entries, NewFilter([]string{"error"}, ""))
		assert.Equal(t, []uint64{2}, ids(got))

		got = Apply(entries, NewFilter([]string{"error"}, "match"))
		assert.Empty(t, got)
	})

	t.Run("preserves order", func(t *testing.T) {
		got := Apply(entries, AllLevels().WithQuery("MATCH"))
		assert.Equal(t, []uint64{1, 3}, ids(got))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := append([]Entry(nil), entries...)
		Apply(entries, NewFilter([]string{"info"}, "x"))
		assert.Equal(t, before, entries)
	})
}

func Test_Filter_Toggle(t *testing.T) {
	f := AllLevels()
	g := f.Toggle(LevelDebug)

	assert.True(t, f.IsEnabled(LevelDebug))
	assert.False(t, g.IsEnabled(LevelDebug))
	assert.Equal(t, []Level{LevelInfo, LevelWarn, LevelError}, g.Enabled())
	assert.True(t, g.Toggle(LevelDebug).IsEnabled(LevelDebug))
}

func Test_Filter_WithQuery(t *testing.T) {
	f := NewFilter([]string{"info", "bogus", " ERROR "}, "")
	g := f.WithQuery("db")

	assert.Empty(t, f.Query())
	assert.Equal(t, "db", g.Query())
	assert.Equal(t, []Level{LevelInfo, LevelError}, g.Enabled())
}

func Test_Filter_ZeroValue(t *testing.T) {
	var f Filter

	assert.False(t, f.Match(Entry{Level: LevelInfo}))
	assert.True(t, f.Toggle(LevelInfo).Match(Entry{Level: LevelInfo}))
}
