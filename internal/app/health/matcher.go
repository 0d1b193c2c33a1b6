package health

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"hatchlog/internal/app/errors"
)

// Matcher selects snapshots by a glob over "project/service"
type Matcher interface {
	Match(s Snapshot) bool
}

type matcher struct {
	pattern glob.Glob
	scoped  bool
}

// NewMatcher compiles a pattern. Patterns with a '/' match the full key;
// bare patterns match either the project or the service. Empty matches all.
func NewMatcher(pattern string) (Matcher, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		pattern = "*"
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", errors.ErrInvalidHealthPattern, pattern, err)
	}

	return &matcher{
		pattern: g,
		scoped:  strings.Contains(pattern, "/"),
	}, nil
}

// Match reports whether the snapshot is selected
func (m *matcher) Match(s Snapshot) bool {
	if m.scoped {
		return m.pattern.Match(s.Key())
	}

	return m.pattern.Match(s.Project) || m.pattern.Match(s.Service)
}

// Select returns the matching snapshots in their original order
func Select(snapshots []Snapshot, m Matcher) []Snapshot {
	out := make([]Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if m.Match(s) {
			out = append(out, s)
		}
	}

	return out
}
