package stream

import "time"

// Policy decides how long to wait before the next session.
// The delay is fixed unless max is above base, in which case it doubles per
// consecutive failure up to max and falls back to base after a streaming session.
type Policy struct {
	base    time.Duration
	max     time.Duration
	current time.Duration
}

// NewPolicy creates a reconnection policy
func NewPolicy(base, max time.Duration) *Policy {
	return &Policy{
		base:    base,
		max:     max,
		current: base,
	}
}

// Next returns the delay to wait now and advances the backoff
func (p *Policy) Next() time.Duration {
	delay := p.current

	if p.max > p.base {
		p.current *= 2
		if p.current > p.max {
			p.current = p.max
		}
	}

	return delay
}

// Reset returns the delay to its base value
func (p *Policy) Reset() {
	p.current = p.base
}

// Backoff reports whether the delay grows between failures
func (p *Policy) Backoff() bool {
	return p.max > p.base
}
