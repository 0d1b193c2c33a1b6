package health

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the health of one routed service
type Status string

// Known statuses; anything else decodes as unknown
const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// UnmarshalJSON maps unrecognized values onto StatusUnknown
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = StatusUnknown
		return nil
	}

	switch status := Status(strings.ToLower(strings.TrimSpace(raw))); status {
	case StatusHealthy, StatusUnhealthy:
		*s = status
	default:
		*s = StatusUnknown
	}

	return nil
}

// Snapshot is the daemon's latest health check for one (project, service) route
type Snapshot struct {
	Project   string    `json:"project"`
	Service   string    `json:"service"`
	Status    Status    `json:"status"`
	Addr      string    `json:"addr"`
	Since     time.Time `json:"since"`
	LastCheck time.Time `json:"last_check"`
}

// Key returns the "project/service" form used for matching and display
func (s Snapshot) Key() string {
	return s.Project + "/" + s.Service
}
