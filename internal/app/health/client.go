package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"hatchlog/internal/app/errors"
	"hatchlog/internal/app/transport"
)

// Client fetches the health snapshot list
type Client interface {
	Fetch(ctx context.Context) ([]Snapshot, error)
}

type client struct {
	url  string
	doer transport.Doer
}

// NewClient creates a health client for the given endpoint
func NewClient(url string, doer transport.Doer) Client {
	return &client{url: url, doer: doer}
}

// Fetch returns the current list; a null or empty body is zero snapshots
func (c *client) Fetch(ctx context.Context) ([]Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToCreateRequest, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.Body == nil {
		return nil, errors.ErrMissingResponseBody
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnexpectedStatus, resp.Status)
	}

	var snapshots []Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshots); err != nil {
		if errors.Is(err, io.EOF) {
			return []Snapshot{}, nil
		}

		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToDecodeResponse, err)
	}

	if snapshots == nil {
		snapshots = []Snapshot{}
	}

	return snapshots, nil
}
