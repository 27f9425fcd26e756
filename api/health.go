package api

import (
	"context"
	"net/http"
)

// HealthStatus is the backend liveness report
type HealthStatus struct {
	Status string `json:"status"`
}

// Health checks backend liveness; no credential required
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, &request{method: http.MethodGet, path: "/health"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
