// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"
)

// Observer receives one call per completed round trip. status is 0 when the
// transport failed before a response arrived.
type Observer interface {
	ObserveRequest(ctx context.Context, method string, status int, duration time.Duration)
}

type Client struct {
	httpClient *http.Client
	observers  []Observer
}

func NewClient(timeout time.Duration, observers ...Observer) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observers: observers,
	}
}

// NewClientWith wraps an existing *http.Client, typically an httptest server client.
func NewClientWith(hc *http.Client, observers ...Observer) *Client {
	return &Client{httpClient: hc, observers: observers}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.DoWithContext(req.Context(), req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	start := time.Now()
	resp, err := c.httpClient.Do(req)

	status := 0
	if err == nil {
		status = resp.StatusCode
	}
	for _, o := range c.observers {
		o.ObserveRequest(ctx, req.Method, status, time.Since(start))
	}
	return resp, err
}
