package snapshot

import (
	"context"
	"fmt"

	"Wallboard/internal/domain/models"
	drepo "Wallboard/internal/domain/repository"
	httpx "Wallboard/pkg/http"
)

// Client fetches the latest market snapshot over HTTP.
type Client struct {
	http *httpx.Client
	url  string
}

// New creates a SnapshotSource for baseURL+path.
func New(client *httpx.Client, baseURL, path string) drepo.SnapshotSource {
	return &Client{http: client, url: baseURL + path}
}

// Fetch performs one GET with no retries. Errors keep their pkg/http type
// (*TransportError, *HTTPError, *DecodeError) through the wrapping.
func (c *Client) Fetch(ctx context.Context) (*models.Snapshot, error) {
	var s models.Snapshot
	err := c.http.SendAndParse(ctx, &httpx.RequestOptions{
		Method:  httpx.MethodGet,
		URL:     c.url,
		Headers: map[string]string{"Accept": "application/json"},
	}, &s)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	return &s, nil
}
