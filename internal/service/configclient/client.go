// Package configclient talks to the admin configuration endpoint of the
// snapshot backend.
package configclient

import (
	"context"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	httpx "Wallboard/pkg/http"
)

// DataModes lists the accepted upstream data sources.
var DataModes = []string{"wind", "open", "mock"}

// RemoteConfig is the runtime configuration held by the backend.
type RemoteConfig struct {
	DataMode string `json:"data_mode" default:"mock" validate:"required,oneof=wind open mock"`
}

type Client struct {
	http     *httpx.Client
	url      string
	validate *validator.Validate
}

// New creates a client for baseURL+path.
func New(client *httpx.Client, baseURL, path string) *Client {
	return &Client{http: client, url: baseURL + path, validate: validator.New()}
}

// Get reads the current configuration. A missing data_mode reads as "mock".
func (c *Client) Get(ctx context.Context) (*RemoteConfig, error) {
	var rc RemoteConfig
	err := c.http.SendAndParse(ctx, &httpx.RequestOptions{
		Method: httpx.MethodGet,
		URL:    c.url,
	}, &rc)
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	if err := defaults.Set(&rc); err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &rc, nil
}

// SetDataMode validates mode locally before posting it.
func (c *Client) SetDataMode(ctx context.Context, mode string) (*RemoteConfig, error) {
	req := RemoteConfig{DataMode: mode}
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid data_mode %q: must be one of %v", mode, DataModes)
	}

	var rc RemoteConfig
	err := c.http.SendAndParse(ctx, &httpx.RequestOptions{
		Method: httpx.MethodPost,
		URL:    c.url,
		Body:   req,
	}, &rc)
	if err != nil {
		return nil, fmt.Errorf("set config: %w", err)
	}
	return &rc, nil
}
