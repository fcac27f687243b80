// Package controller talks to the logger API of a live robot controller.
package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/imishinist/logger-dev/internal/apierr"
	"github.com/imishinist/logger-dev/internal/config"
	"github.com/imishinist/logger-dev/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.Robot, "/"),
		httpClient: &http.Client{Timeout: cfg.ProxyTimeout},
	}, nil
}

// FileTree returns every operating mode on the controller with its runs.
func (c *Client) FileTree(ctx context.Context) (*models.FSResponse, error) {
	var resp models.FSResponse
	if err := c.get(ctx, "fs", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Runs returns the run identifiers recorded under opMode.
func (c *Client) Runs(ctx context.Context, opMode string) (*models.RunsResponse, error) {
	params := url.Values{}
	params.Set("opMode", opMode)

	var resp models.RunsResponse
	if err := c.get(ctx, "runs", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	target := c.baseURL + config.APIPrefix + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v: %w", err, apierr.ErrBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s request failed with status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
