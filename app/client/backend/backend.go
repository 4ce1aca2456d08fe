// Package backend wraps the assistant backend's REST surface in typed
// calls. Transport failures come back as errors for the caller to
// translate into user-visible apologies; response text is never
// interpreted here.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"dashmate/app/config"
	"dashmate/app/service/history"

	"github.com/samber/do"
	"github.com/samber/oops"
)

// ErrSessionExpired signals an HTTP 401 from the backend. The caller
// treats it as a forced-logout condition; this client only detects it.
var ErrSessionExpired = errors.New("backend session expired")

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
	}, nil
}

// Process sends one free-text command and returns the raw agent reply.
func (c *Client) Process(ctx context.Context, text string, location *Location) (*AgentReply, error) {
	request := processRequest{
		Text:         text,
		UserID:       c.cfg.Backend.UserID,
		UserLocation: location,
	}

	var reply AgentReply
	if err := c.doJSON(ctx, http.MethodPost, "/api/voice/process", request, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// Memory fetches the persisted interaction log for a user.
func (c *Client) Memory(ctx context.Context, userID string) ([]history.Interaction, error) {
	var response memoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/memory/"+userID, nil, &response); err != nil {
		return nil, err
	}

	interactions := make([]history.Interaction, 0, len(response.RecentInteractions))
	for _, wire := range response.RecentInteractions {
		interactions = append(interactions, wire.toInteraction())
	}

	return interactions, nil
}

func (c *Client) VehicleStatus(ctx context.Context) (map[string]any, error) {
	var status map[string]any
	path := fmt.Sprintf("/api/vehicle/status?user_id=%s", c.cfg.Backend.UserID)

	if err := c.doJSON(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, err
	}

	return status, nil
}

func (c *Client) VehicleCommand(ctx context.Context, command string, parameters map[string]any) (*AgentReply, error) {
	request := map[string]any{
		"command":    command,
		"user_id":    c.cfg.Backend.UserID,
		"parameters": parameters,
	}

	var reply AgentReply
	if err := c.doJSON(ctx, http.MethodPost, "/api/vehicle/command", request, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

func (c *Client) Weather(ctx context.Context, latitude, longitude float64) (map[string]any, error) {
	var report map[string]any
	path := fmt.Sprintf("/api/weather/current?lat=%f&lon=%f", latitude, longitude)

	if err := c.doJSON(ctx, http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}

	return report, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return oops.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Backend.BaseURL+path, reader)
	if err != nil {
		return oops.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return oops.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}

	if resp.StatusCode != http.StatusOK {
		return oops.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return oops.Errorf("failed to decode response from %s: %w", path, err)
	}

	return nil
}
