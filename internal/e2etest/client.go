package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/myrjola/questapp/internal/quest"
)

// userIDHeader matches the identity header the server's middleware reads.
const userIDHeader = "X-User-ID"

// Client drives the quest JSON API as a single user.
type Client struct {
	client *http.Client
	url    string
	userID string
}

// NewClient creates an API client that sends every request as the given user.
func NewClient(url, userID string) *Client {
	return &Client{
		client: &http.Client{},
		url:    url,
		userID: userID,
	}
}

// WaitForReady polls the endpoint until it returns HTTP 200 or the 1-second
// budget runs out.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := time.Second
	startTime := time.Now()
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+urlPath, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		resp, err := c.client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return fmt.Errorf("timeout waiting for %s", urlPath)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// SaveProfile stores the coaching profile.
func (c *Client) SaveProfile(ctx context.Context, profile quest.Profile) error {
	return c.do(ctx, http.MethodPut, "/api/profile", profile, nil)
}

// GetProfile retrieves the coaching profile.
func (c *Client) GetProfile(ctx context.Context) (quest.Profile, error) {
	var profile quest.Profile
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profile)
	return profile, err
}

// GenerateQuest generates and stores the quest for a date.
func (c *Client) GenerateQuest(ctx context.Context, date string) (quest.Quest, error) {
	var q quest.Quest
	err := c.do(ctx, http.MethodPost, "/api/quests/"+date+"/generate", nil, &q)
	return q, err
}

// GetQuest retrieves the stored quest for a date.
func (c *Client) GetQuest(ctx context.Context, date string) (quest.Quest, error) {
	var q quest.Quest
	err := c.do(ctx, http.MethodGet, "/api/quests/"+date, nil, &q)
	return q, err
}

// GenerateWeek generates quests for seven days starting from a date.
func (c *Client) GenerateWeek(ctx context.Context, start string) ([]quest.Quest, error) {
	var quests []quest.Quest
	err := c.do(ctx, http.MethodPost, "/api/quests/"+start+"/generate-week", nil, &quests)
	return quests, err
}

// ListFoods retrieves the food catalog.
func (c *Client) ListFoods(ctx context.Context) (quest.Catalog, error) {
	var catalog quest.Catalog
	err := c.do(ctx, http.MethodGet, "/api/foods", nil, &catalog)
	return catalog, err
}

// do sends one JSON request and decodes a JSON response into out when given.
func (c *Client) do(ctx context.Context, method, urlPath string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(userIDHeader, c.userID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, urlPath, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, urlPath, resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
