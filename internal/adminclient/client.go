package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/HenrikHof/Portfolio/internal/admin"
)

var (
	// ErrUnauthorized means the session is missing or expired; the dashboard
	// redirects to the login entry point when it sees this.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("submission not found")
)

// Client is the typed dashboard client. It holds the session cookie and
// refetches both stats and the list after every mutation, which is how the
// dashboard keeps its counts consistent.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

func (c *Client) Login(ctx context.Context, username, password, secretCode string) error {
	body := map[string]string{
		"username":   username,
		"password":   password,
		"secretCode": secretCode,
	}
	return c.do(ctx, http.MethodPost, "/admin/auth", body, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/admin/auth", nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*admin.Stats, error) {
	var stats admin.Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Submissions(ctx context.Context, limit, offset int, unreadOnly bool) (*admin.ListResult, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if unreadOnly {
		query.Set("unread", "true")
	}

	path := "/admin/submissions"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result admin.ListResult
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SetRead(ctx context.Context, id int, read bool) error {
	body := map[string]interface{}{
		"id":   id,
		"read": read,
	}
	return c.do(ctx, http.MethodPatch, "/admin/submissions", body, nil)
}

// Refresh is the dashboard's full-refetch: stats and the first page together.
// Called on load and after every mutation.
func (c *Client) Refresh(ctx context.Context) (*admin.Stats, *admin.ListResult, error) {
	stats, err := c.Stats(ctx)
	if err != nil {
		return nil, nil, err
	}
	list, err := c.Submissions(ctx, 0, 0, false)
	if err != nil {
		return nil, nil, err
	}
	return stats, list, nil
}

// MarkRead toggles the flag and refetches, returning the fresh state.
func (c *Client) MarkRead(ctx context.Context, id int, read bool) (*admin.Stats, *admin.ListResult, error) {
	if err := c.SetRead(ctx, id, read); err != nil {
		return nil, nil, err
	}
	return c.Refresh(ctx)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
