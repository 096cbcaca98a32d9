// Package remote implements the team builder store on top of the Local Team Builder HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FlagBrew/local-teambuilder/internal/models"
)

const apiPrefix = "/api/v1"

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the server.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	httpClient httpDoer
}

func NewClient(cfg Config) *Client {
	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + apiPrefix,
		httpClient: doer,
	}
}

// StatusError is returned when the server replies with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote: unexpected status %d: %s", e.StatusCode, e.Message)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var sErr *StatusError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		var reply struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &reply) == nil && reply.Error != "" {
			msg = reply.Error
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListCatalog(ctx context.Context) ([]models.CatalogEntry, error) {
	entries := []models.CatalogEntry{}
	if err := c.do(ctx, http.MethodGet, "/catalog", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) InsertCatalog(ctx context.Context, entries ...models.CatalogEntry) error {
	switch len(entries) {
	case 0:
		return nil
	case 1:
		return c.do(ctx, http.MethodPost, "/catalog", entries[0], nil)
	default:
		return c.do(ctx, http.MethodPost, "/catalog/bulk", map[string]any{"entries": entries}, nil)
	}
}

func (c *Client) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	members := []models.Membership{}
	if err := c.do(ctx, http.MethodGet, "/team", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) InsertMembership(ctx context.Context, member models.Membership) error {
	return c.do(ctx, http.MethodPost, "/team", member, nil)
}

func (c *Client) DeleteMembership(ctx context.Context, entryID int) error {
	return c.do(ctx, http.MethodDelete, "/team/"+strconv.Itoa(entryID), nil, nil)
}

func (c *Client) UpdateNickname(ctx context.Context, entryID int, nickname string) error {
	return c.do(ctx, http.MethodPatch, "/team/"+strconv.Itoa(entryID), map[string]string{"nickname": nickname}, nil)
}
