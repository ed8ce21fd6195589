// Package remote talks to a staffplan server over its /v1 API.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/theirongolddev/staffplan/internal/daemon"
	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the server rejected the token.
	ErrUnauthorized = errors.New("remote: unauthorized (token missing or invalid)")
	// ErrNotFound is returned when the server has no such proposal.
	ErrNotFound = document.ErrNotFound
)

// Client is a document.Store backed by a staffplan server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ document.Store = (*Client)(nil)

// NewClient creates a client for baseURL. Returns nil if the URL is empty.
func NewClient(baseURL, token string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: baseURL,
		token:   strings.TrimSpace(token),
		http:    &http.Client{},
	}
}

// Save uploads p and returns the stored version.
func (c *Client) Save(ctx context.Context, p model.Proposal) (document.SaveResult, error) {
	doc, err := document.Encode(p)
	if err != nil {
		return document.SaveResult{}, err
	}
	body, err := c.do(ctx, http.MethodPost, "/v1/proposals", doc)
	if err != nil {
		return document.SaveResult{}, err
	}

	var res document.SaveResult
	if err := json.Unmarshal(body, &res); err != nil {
		return document.SaveResult{}, fmt.Errorf("remote: parsing save result: %w", err)
	}
	return res, nil
}

// Load fetches the latest version of id.
func (c *Client) Load(ctx context.Context, id string) (model.Proposal, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/proposals/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Proposal{}, err
	}
	return document.Decode(body)
}

// List returns the server's proposal listing.
func (c *Client) List(ctx context.Context) ([]document.Entry, error) {
	var entries []document.Entry
	if err := c.getJSON(ctx, "/v1/proposals", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes id on the server.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/v1/proposals/"+url.PathEscape(id), nil)
	return err
}

// Versions lists the saved versions of id.
func (c *Client) Versions(ctx context.Context, id string) ([]document.Version, error) {
	var versions []document.Version
	if err := c.getJSON(ctx, "/v1/proposals/"+url.PathEscape(id)+"/versions", &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// Project asks the server to project p for view.
func (c *Client) Project(ctx context.Context, p model.Proposal, view string) (model.Projection, error) {
	doc, err := document.Encode(p)
	if err != nil {
		return model.Projection{}, err
	}
	path := "/v1/projections"
	if view != "" {
		path += "?view=" + url.QueryEscape(view)
	}
	body, err := c.do(ctx, http.MethodPost, path, doc)
	if err != nil {
		return model.Projection{}, err
	}

	var proj model.Projection
	if err := json.Unmarshal(body, &proj); err != nil {
		return model.Projection{}, fmt.Errorf("remote: parsing projection: %w", err)
	}
	return proj, nil
}

// Status fetches the server's runtime status.
func (c *Client) Status(ctx context.Context) (daemon.Status, error) {
	var st daemon.Status
	err := c.getJSON(ctx, "/v1/status", &st)
	return st, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("remote: parsing %s: %w", path, err)
	}
	return nil
}

// do performs an authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("remote: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/staffplan/1.0")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("remote: reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, serverMessage(body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("remote: unexpected status %d: %s", resp.StatusCode, serverMessage(body))
	}
	return body, nil
}

// serverMessage extracts the error field of a JSON error body.
func serverMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
