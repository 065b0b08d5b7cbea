package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"rhystmorgan/contactterm/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:5000"
	DefaultUserAgent = "contactterm/1.0"

	contactsPath = "/contacts"

	// errorBodyLimit caps how much of a failed response ends up in the message.
	errorBodyLimit = 512
)

// Client talks to the remote contact collection. Each method issues exactly
// one request; nothing is retried.
type Client struct {
	httpClient *http.Client
	config     Config
	baseURL    *url.URL

	mu     sync.RWMutex
	status Status
}

// Status is the outcome of the most recent request.
type Status struct {
	BaseURL     string
	Reachable   bool
	LastChecked time.Time
	LastError   error
}

func NewClient(config Config) (*Client, error) {
	return NewClientWithHTTP(config, nil)
}

// NewClientWithHTTP is NewClient with a caller supplied transport, used by
// tests to point at an httptest server.
func NewClientWithHTTP(config Config, httpClient *http.Client) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got: %v", config.Timeout)
	}

	base, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", config.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", config.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", config.BaseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		config:     config,
		baseURL:    base,
		status: Status{
			BaseURL: base.String(),
		},
	}, nil
}

func (c *Client) GetStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List returns the whole collection.
func (c *Client) List(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.do(ctx, OpList, http.MethodGet, c.collectionURL(), nil, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

func (c *Client) Create(ctx context.Context, fields models.ContactFields) error {
	return c.do(ctx, OpCreate, http.MethodPost, c.collectionURL(), fields, nil)
}

func (c *Client) Update(ctx context.Context, id string, fields models.ContactFields) error {
	return c.do(ctx, OpUpdate, http.MethodPut, c.itemURL(id), fields, nil)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, OpDelete, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) collectionURL() string {
	return c.baseURL.String() + contactsPath
}

func (c *Client) itemURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op Op, method, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := ClassifyError(err)
		c.updateStatus(false, classified)
		return classified
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		statusErr := NewStatusError(op, resp.StatusCode, string(raw))
		c.updateStatus(true, statusErr)
		return statusErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			decodeErr := NewDecodeError(op, err)
			c.updateStatus(true, decodeErr)
			return decodeErr
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	c.updateStatus(true, nil)
	return nil
}

func (c *Client) updateStatus(reachable bool, lastErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Reachable = reachable
	c.status.LastError = lastErr
	c.status.LastChecked = time.Now()
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
