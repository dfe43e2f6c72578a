// Package couchdb provides a CouchDB client speaking the CouchDB HTTP API.
package couchdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/unifiedui/document-service/internal/core/docdb"
)

const (
	// DefaultTimeout bounds every HTTP request when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	allDocsPath = "_all_docs"
)

// ClientConfig holds CouchDB connection configuration.
// AllView is the view path enumerating all documents, e.g. "_design/Document/_view/all";
// when empty, _all_docs without design documents is used. HTTPClient overrides
// the default client, in which case Timeout is ignored.
type ClientConfig struct {
	URL        string
	Database   string
	Username   string
	Password   string
	AllView    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements the docdb.Client interface for CouchDB.
type Client struct {
	http     *http.Client
	baseURL  string
	username string
	password string
	database *Database
}

// NewClient creates a new CouchDB client and verifies the database exists.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URL == "" {
		return nil, fmt.Errorf("couchdb URL is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		http:     httpClient,
		baseURL:  strings.TrimRight(config.URL, "/") + "/" + url.PathEscape(config.Database),
		username: config.Username,
		password: config.Password,
	}
	c.database = &Database{client: c, allView: strings.Trim(config.AllView, "/")}

	if err := c.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to couchdb: %w", err)
	}

	return c, nil
}

// Database returns the database interface.
func (c *Client) Database() docdb.Database {
	return c.database
}

// Views returns the view set of the database.
func (c *Client) Views() docdb.ViewSet {
	return c.database
}

// Ping verifies the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	status, body, err := c.do(ctx, http.MethodGet, "", nil, nil)
	if err != nil {
		return fmt.Errorf("couchdb ping failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("couchdb ping failed: %w", responseError(status, body))
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs a request against the database and returns the status and body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (int, []byte, error) {
	target := c.baseURL
	if path != "" {
		target += "/" + path
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request to couchdb failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read couchdb response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// responseError builds an error from a CouchDB error body ({"error": ..., "reason": ...}).
func responseError(status int, body []byte) error {
	result := gjson.GetManyBytes(body, "error", "reason")
	if result[0].Exists() {
		return fmt.Errorf("couchdb returned status %d: %s: %s", status, result[0].String(), result[1].String())
	}
	return fmt.Errorf("couchdb returned status %d", status)
}
