// Package fetch loads subtitle and translation payloads from the content
// server. The server is an opaque byte source keyed by file path under the
// videos root; parsing and alignment happen elsewhere.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	videosRoot     = "videos"
)

// Source retrieves raw subtitle payloads keyed by path.
type Source interface {
	Fetch(ctx context.Context, filePath string) ([]byte, error)
}

// Client fetches subtitle files over HTTP with bearer authorization.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option customizes a client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// NewClient builds a client for the given server base URL. The token may
// be empty for servers that do not require authorization.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("server base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server base URL: %w", err)
	}

	client := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Fetch downloads the file at filePath, resolved under the videos root.
// Paths already rooted there are used as-is so callers can pass either
// form. The response body is returned verbatim.
func (c *Client) Fetch(ctx context.Context, filePath string) ([]byte, error) {
	cleaned, err := resolvePath(filePath)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/" + cleaned
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", cleaned, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"fetch %s: server returned %s",
			cleaned,
			resp.Status,
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s: %w", cleaned, err)
	}
	return data, nil
}

func resolvePath(filePath string) (string, error) {
	cleaned := path.Clean(strings.TrimLeft(strings.TrimSpace(filePath), "/"))
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("file path is required")
	}
	if strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("file path %q escapes the videos root", filePath)
	}
	if cleaned != videosRoot && !strings.HasPrefix(cleaned, videosRoot+"/") {
		cleaned = videosRoot + "/" + cleaned
	}
	return cleaned, nil
}
