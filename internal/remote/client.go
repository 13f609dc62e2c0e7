// Package remote downloads draft bundles from an HTTP record service.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pable/go-draft-metrics/internal/bundle"
)

// Client is a minimal bundle download client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a client resolving relative bundle paths against baseURL.
// An empty token sends no Authorization header.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// resolve turns ref into an absolute URL.
func (c *Client) resolve(ref string) (string, error) {
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref, nil
	}
	if c.baseURL == "" {
		return "", fmt.Errorf("relative bundle path %q needs a base URL", ref)
	}
	return c.baseURL + "/" + strings.TrimLeft(ref, "/"), nil
}

// Bundle downloads and decodes the bundle at ref, an absolute URL or a path
// below the base URL. Compression is taken from the URL suffix, or gzip when
// the server sets Content-Encoding.
func (c *Client) Bundle(ctx context.Context, ref string) (*bundle.Bundle, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", target, resp.StatusCode)
	}

	comp := bundle.CompressionOf(req.URL.Path)
	if comp == bundle.None && resp.Header.Get("Content-Encoding") == "gzip" {
		comp = bundle.Gzip
	}
	b, err := bundle.Decode(resp.Body, comp)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	return b, nil
}
