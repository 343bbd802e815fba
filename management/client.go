// Package management wraps the identity provider's Management REST API. A
// Client exposes one typed manager per remote resource; managers are
// instantiated lazily and memoized per client instance, so the accessor for
// a resource always returns the same manager.
package management

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/veridian-id/veridian-go/internal/httpclient"
)

var (
	// ErrInvalidParameter is returned when a parameter fails validation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNilParameter is returned when a required parameter is nil.
	ErrNilParameter = errors.New("nil parameter")
)

// Config holds the connection settings for one tenant's Management API.
type Config struct {
	// Domain is the tenant domain, with or without an https:// prefix.
	Domain string

	// Token is the Management API access token sent as a bearer
	// credential. See authn.Client.ClientCredentials for obtaining one.
	Token string

	// ProviderCA is an optional CA certificate PEM to trust when talking
	// to the provider.
	ProviderCA string

	// HTTPClient is an optional client for API requests. Retries and
	// timeouts belong to this client; the SDK adds none of its own.
	HTTPClient *http.Client

	// Logger is an optional structured logger. When nil, nothing is
	// logged.
	Logger hclog.Logger
}

// Client is a Management API client for one tenant.
type Client struct {
	baseURL *url.URL
	token   string
	client  *http.Client
	logger  hclog.Logger

	mu       sync.Mutex
	managers map[string]interface{}
}

// NewClient creates a Management API client.
func NewClient(c *Config) (*Client, error) {
	const op = "management.NewClient"
	if c == nil {
		return nil, fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	if c.Domain == "" {
		return nil, fmt.Errorf("%s: domain is empty: %w", op, ErrInvalidParameter)
	}
	if c.Token == "" {
		return nil, fmt.Errorf("%s: token is empty: %w", op, ErrInvalidParameter)
	}

	domain := strings.TrimSuffix(c.Domain, "/")
	if !strings.HasPrefix(domain, "https://") && !strings.HasPrefix(domain, "http://") {
		domain = "https://" + domain
	}
	baseURL, err := url.Parse(domain + "/api/v2/")
	if err != nil {
		return nil, fmt.Errorf("%s: domain %s is invalid: %w", op, c.Domain, ErrInvalidParameter)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient, err = httpclient.New(c.ProviderCA)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
		}
	}

	logger := c.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		baseURL:  baseURL,
		token:    c.Token,
		client:   httpClient,
		logger:   logger,
		managers: map[string]interface{}{},
	}, nil
}

// manager returns the memoized manager for name, creating it with newFn on
// first use. This is the explicit replacement for dynamic per-resource
// dispatch: every resource has one concrete accessor backed by this
// registry.
func (c *Client) manager(name string, newFn func() interface{}) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.managers[name]
	if !ok {
		m = newFn()
		c.managers[name] = m
	}
	return m
}

// Connections returns the manager for the connections resource.
func (c *Client) Connections() *ConnectionManager {
	return c.manager("connections", func() interface{} {
		return &ConnectionManager{client: c}
	}).(*ConnectionManager)
}

// Logs returns the manager for the logs resource.
func (c *Client) Logs() *LogManager {
	return c.manager("logs", func() interface{} {
		return &LogManager{client: c}
	}).(*LogManager)
}

// LogStreams returns the manager for the log-streams resource.
func (c *Client) LogStreams() *LogStreamManager {
	return c.manager("log-streams", func() interface{} {
		return &LogStreamManager{client: c}
	}).(*LogStreamManager)
}

// Users returns the manager for the users resource.
func (c *Client) Users() *UserManager {
	return c.manager("users", func() interface{} {
		return &UserManager{client: c}
	}).(*UserManager)
}

// ResourceServers returns the manager for the resource-servers resource.
func (c *Client) ResourceServers() *ResourceServerManager {
	return c.manager("resource-servers", func() interface{} {
		return &ResourceServerManager{client: c}
	}).(*ResourceServerManager)
}

// do sends one API request and decodes the JSON response into out (when out
// is not nil). Non-2xx responses are returned as *Error. There is no retry:
// transport faults surface to the caller as-is.
func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}, opt ...RequestOption) error {
	const op = "management.do"
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("%s: path %s is invalid: %w", op, path, ErrInvalidParameter)
	}
	u := c.baseURL.ResolveReference(rel)

	opts := getRequestOpts(opt...)
	if len(opts.params) > 0 {
		q := u.Query()
		for k, vs := range opts.params {
			for _, v := range vs {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: unable to encode request body: %w", op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%s: unable to create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("management api request", "method", method, "path", path, "status", resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: unable to read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: unable to decode response: %w", op, err)
	}
	return nil
}
