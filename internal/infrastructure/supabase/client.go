// Package supabase adapts the hosted backend (GoTrue auth API and PostgREST
// data API) to the core ports. Two client flavours exist: a caller-scoped one
// that forwards the dashboard user's token, and a service one that carries
// the service-role key and must stay server-side.
package supabase

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
	"time"

	"github.com/mtcleaning/account-service/internal/pkg/metrics"
	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Environment variable names reported when a credential is missing.
const (
	EnvURL            = "SUPABASE_URL"
	EnvAnonKey        = "SUPABASE_ANON_KEY"
	EnvServiceRoleKey = "SUPABASE_SERVICE_ROLE_KEY"
)

const maxErrorBody = 4096

// Config captures the backend endpoint and the two keys.
type Config struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client implements ports.Backend over HTTPS.
type Client struct {
	baseURL        string
	anonKey        string
	serviceRoleKey string
	http           *http.Client
}

var _ ports.Backend = (*Client)(nil)

// New builds a Client. Missing credentials are not an error here; they are
// reported by AsCaller/AsService so each request fails with a 500.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		anonKey:        strings.TrimSpace(cfg.AnonKey),
		serviceRoleKey: strings.TrimSpace(cfg.ServiceRoleKey),
		http:           httpClient,
	}
}

// Missing returns the name of the first unset credential, or "".
func (c *Client) Missing() string {
	switch {
	case c.baseURL == "":
		return EnvURL
	case c.anonKey == "":
		return EnvAnonKey
	case c.serviceRoleKey == "":
		return EnvServiceRoleKey
	}
	return ""
}

func (c *Client) checkConfig() error {
	if name := c.Missing(); name != "" {
		return domain.NewError(domain.ErrConfiguration, "Missing env var: "+name)
	}
	return nil
}

// AsCaller returns a client that acts as the owner of token.
func (c *Client) AsCaller(token string) (ports.CallerClient, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}
	return &callerClient{c: c, token: token}, nil
}

// AsService returns a client authenticated with the service-role key.
func (c *Client) AsService() (ports.ServiceClient, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}
	return &serviceClient{c: c}, nil
}

// Health pings the auth API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	if err := c.checkConfig(); err != nil {
		return err
	}
	return c.do(ctx, request{
		call:   "health",
		method: http.MethodGet,
		path:   "/auth/v1/health",
		apiKey: c.anonKey,
	}, nil)
}

type request struct {
	call   string
	method string
	path   string
	query  url.Values
	apiKey string
	bearer string
	prefer string
	body   any
}

// do performs one backend call. Transport failures and non-2xx responses are
// returned as domain.ErrUpstream errors carrying the backend's message.
func (c *Client) do(ctx context.Context, r request, out any) error {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", r.call, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", r.call, err)
	}
	req.Header.Set("apikey", r.apiKey)
	bearer := r.bearer
	if bearer == "" {
		bearer = r.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamDuration.WithLabelValues(r.call).Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.NewError(domain.ErrUpstream, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.NewError(domain.ErrUpstream, errorMessage(resp.StatusCode, rb))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewError(domain.ErrUpstream, fmt.Sprintf("%s: decode response: %v", r.call, err))
	}
	return nil
}

// apiError covers the error shapes of GoTrue (msg, error_description) and
// PostgREST (message).
type apiError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func errorMessage(status int, body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil {
		for _, m := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
			if m = strings.TrimSpace(m); m != "" {
				return m
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return fmt.Sprintf("upstream returned %d %s", status, http.StatusText(status))
}
