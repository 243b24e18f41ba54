package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"mtdstore-client/config"
)

// Client is the single gateway through which every server call goes.
// It attaches JSON headers, enforces a client-side timeout and rate
// limit, and normalizes authentication and transport failures into the
// typed errors in this package. Callers never see a raw HTTP response.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter

	onUnauthorized func()
	notify         func(message string)
}

// NewClient creates a client for the marketplace API. Sessions are
// cookie-based by default; when cfg.APIToken is set the client runs in
// bearer-token mode instead.
func NewClient(cfg *config.Config) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	window := cfg.RateLimitWindow
	if window <= 0 {
		window = time.Second
	}

	return &Client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.APIToken,
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(
			rate.Every(window/time.Duration(cfg.RateLimitRequests)),
			cfg.RateLimitRequests,
		),
	}, nil
}

// SetUnauthorizedHook registers the callback fired when a call comes
// back 401 or the bearer token has expired. The navigation layer uses
// it to force the user back to the login view.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// SetNotifier registers the callback used to surface transport errors
// to the user.
func (c *Client) SetNotifier(fn func(message string)) {
	c.notify = fn
}

// SetToken switches the client to bearer-token mode (empty clears it).
func (c *Client) SetToken(token string) {
	c.token = token
}

// envelope is the common shape of JSON object responses. List
// endpoints return bare arrays and skip the success check.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Call issues a request and decodes the response into out (which may
// be nil). It returns one of the typed errors from this package; it
// never panics or leaks a raw *http.Response past this boundary.
func (c *Client) Call(ctx context.Context, method, path string, body, out interface{}) error {
	if c.token != "" && tokenExpired(c.token, time.Now()) {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &AuthError{Message: "Session expired. Please login again."}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.notify != nil {
			c.notify("Network error: " + err.Error())
		}
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if c.notify != nil {
			c.notify("Network error: " + err.Error())
		}
		return &NetworkError{Err: err}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &AuthError{Message: "Session expired. Please login again."}
	case http.StatusForbidden:
		return &AuthorizationError{Message: "Access denied for this role."}
	}

	if rejected := checkEnvelope(data); rejected != nil {
		return rejected
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// checkEnvelope returns a ServerRejection when the body is a JSON
// object carrying {"success": false}.
func checkEnvelope(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil
	}
	if env.Success != nil && !*env.Success {
		message := env.Message
		if message == "" {
			message = "Request failed"
		}
		return &ServerRejection{Message: message}
	}
	return nil
}
