package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "user-console/internal/domain/user"
	apperrors "user-console/pkg/errors"
	"user-console/pkg/logger"
)

const (
	// DefaultTimeout is the total request timeout used when none is configured
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the console to the API
	DefaultUserAgent = "user-console/1.0"
)

// Config holds the settings for the users API client
type Config struct {
	BaseURL   string        // collection endpoint, e.g. http://host/api/v1/users
	Timeout   time.Duration // total request timeout
	UserAgent string
}

// Client talks to the users collection endpoint. Each method issues exactly
// one HTTP request and never retries.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

// NewClient creates a new users API client. When httpClient is nil a client
// with cfg.Timeout and a request-logging transport is built.
func NewClient(cfg Config, httpClient *http.Client, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: logger.NewTransport(nil, log),
		}
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		userAgent: cfg.UserAgent,
		log:       log,
	}
}

// BaseURL returns the collection endpoint the client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle keep-alive connections
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// resourceURL returns the path of a single record
func (c *Client) resourceURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// ListUsers handles GET <base>. Records come back in server order; an empty
// or null array yields an empty, non-nil slice.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetUser handles GET <base>/{id}
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, c.resourceURL(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser handles POST <base> and returns the record with its server-assigned ID
func (c *Client) CreateUser(ctx context.Context, in domain.Input) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodPost, c.baseURL, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser handles PUT <base>/{id}
func (c *Client) UpdateUser(ctx context.Context, id int64, in domain.Input) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodPut, c.resourceURL(id), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser handles DELETE <base>/{id}. A 204 is success whatever the body
// holds; any other 2xx is success too.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.resourceURL(id), nil, nil)
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded JSON response of a 2xx other than 204.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	log := logger.WithContext(ctx, c.log)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("users API unreachable", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return apperrors.NewTransportError(method, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp)
		log.Warn("users API returned error",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return apperrors.NewAPIError(method, url, resp.StatusCode, statusText(resp.StatusCode, resp.Status), msg)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode users API response", zap.String("url", url), zap.Error(err))
		return apperrors.NewDecodeError(url, err)
	}

	return nil
}
