// Package api provides the HTTP client for the school-payments REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harlow-hs/paydash/internal/common"
	"github.com/harlow-hs/paydash/internal/model"
	"github.com/harlow-hs/paydash/internal/query"
	"github.com/harlow-hs/paydash/internal/session"
)

// Config holds API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api base URL is required", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: api base URL must be an http(s) URL", common.ErrInvalidConfig)
	}
	return nil
}

// Client issues requests against the payments API, attaching the session's
// bearer token when one is held. It performs no retries and never computes
// pagination locally.
type Client struct {
	httpClient *http.Client
	session    *session.Session
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a client for the given API. The session supplies the
// bearer token and is cleared when the server rejects it.
func NewClient(cfg Config, sess *session.Session) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		session: sess,
		logger:  slog.Default().With("component", "api"),
	}, nil
}

// Wire shapes.

type listResponse struct {
	Transactions []model.Transaction `json:"transactions"`
	Pagination   model.PaginationMeta `json:"pagination"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type apiError struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err
}

// Login authenticates with email and password and stores the returned token
// in the session.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return session.User{}, err
	}

	if err := c.session.Set(resp.Token, resp.User); err != nil {
		return session.User{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return resp.User, nil
}

// Register creates an account and stores the returned token in the session.
func (c *Client) Register(ctx context.Context, name, email, password string) (session.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp authResponse
	if err := c.post(ctx, "/auth/register", body, &resp); err != nil {
		return session.User{}, err
	}

	if err := c.session.Set(resp.Token, resp.User); err != nil {
		return session.User{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return resp.User, nil
}

// Profile fetches the signed-in user's identity.
func (c *Client) Profile(ctx context.Context) (session.User, error) {
	var user session.User
	if err := c.get(ctx, "/auth/profile", nil, &user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

// ListTransactions fetches one page of transactions matching the query state.
// Pagination metadata comes straight from the server.
func (c *Client) ListTransactions(ctx context.Context, st query.State) ([]model.Transaction, model.PaginationMeta, error) {
	return c.list(ctx, "/transactions", query.APIQuery(st))
}

// ListSchoolTransactions fetches one page of transactions scoped to a single
// school. The school id travels in the path, not as a filter parameter.
func (c *Client) ListSchoolTransactions(ctx context.Context, schoolID string, st query.State) ([]model.Transaction, model.PaginationMeta, error) {
	schoolID = strings.TrimSpace(schoolID)
	if schoolID == "" {
		return nil, model.PaginationMeta{}, fmt.Errorf("school id is required")
	}
	return c.list(ctx, "/transactions/school/"+url.PathEscape(schoolID), query.ScopedAPIQuery(st))
}

func (c *Client) list(ctx context.Context, path string, params url.Values) ([]model.Transaction, model.PaginationMeta, error) {
	c.logger.Debug("Requesting transactions", "path", path, "params", params.Encode())

	var resp listResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, model.PaginationMeta{}, err
	}

	for i := range resp.Transactions {
		resp.Transactions[i].Status = model.ParseStatus(string(resp.Transactions[i].Status))
	}

	return resp.Transactions, resp.Pagination, nil
}

// LookupStatus fetches a single transaction by its custom order id. An empty
// or whitespace-only id is rejected before any request is issued.
func (c *Client) LookupStatus(ctx context.Context, customOrderID string) (model.Transaction, error) {
	customOrderID = strings.TrimSpace(customOrderID)
	if customOrderID == "" {
		return model.Transaction{}, common.ErrEmptyOrderID
	}

	var txn model.Transaction
	if err := c.get(ctx, "/transactions/status/"+url.PathEscape(customOrderID), nil, &txn); err != nil {
		return model.Transaction{}, err
	}
	txn.Status = model.ParseStatus(string(txn.Status))

	return txn, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		// The token is no longer valid: drop it so every surface falls back
		// to the login flow.
		if clearErr := c.session.Clear(); clearErr != nil {
			c.logger.Warn("Failed to clear session after 401", "error", clearErr)
		}
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, c.errorText(resp))
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", common.ErrNotFound, c.errorText(resp))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api error: %d - %s", resp.StatusCode, c.errorText(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorText extracts the server's message from an error body, falling back
// to the raw body text.
func (c *Client) errorText(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return resp.Status
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.text() != "" {
		return apiErr.text()
	}

	return strings.TrimSpace(string(body))
}
