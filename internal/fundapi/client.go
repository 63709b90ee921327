package fundapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/epeers/fundsight/internal/models"
	log "github.com/sirupsen/logrus"
)

// FundSight data API. Django REST framework behind token authentication;
// every path is relative to the base URL and keeps its trailing slash.
const (
	DefaultBaseURL    = "http://localhost:8000/api/"
	DefaultAuthScheme = "Token"

	pathLogin       = "auth/login/"
	pathLogout      = "auth/logout/"
	pathInvestments = "investments/"
	pathFunds       = "funds/"
)

// TokenSource yields the current session token, or "" when signed out
type TokenSource func() string

// Client is an HTTP client for the FundSight data API. It is the only
// network egress point of the application.
type Client struct {
	baseURL    string
	authScheme string
	token      TokenSource
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithAuthScheme overrides the Authorization scheme ("Token" or "Bearer")
func WithAuthScheme(scheme string) Option {
	return func(c *Client) {
		if scheme != "" {
			c.authScheme = scheme
		}
	}
}

// WithTokenSource sets where the client reads the session token from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithHTTPClient replaces the underlying transport (for testing)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new FundSight API client
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL:    baseURL,
		authScheme: DefaultAuthScheme,
		token:      func() string { return "" },
		// No timeout override: requests rely on the transport default
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	defer trackTime("Login", time.Now())

	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, body, false, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &APIError{Status: http.StatusOK, Message: "login response did not include a token"}
	}
	return &resp, nil
}

// Logout invalidates the current token upstream
func (c *Client) Logout(ctx context.Context) error {
	defer trackTime("Logout", time.Now())
	return c.do(ctx, http.MethodPost, pathLogout, []byte("{}"), true, nil)
}

// GetInvestments lists every investment visible to the session
func (c *Client) GetInvestments(ctx context.Context) ([]models.Investment, error) {
	defer trackTime("GetInvestments", time.Now())

	var investments []models.Investment
	if err := c.do(ctx, http.MethodGet, pathInvestments, nil, true, &investments); err != nil {
		return nil, err
	}
	if investments == nil {
		investments = []models.Investment{}
	}
	return investments, nil
}

// GetFunds lists every fund with its holdings
func (c *Client) GetFunds(ctx context.Context) ([]models.Fund, error) {
	defer trackTime("GetFunds", time.Now())

	var funds []models.Fund
	if err := c.do(ctx, http.MethodGet, pathFunds, nil, true, &funds); err != nil {
		return nil, err
	}
	if funds == nil {
		funds = []models.Fund{}
	}
	return funds, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, auth bool, out any) error {
	reqURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", c.authScheme+" "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: "unable to reach the FundSight API", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debugf("%s %s returned status %d", method, path, resp.StatusCode)
		return &APIError{Status: resp.StatusCode, Message: messageFromBody(resp.StatusCode, respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unexpected response from the FundSight API", Err: err}
	}
	return nil
}

func trackTime(funcName string, start time.Time) {
	log.Debugf("fundapi.%s took %d ms", funcName, time.Since(start).Milliseconds())
}
