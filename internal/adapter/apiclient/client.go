package apiclient

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

	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const maxResponseBytes = 4 << 20

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     ports.TokenStore
	Logger     *zap.Logger
}

// Client talks to the booking REST backend. It is shared by all sessions;
// ForSession binds it to one session's bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenStore
	logger     *zap.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("apiclient: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     cfg.Tokens,
		logger:     logger.Named("apiclient"),
	}, nil
}

func (c *Client) ForSession(sessionID string) *SessionClient {
	return &SessionClient{client: c, sessionID: sessionID}
}

// SessionClient implements the backend ports for a single session.
type SessionClient struct {
	client    *Client
	sessionID string
}

var (
	_ ports.FlightAPI      = (*SessionClient)(nil)
	_ ports.DestinationAPI = (*SessionClient)(nil)
	_ ports.BookingAPI     = (*SessionClient)(nil)
	_ ports.UserAPI        = (*SessionClient)(nil)
)

func (s *SessionClient) bearer(ctx context.Context) string {
	if s.client.tokens == nil {
		return ""
	}
	token, err := s.client.tokens.Token(ctx, s.sessionID)
	if err != nil {
		s.client.logger.Warn("reading access token failed", zap.String("session_id", s.sessionID), zap.Error(err))
		return ""
	}
	return token
}

func (s *SessionClient) storeToken(ctx context.Context, token string) error {
	if s.client.tokens == nil || token == "" {
		return nil
	}
	if err := s.client.tokens.SetToken(ctx, s.sessionID, token); err != nil {
		return fmt.Errorf("storing access token: %w", err)
	}
	return nil
}

func (s *SessionClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return s.do(ctx, http.MethodGet, path, query, nil, out)
}

func (s *SessionClient) post(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPost, path, nil, body, out)
}

func (s *SessionClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	c := s.client
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := s.bearer(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("backend call",
		zap.String("session_id", s.sessionID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
