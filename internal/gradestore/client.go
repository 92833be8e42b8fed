package gradestore

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portfolio-cards/gradecard/internal/grades"
)

const (
	// BasePath is the REST collection that holds every portfolio card's grades
	BasePath = "/api/base-notas"

	// DefaultCardID is the card whose grades this client reads and writes
	DefaultCardID = "4"
)

// Client talks to the remote grade store of a single card
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    *time.Duration
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout. It applies
// to a copy of the HTTP client, so a client passed to WithHTTPClient is left
// untouched regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// WithLogger attaches a logger for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for {baseURL}/api/base-notas/{cardID}
func NewClient(baseURL, cardID string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	if cardID == "" {
		cardID = DefaultCardID
	}

	c := &Client{
		endpoint:   u.String() + BasePath + "/" + url.PathEscape(cardID),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// Endpoint returns the resolved resource URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// AddRequest appends a score to a subject
type AddRequest struct {
	Category grades.Category `json:"tipo"`
	Subject  string          `json:"disciplina"`
	Value    float64         `json:"valor"`
}

// UpdateRequest replaces the score identified by OldValue with NewValue
type UpdateRequest struct {
	Category grades.Category `json:"tipo"`
	Subject  string          `json:"disciplina"`
	OldValue float64         `json:"valorAntigo"`
	NewValue float64         `json:"novoValor"`
}

// DeleteRequest removes a score from a subject
type DeleteRequest struct {
	Category grades.Category `json:"tipo"`
	Subject  string          `json:"disciplina"`
	Value    float64         `json:"valor"`
}

// List fetches the full grade set
func (c *Client) List(ctx context.Context) (grades.Set, error) {
	var set grades.Set
	if err := c.do(ctx, http.MethodGet, nil, &set); err != nil {
		return grades.Set{}, err
	}
	return set, nil
}

// Add appends a score and returns the full updated grade set
func (c *Client) Add(ctx context.Context, req AddRequest) (grades.Set, error) {
	var set grades.Set
	if err := c.do(ctx, http.MethodPost, req, &set); err != nil {
		return grades.Set{}, err
	}
	return set, nil
}

// Update replaces a score and returns the full updated grade set
func (c *Client) Update(ctx context.Context, req UpdateRequest) (grades.Set, error) {
	var set grades.Set
	if err := c.do(ctx, http.MethodPut, req, &set); err != nil {
		return grades.Set{}, err
	}
	return set, nil
}

// Delete removes a score server-side. The response body is not used.
func (c *Client) Delete(ctx context.Context, req DeleteRequest) error {
	return c.do(ctx, http.MethodDelete, req, nil)
}

// do executes a request against the card endpoint and decodes the response into result
func (c *Client) do(ctx context.Context, method string, payload interface{}, result interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With(
		zap.String("method", method),
		zap.String("url", c.endpoint),
		zap.String("request_id", requestID),
	)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Debug("grade store request failed", zap.Error(err))
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	log.Debug("grade store response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
