// Package delivery is a minimal client for the content types endpoint of the
// Kentico Cloud Delivery API
package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cloudmodelgen/ctgen/internal/schema"
)

const (
	// DefaultEndpoint is the production Delivery API
	DefaultEndpoint = "https://deliver.kenticocloud.com"

	// DefaultPageSize is the number of content types requested per page
	DefaultPageSize = 100

	defaultTimeout = 30 * time.Second
	userAgent      = "content-types-generator"
)

var (
	// ErrInvalidProjectID is returned by NewClient when the project id is not a UUID
	ErrInvalidProjectID = errors.New("project id must be a UUID")

	// ErrPaginationLoop is returned when a listing points back to a page it already returned
	ErrPaginationLoop = errors.New("delivery API returned a repeated next page")
)

// APIError is an error response of the Delivery API
type APIError struct {
	StatusCode   int    `json:"-"`
	Message      string `json:"message"`
	RequestID    string `json:"request_id"`
	ErrorCode    int    `json:"error_code"`
	SpecificCode int    `json:"specific_code"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("delivery API returned %d: %s (request id %s)", e.StatusCode, msg, e.RequestID)
	}
	return fmt.Sprintf("delivery API returned %d: %s", e.StatusCode, msg)
}

// Pagination is the paging block of a listing response
type Pagination struct {
	Skip     int    `json:"skip"`
	Limit    int    `json:"limit"`
	Count    int    `json:"count"`
	NextPage string `json:"next_page"`
}

// TypesResponse is the body of the types listing endpoint
type TypesResponse struct {
	Types      []schema.ContentType `json:"types"`
	Pagination Pagination           `json:"pagination"`
}

// Client fetches content type definitions of a single project
type Client struct {
	projectID  uuid.UUID
	endpoint   string
	pageSize   int
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the Delivery API base URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithPageSize sets how many types are requested per page
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given project
func NewClient(projectID string, opts ...Option) (*Client, error) {
	id, err := uuid.Parse(strings.TrimSpace(projectID))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProjectID, projectID)
	}

	c := &Client{
		projectID:  id,
		endpoint:   DefaultEndpoint,
		pageSize:   DefaultPageSize,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ProjectID returns the project the client reads from
func (c *Client) ProjectID() string {
	return c.projectID.String()
}

// ListTypes returns every content type of the project, following pagination
func (c *Client) ListTypes(ctx context.Context) ([]schema.ContentType, error) {
	next := c.firstPageURL()
	seen := make(map[string]bool)

	var types []schema.ContentType
	for next != "" {
		if seen[next] {
			return nil, fmt.Errorf("%w: %s", ErrPaginationLoop, next)
		}
		seen[next] = true

		page, err := c.fetchTypes(ctx, next)
		if err != nil {
			return nil, err
		}
		types = append(types, page.Types...)

		c.logger.Debug().
			Str("url", next).
			Int("count", len(page.Types)).
			Int("total", len(types)).
			Msg("fetched content types page")

		next = page.Pagination.NextPage
	}

	return types, nil
}

func (c *Client) firstPageURL() string {
	q := url.Values{}
	q.Set("skip", "0")
	q.Set("limit", strconv.Itoa(c.pageSize))
	return fmt.Sprintf("%s/%s/types?%s", c.endpoint, c.projectID.String(), q.Encode())
}

func (c *Client) fetchTypes(ctx context.Context, pageURL string) (*TypesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content types: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil {
			c.logger.Debug().Err(err).Int("status", resp.StatusCode).Msg("error response is not JSON")
		}
		return nil, apiErr
	}

	var page TypesResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode content types: %w", err)
	}

	return &page, nil
}
