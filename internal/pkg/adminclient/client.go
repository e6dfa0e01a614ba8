// Package adminclient talks to the admin HTTP API on behalf of lionctl.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
	"lionhearts/internal/handlers/rest/dto"
	"lionhearts/internal/pkg/middlewares/admin_gate"
	retrierconfig "lionhearts/pkg/retrier"
	"lionhearts/pkg/retrier/backoff_adapter"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10

	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

var ErrInvalidBaseURL = errors.New("invalid base URL")

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL   *url.URL
	adminCode string
	http      *http.Client
	retrier   *backoff_adapter.Retrier
}

// New builds a client. A nil httpClient gets a default with a timeout.
func New(baseURL, adminCode string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:   u,
		adminCode: adminCode,
		http:      httpClient,
		retrier: backoff_adapter.New(retrierconfig.Config{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			MaxElapsedTime:  maxElapsedTime,
			Randomization:   randomization,
			Multiplier:      multiplier,
			MaxRetries:      maxRetries,
			ShouldRetry:     isRetryable,
		}),
	}, nil
}

// ListOrders returns every order, newest first, optionally filtered by status.
func (c *Client) ListOrders(ctx context.Context, status string) ([]dto.AdminOrder, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}

	var res dto.OrderListResponse
	if err := c.get(ctx, "/admin/orders", query, &res); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return res.Orders, nil
}

func (c *Client) SetStatus(ctx context.Context, id, status string) (*dto.AdminOrder, error) {
	return c.UpdateOrder(ctx, id, dto.OrderPatchRequest{Status: pointer.To(status)})
}

func (c *Client) UpdateOrder(ctx context.Context, id string, patch dto.OrderPatchRequest) (*dto.AdminOrder, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("update order %s: encode: %w", id, err)
	}

	var res dto.OrderPatchResponse
	err = c.do(ctx, http.MethodPatch, "/admin/orders/"+url.PathEscape(id), nil, body, &res)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	return &res.Order, nil
}

func (c *Client) Audit(ctx context.Context, id string) ([]dto.AuditEntry, error) {
	var res dto.AuditListResponse
	if err := c.get(ctx, "/admin/orders/"+url.PathEscape(id)+"/audit", nil, &res); err != nil {
		return nil, fmt.Errorf("audit %s: %w", id, err)
	}
	return res.Entries, nil
}

func (c *Client) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	var res dto.CatalogResponse
	if err := c.get(ctx, "/catalog", nil, &res); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &res, nil
}

// get retries transient failures. Writes are never retried.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, path, query, nil, out)
	})
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminCode != "" {
		req.Header.Set(admin_gate.Header, c.adminCode)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body dto.ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		if body.Issues != nil {
			apiErr.Message += formatIssues(*body.Issues)
		}
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}

func formatIssues(issues dto.Issues) string {
	var b strings.Builder
	for _, msg := range issues.FormErrors {
		fmt.Fprintf(&b, "; %s", msg)
	}
	for _, field := range slices.Sorted(maps.Keys(issues.FieldErrors)) {
		fmt.Fprintf(&b, "; %s: %s", field, strings.Join(issues.FieldErrors[field], ", "))
	}
	return b.String()
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
