package shipengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shipment-gateway/core/resilience"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("shipengine: not found")

// StatusError is a non-2xx answer.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shipengine: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the ShipEngine REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *resilience.Breaker
	logger  *zap.Logger
}

// NewClient creates a client. Every call goes through a circuit breaker that
// ignores 404s and other client errors.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		breaker: resilience.NewBreaker("shipengine", cfg.Breaker, logger, isClientError),
		logger:  logger,
	}
}

func isClientError(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode < http.StatusInternalServerError
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// ListShipments returns one page of shipments, newest first.
func (c *Client) ListShipments(ctx context.Context, page, pageSize int) (*ListShipmentsResponse, error) {
	q := url.Values{}
	q.Set("sort_by", "created_at")
	q.Set("sort_dir", "desc")
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out ListShipmentsResponse
	if _, err := c.call(ctx, http.MethodGet, "/shipments", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetShipment fetches one shipment. It returns ErrNotFound when it does not exist.
func (c *Client) GetShipment(ctx context.Context, id string) (*Shipment, error) {
	var out Shipment
	if _, err := c.call(ctx, http.MethodGet, "/shipments/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateShipments creates shipments.
func (c *Client) CreateShipments(ctx context.Context, shipments []Shipment) (*CreateShipmentsResponse, error) {
	var out CreateShipmentsResponse
	body := CreateShipmentsRequest{Shipments: shipments}
	if _, err := c.call(ctx, http.MethodPost, "/shipments", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateShipment replaces a shipment.
func (c *Client) UpdateShipment(ctx context.Context, id string, s Shipment) (*Shipment, error) {
	var out Shipment
	if _, err := c.call(ctx, http.MethodPut, "/shipments/"+url.PathEscape(id), nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelShipment cancels a shipment. It reports true only for 204 No Content.
func (c *Client) CancelShipment(ctx context.Context, id string) (bool, error) {
	status, err := c.call(ctx, http.MethodPut, "/shipments/"+url.PathEscape(id)+"/cancel", nil, nil, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusNoContent, nil
}

// ListCarriers returns the connected carriers with their services.
func (c *Client) ListCarriers(ctx context.Context) ([]Carrier, error) {
	var out listCarriersResponse
	if _, err := c.call(ctx, http.MethodGet, "/carriers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Carriers, nil
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	return resilience.Do(ctx, c.breaker, func(ctx context.Context) (int, error) {
		return c.do(ctx, method, path, query, body, out)
	})
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("ShipEngine call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}
