// Package client talks to a running catalogd server over HTTP.
package client

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

	"github.com/gorilla/websocket"
	"github.com/grovetools/catalogd/errors"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/version"
)

// Client calls the catalog endpoints of a catalogd server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dialer     *websocket.Dialer
}

// New creates a Client for the server at addr. addr may be host:port or a
// full http(s) URL.
func New(addr string) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
			Timeout: 10 * time.Second,
		},
		baseURL: normalizeBaseURL(addr),
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// BaseURL returns the server URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func normalizeBaseURL(addr string) string {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return strings.TrimRight(addr, "/")
}

// ListCats returns every entry in insertion order.
func (c *Client) ListCats(ctx context.Context) ([]models.Cat, error) {
	var result struct {
		Data struct {
			ListCats []models.Cat `json:"listCats"`
		} `json:"data"`
	}
	if err := c.execute(ctx, models.OperationRequest{OperationName: models.OperationListCats}, &result); err != nil {
		return nil, err
	}
	if result.Data.ListCats == nil {
		return []models.Cat{}, nil
	}
	return result.Data.ListCats, nil
}

// AddCat appends an entry. A nil nickname list is sent as [].
func (c *Client) AddCat(ctx context.Context, cat models.Cat) error {
	req := models.OperationRequest{
		OperationName: models.OperationAddCat,
		Arguments:     map[string]interface{}{"cat": cat.Clone()},
	}
	return c.execute(ctx, req, nil)
}

// Execute posts a raw operation and returns the decoded data object.
func (c *Client) Execute(ctx context.Context, req models.OperationRequest) (map[string]json.RawMessage, error) {
	var result struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := c.execute(ctx, req, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Schema returns the rendered schema text served at /schema.
func (c *Client) Schema(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/schema", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// IsRunning reports whether the server answers its health check.
func (c *Client) IsRunning(ctx context.Context) bool {
	body, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err == nil && string(body) == "ok"
}

// Subscribe streams every entry added after the subscription is established.
// The channel is closed when ctx is cancelled or the server goes away.
func (c *Client) Subscribe(ctx context.Context) (<-chan models.Cat, error) {
	wsURL, err := url.Parse(c.baseURL + "/subscriptions")
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	switch wsURL.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}

	conn, resp, err := c.dialer.DialContext(ctx, wsURL.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, errors.ServerUnavailable(c.baseURL, err)
	}

	ch := make(chan models.Cat)
	go func() {
		defer close(ch)
		defer conn.Close()

		// Unblock ReadJSON on cancellation
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-ctx.Done():
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				conn.Close()
			case <-stop:
			}
		}()

		for {
			var event models.CatAddedEvent
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			select {
			case ch <- event.Data.CatAdded:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) execute(ctx context.Context, req models.OperationRequest, result interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/graphql", payload)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ServerUnavailable(c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError(resp.StatusCode, body)
	}
	return body, nil
}

// responseError turns an {"error": ...} body into a CatalogError.
func responseError(status int, body []byte) error {
	message := fmt.Sprintf("server returned %d", status)
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		message = errResp.Error
	}

	code := errors.ErrCodeInternal
	switch {
	case status == http.StatusBadRequest && strings.HasPrefix(message, "unknown operation"):
		code = errors.ErrCodeUnknownOperation
	case status == http.StatusBadRequest:
		code = errors.ErrCodeMalformedRequest
	case status == http.StatusNotFound:
		code = errors.ErrCodeInvalidInput
	case status == http.StatusServiceUnavailable:
		code = errors.ErrCodeServerUnavailable
	}
	return errors.New(code, message).WithDetail("status", status)
}
