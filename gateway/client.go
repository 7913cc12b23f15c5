package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"event_ticketing/config"
	"event_ticketing/monitoring"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrTransport marks failures to reach the gateway or to read its reply.
var ErrTransport = errors.New("payment gateway unavailable")

// Charge states reported in data.status.
const (
	StatusSuccess    = "success"
	StatusFailed     = "failed"
	StatusExpired    = "expired"
	StatusProcessing = "processing"
	StatusPending    = "pending"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChargeRequest struct {
	Customer    Customer    `json:"customer"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Reference   string      `json:"reference"`
	RedirectURL string      `json:"redirect_url"`
}

type ChargeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference   string `json:"reference"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type ChargeStatus struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	} `json:"data"`
}

// Succeeded reports whether the gateway confirmed the charge.
func (s *ChargeStatus) Succeeded() bool {
	return s.Status && s.Data.Status == StatusSuccess
}

// Terminal reports whether the charge reached a final state. Processing and pending
// charges may still succeed.
func (s *ChargeStatus) Terminal() bool {
	switch s.Data.Status {
	case StatusSuccess, StatusFailed, StatusExpired:
		return true
	default:
		return false
	}
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) InitializeCharge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var out ChargeResponse
	status, err := c.do(ctx, "initialize", http.MethodPost, "/charges/initialize", body, &out)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest || !out.Status {
		return nil, fmt.Errorf("gateway rejected charge %s (%d): %s", req.Reference, status, out.Message)
	}
	return &out, nil
}

// FetchCharge returns the gateway's view of a charge. A 4xx reply with a readable
// body is returned as a non-successful status rather than an error.
func (c *Client) FetchCharge(ctx context.Context, reference string) (*ChargeStatus, error) {
	var out ChargeStatus
	status, err := c.do(ctx, "verify", http.MethodGet, "/charges/"+url.PathEscape(reference), nil, &out)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrTransport, status)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) (int, error) {
	start := time.Now()
	defer func() {
		monitoring.ObserveGatewayRequest(op, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode %s response (%d): %v", ErrTransport, op, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
