// Package wallet is the HTTP client for the external custodial wallet
// service.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/domain/entity"
)

const nativeToken = "native"

var _ output.WalletPort = (*Client)(nil)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) Balance(ctx context.Context, email string) (string, error) {
	var out struct {
		Balance string `json:"balance"`
	}
	err := c.post(ctx, "/api/wallet/balance", map[string]any{
		"email":        email,
		"tokenAddress": nativeToken,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Balance, nil
}

func (c *Client) Send(ctx context.Context, fromEmail, toEmailOrAddress, amount string) (string, error) {
	var out struct {
		TransactionHash string `json:"transactionHash"`
	}
	err := c.post(ctx, "/api/wallet/send", map[string]any{
		"fromEmail":        fromEmail,
		"toEmailOrAddress": toEmailOrAddress,
		"amount":           amount,
		"tokenAddress":     nativeToken,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.TransactionHash, nil
}

func (c *Client) Transactions(ctx context.Context, email string, limit int) (*entity.TransactionHistory, error) {
	var out entity.TransactionHistory
	err := c.post(ctx, "/api/wallet/transactions", map[string]any{
		"email": email,
		"limit": limit,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAccount(ctx context.Context, email string) (string, error) {
	var out struct {
		PublicKey string `json:"publicKey"`
	}
	err := c.post(ctx, "/api/account/create", map[string]any{
		"email": email,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.PublicKey, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("wallet API base URL is not set")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wallet API request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wallet API %s returned %d: %s", path, resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
