// Package payment charges payment sources through the Stripe charges API.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.stripe.com"

// Charge is the subset of the Stripe charge object the service consumes.
type Charge struct {
	ID       string            `json:"id"`
	Currency string            `json:"currency"`
	Paid     bool              `json:"paid"`
	Metadata map[string]string `json:"metadata"`
}

// Config configures a Client.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the Stripe charges endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("payment: api key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{apiKey: cfg.APIKey, baseURL: baseURL, httpClient: httpClient}, nil
}

// Charge creates a charge of amount against source, tagging it with orderID.
// Amount is forwarded as supplied.
func (c *Client) Charge(ctx context.Context, amount float64, source, orderID string) (Charge, error) {
	source = strings.TrimSpace(source)
	if amount <= 0 || source == "" {
		return Charge{}, errors.New("payment: amount and source are required")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	form.Set("currency", "usd")
	form.Set("source", source)
	form.Set("description", "Charged For Pizza Order")
	form.Set("metadata[orderId]", orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return Charge{}, fmt.Errorf("payment: build request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Charge{}, fmt.Errorf("payment: charge request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Charge{}, fmt.Errorf("payment: status code returned was %d", resp.StatusCode)
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return Charge{}, fmt.Errorf("payment: decode response: %w", err)
	}
	return charge, nil
}
