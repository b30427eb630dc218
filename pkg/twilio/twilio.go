// Package twilio sends SMS messages through the Twilio REST API.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	maxMessageLen  = 1600
)

// Config configures a Client.
type Config struct {
	AccountSID string
	AuthToken  string
	FromPhone  string
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the Twilio messages endpoint for a single sending number.
type Client struct {
	accountSID string
	authToken  string
	fromPhone  string
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromPhone == "" {
		return nil, errors.New("twilio: account sid, auth token and from phone are required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromPhone:  cfg.FromPhone,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Send delivers an SMS to a 10-digit US phone number.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	phone = strings.TrimSpace(phone)
	message = strings.TrimSpace(message)
	if len(phone) != 10 {
		return errors.New("twilio: phone must be a 10-digit number")
	}
	if message == "" || len(message) > maxMessageLen {
		return errors.New("twilio: message is missing or too long")
	}

	form := url.Values{}
	form.Set("From", c.fromPhone)
	form.Set("To", "+1"+phone)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("twilio: status code returned was %d", resp.StatusCode)
	}
	return nil
}
