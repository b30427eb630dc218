// Package mailgun sends transactional email through the Mailgun messages API.
package mailgun

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
	defaultBaseURL = "https://api.mailgun.net"
	maxSubjectLen  = 5000
	maxBodyLen     = 5000
)

// Config configures a Client.
type Config struct {
	Domain     string
	APIKey     string
	From       string
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the Mailgun messages endpoint for a single sending domain.
type Client struct {
	domain     string
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.Domain == "" || cfg.APIKey == "" || cfg.From == "" {
		return nil, errors.New("mailgun: domain, api key and from address are required")
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
		domain:     cfg.Domain,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Send delivers a plain-text message to the given address.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if to == "" || !strings.Contains(to, "@") {
		return errors.New("mailgun: valid recipient address is required")
	}
	if subject == "" || len(subject) > maxSubjectLen {
		return errors.New("mailgun: subject is missing or too long")
	}
	if body == "" || len(body) > maxBodyLen {
		return errors.New("mailgun: body is missing or too long")
	}

	form := url.Values{}
	form.Set("from", c.from)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("mailgun: build request: %w", err)
	}
	req.SetBasicAuth("api", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailgun: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("mailgun: status code returned was %d", resp.StatusCode)
	}
	return nil
}
