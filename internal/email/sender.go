package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no API key was provided at startup.
var ErrNotConfigured = errors.New("email service not configured")

// Sender delivers transactional email. The role-upgrade workflow depends on
// this interface only, so tests can substitute a fake dispatcher.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config holds client credentials and addressing.
type Config struct {
	APIKey  string
	BaseURL string
	From    string
}

// Client talks to a Resend-compatible HTTP email API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds the API client. A client without an API key is still
// constructed; Send reports ErrNotConfigured so callers surface a clear
// "service not configured" outcome instead of silently degrading.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts a single message to the email API.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	if c.cfg.APIKey == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email api returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
