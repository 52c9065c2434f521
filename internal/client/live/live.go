// Package live implements the portal APIs over the booking HTTP API.
package live

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

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client"
)

const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	// BaseURL includes the /api prefix, e.g. http://localhost:8080/api.
	BaseURL    string
	BusinessID string
	Tokens     client.TokenSource
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client issues JSON requests with the bearer token from Tokens.
type Client struct {
	base       string
	businessID string
	tokens     client.TokenSource
	http       *http.Client
	log        zerolog.Logger
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		base:       strings.TrimRight(opts.BaseURL, "/"),
		businessID: opts.BusinessID,
		tokens:     opts.Tokens,
		http:       hc,
		log:        opts.Logger,
	}
}

// Set exposes the client through the client interfaces.
func (c *Client) Set() *client.Set {
	return &client.Set{
		Auth:         authAPI{c},
		Appointments: appointmentAPI{c},
		Services:     serviceAPI{c},
		Staff:        staffAPI{c},
		Settings:     settingsAPI{c},
		Reset:        func() {},
	}
}

func (c *Client) AuthAPI() client.AuthAPI               { return authAPI{c} }
func (c *Client) AppointmentAPI() client.AppointmentAPI { return appointmentAPI{c} }
func (c *Client) ServiceAPI() client.ServiceAPI         { return serviceAPI{c} }
func (c *Client) StaffAPI() client.StaffAPI             { return staffAPI{c} }
func (c *Client) SettingsAPI() client.SettingsAPI       { return settingsAPI{c} }

// scoped returns query with the business id added.
func (c *Client) scoped(query url.Values) url.Values {
	if query == nil {
		query = url.Values{}
	}
	if c.businessID != "" {
		query.Set("businessId", c.businessID)
	}
	return query
}

// do sends one request. A nil out discards the response body. Non-2xx
// answers come back as *client.APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &client.APIError{Status: resp.StatusCode, Message: client.MessageFrom(resp.StatusCode, raw)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
