// Package backend talks to the job-portal backend API, the source of truth for roles and applications.
package backend

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

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/auth"
	"github.com/maxviazov/job-portal/internal/repository"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRetries   = 2
	DefaultRetryWait = 250 * time.Millisecond
)

// Config holds the backend client settings.
type Config struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries" validate:"gte=0,lte=10"`
	RetryWait time.Duration `mapstructure:"retry_wait"`
}

// Client is a JSON client with timeout and retry on transport errors and 5xx.
// It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	cfg     Config
	log     zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = DefaultRetryWait
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cfg:     cfg,
		log:     logger.With().Str("module", "repository").Str("component", "backend").Logger(),
	}
}

// Ping checks the backend health endpoint without retries.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return eris.Wrap(err, "building ping request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(repository.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return eris.Wrapf(repository.ErrUnavailable, "backend health returned %d", resp.StatusCode)
	}
	return nil
}

// do sends one logical request. in is JSON-encoded when non-nil; out is decoded from a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return eris.Wrap(err, "encoding request body")
		}
		payload = b
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		resp    *http.Response
		lastErr error
	)
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return eris.Wrap(ctx.Err(), "waiting to retry backend request")
			case <-time.After(c.cfg.RetryWait):
			}
		}

		req, err := c.newRequest(ctx, method, target, payload)
		if err != nil {
			return err
		}
		r, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return eris.Wrap(ctx.Err(), "backend request cancelled")
			}
			lastErr = err
			c.log.Warn().Err(err).Str("method", method).Str("path", path).Int("attempt", attempt+1).Msg("backend request failed")
			continue
		}
		if r.StatusCode >= http.StatusInternalServerError {
			_, _ = io.Copy(io.Discard, r.Body)
			r.Body.Close()
			lastErr = fmt.Errorf("status %d", r.StatusCode)
			c.log.Warn().Int("status", r.StatusCode).Str("method", method).Str("path", path).Int("attempt", attempt+1).Msg("backend returned server error")
			continue
		}
		resp = r
		break
	}
	if resp == nil {
		return eris.Wrapf(repository.ErrUnavailable, "%s %s after %d attempts: %v", method, path, c.cfg.Retries+1, lastErr)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return eris.Wrapf(err, "%s %s returned %d", method, path, resp.StatusCode)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, eris.Wrap(err, "building backend request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := auth.TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func mapStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return auth.ErrUnauthorized
	case http.StatusForbidden:
		return auth.ErrForbidden
	default:
		return repository.MapStatus(code)
	}
}
