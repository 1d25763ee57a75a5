// Package trivia wraps the third-party discovery APIs the app fronts:
// news search, book search, video search, and random number facts.
// Each call is a single GET with the API key in the query string and a
// 1:1 mapping of the upstream JSON; there is no retry layer here.
package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Default upstream endpoints.
const (
	defaultNewsBaseURL   = "https://newsdata.io/api/1/latest"
	defaultBooksBaseURL  = "https://www.googleapis.com/books/v1/volumes"
	defaultVideosBaseURL = "https://www.googleapis.com/youtube/v3/search"
	defaultFactBaseURL   = "http://numbersapi.com/random/trivia"
)

// Keys holds the per-service API keys. Empty keys disable the service;
// calls then fail with a StatusError-free configuration error.
type Keys struct {
	News    string
	Books   string
	YouTube string
}

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Service string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s upstream returned status %d", e.Service, e.Code)
}

// RequestError reports a transport-level failure reaching an upstream.
type RequestError struct {
	Service string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client calls the trivia upstreams over a shared HTTP client.
type Client struct {
	http   *http.Client
	logger *zap.Logger
	keys   Keys

	newsBaseURL   string
	booksBaseURL  string
	videosBaseURL string
	factBaseURL   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBaseURLs overrides the upstream endpoints, primarily for tests.
func WithBaseURLs(news, books, videos, fact string) Option {
	return func(c *Client) {
		c.newsBaseURL = news
		c.booksBaseURL = books
		c.videosBaseURL = videos
		c.factBaseURL = fact
	}
}

// NewClient creates a trivia client with the given API keys.
func NewClient(keys Keys, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		http:          &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
		keys:          keys,
		newsBaseURL:   defaultNewsBaseURL,
		booksBaseURL:  defaultBooksBaseURL,
		videosBaseURL: defaultVideosBaseURL,
		factBaseURL:   defaultFactBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON issues the GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, service, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &RequestError{Service: service, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("trivia upstream error",
			zap.String("service", service),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Service: service, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Service: service, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
