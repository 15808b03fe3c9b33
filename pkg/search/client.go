// Package search talks to the external job-search service.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/job"
	"github.com/artem13815/jobsearch/pkg/logging"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 15 * time.Second
	// DefaultMaxBodyBytes bounds a successful search response.
	DefaultMaxBodyBytes int64 = 32 << 20
)

// Searcher runs a keyword search and returns canonical jobs.
type Searcher interface {
	Search(ctx context.Context, term string) ([]job.Job, error)
}

type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxBodyBytes int64
	HTTPClient   *http.Client
}

// Client implements Searcher over POST {base}/search.
type Client struct {
	baseURL    string
	timeout    time.Duration
	maxBody    int64
	httpClient *http.Client
	log        *logging.Logger
}

func NewClient(cfg Config, log *logging.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, timeout: timeout, maxBody: maxBody, httpClient: httpClient, log: log}
}

type searchRequest struct {
	SearchTerm string `json:"search_term"`
}

func (c *Client) Search(ctx context.Context, term string) ([]job.Job, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Validation("search term is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(searchRequest{SearchTerm: term})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("search", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperr.Upstream("search", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, apperr.Upstream("search", err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%w: search response exceeds %d bytes", apperr.ErrMalformedResponse, c.maxBody)
	}
	jobs, skipped, err := job.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedResponse, err)
	}
	if skipped > 0 {
		c.log.Warn("search returned non-object records", "term", term, "skipped", skipped)
	}
	return jobs, nil
}

var _ Searcher = (*Client)(nil)
