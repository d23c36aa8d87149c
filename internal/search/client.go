// Package search talks to the optional web-search backend and implements
// that backend.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Status tells whether a search produced live results.
type Status string

const (
	// StatusOK means the backend answered successfully.
	StatusOK Status = "ok"
	// StatusDegraded means no results were fetched and callers should use templates.
	StatusDegraded Status = "degraded"
)

// ReasonNotConfigured is the degraded reason when no endpoint is set.
const ReasonNotConfigured = "search not configured"

// Snippet is a title/text pair taken from a search result.
type Snippet struct {
	Title  string `json:"title"`
	Text   string `json:"snippet"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source,omitempty"`
}

// Outcome is the result of a search call. A Degraded outcome always carries
// zero snippets and the reason the fetch was abandoned.
type Outcome struct {
	Status   Status
	Snippets []Snippet
	Reason   string
}

// Degraded reports whether the caller should fall back to templates.
func (o Outcome) Degraded() bool {
	return o.Status == StatusDegraded
}

func degraded(reason string) Outcome {
	return Outcome{Status: StatusDegraded, Reason: reason}
}

// Request is the body posted to the backend.
type Request struct {
	Query      string `json:"query" binding:"required"`
	NumResults int    `json:"num_results"`
}

type response struct {
	Results []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Content string `json:"content"`
		URL     string `json:"url"`
		Source  string `json:"source"`
	} `json:"results"`
}

// Client calls POST <endpoint>/api/web-search. A zero endpoint is valid and
// makes every call return a degraded outcome without touching the network.
type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a search client. timeout bounds each request.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}

	//nolint:exhaustruct // defaults for the remaining settings
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "web-search",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Search circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// Search asks the backend for up to n results. It never returns an error:
// failures are reported as a degraded outcome and are not retried.
func (c *Client) Search(ctx context.Context, query string, n int) Outcome {
	if !c.Configured() {
		return degraded(ReasonNotConfigured)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, query, n)
	})
	if err != nil {
		c.logger.Warn("Web search unavailable, using templates", "query", query, "error", err)
		return degraded(err.Error())
	}

	snippets, _ := res.([]Snippet)
	c.logger.Debug("Web search completed", "query", query, "results", len(snippets))

	return Outcome{Status: StatusOK, Snippets: snippets}
}

func (c *Client) fetch(ctx context.Context, query string, n int) ([]Snippet, error) {
	body, err := json.Marshal(Request{Query: query, NumResults: n})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/web-search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search backend returned HTTP %d", resp.StatusCode)
	}

	var decoded response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if decoded.Results == nil {
		return nil, errors.New("search response has no results field")
	}

	snippets := make([]Snippet, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		text := r.Snippet
		if text == "" {
			text = r.Content
		}
		snippets = append(snippets, Snippet{
			Title:  r.Title,
			Text:   text,
			URL:    r.URL,
			Source: r.Source,
		})
	}

	return snippets, nil
}
