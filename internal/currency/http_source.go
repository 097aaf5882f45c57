package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"convertkit.dev/internal/logging"
)

// feedResponse is the payload of an open.er-api.com style "latest rates" endpoint.
type feedResponse struct {
	Result             string             `json:"result"`
	BaseCode           string             `json:"base_code"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	Rates              map[string]float64 `json:"rates"`
	ErrorType          string             `json:"error-type"`
}

// HTTPSource fetches rates from a JSON feed.
type HTTPSource struct {
	url         string
	client      *http.Client
	maxAttempts int
	backoff     func(attempt int) time.Duration
	logger      *slog.Logger
}

// HTTPSourceOption customizes an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithRetry sets the attempt budget and the delay before each retry.
func WithRetry(maxAttempts int, backoff func(attempt int) time.Duration) HTTPSourceOption {
	return func(s *HTTPSource) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if backoff != nil {
			s.backoff = backoff
		}
	}
}

// WithLogger sets the logger used to report failed attempts.
func WithLogger(l *slog.Logger) HTTPSourceOption {
	return func(s *HTTPSource) { s.logger = l }
}

// NewHTTPSource returns a source reading the feed at url.
func NewHTTPSource(url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxAttempts: 3,
		backoff:     ExponentialBackoff,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "rate_source"))
	return s
}

// ExponentialBackoff waits 1s, 2s, 4s... before successive retries.
func ExponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

// FetchRates downloads the feed, retrying with backoff on failure.
func (s *HTTPSource) FetchRates(ctx context.Context) (RateTable, error) {
	var lastErr error
	for i := 0; i < s.maxAttempts; i++ {
		if i > 0 {
			delay := s.backoff(i)
			select {
			case <-ctx.Done():
				return RateTable{}, ctx.Err()
			case <-time.After(delay):
			}
		}

		table, err := s.doFetch(ctx)
		if err == nil {
			return table, nil
		}
		lastErr = err
		logging.LogError(s.logger, "rate fetch attempt failed", err,
			slog.Int("attempt", i+1),
			slog.String("url", s.url))

		if ctx.Err() != nil {
			return RateTable{}, ctx.Err()
		}
	}
	return RateTable{}, lastErr
}

func (s *HTTPSource) doFetch(ctx context.Context) (RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return RateTable{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return RateTable{}, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, s.logger, "http_response_body")

	if resp.StatusCode != http.StatusOK {
		return RateTable{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RateTable{}, err
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return RateTable{}, fmt.Errorf("decoding rate feed: %w", err)
	}
	if feed.Result != "" && feed.Result != "success" {
		return RateTable{}, fmt.Errorf("rate feed error: %s", feed.ErrorType)
	}
	if feed.BaseCode == "" || len(feed.Rates) == 0 {
		return RateTable{}, fmt.Errorf("empty response from rate feed")
	}

	asOf := time.Now()
	if feed.TimeLastUpdateUnix > 0 {
		asOf = time.Unix(feed.TimeLastUpdateUnix, 0)
	}

	rates := make(map[string]float64, len(feed.Rates))
	for code, r := range feed.Rates {
		rates[strings.ToUpper(code)] = r
	}
	return RateTable{Base: strings.ToUpper(feed.BaseCode), Rates: rates, AsOf: asOf}, nil
}
