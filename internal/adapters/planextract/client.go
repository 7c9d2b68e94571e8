package planextract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/takeoff-go/internal/adapters/metrics"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second
	extractPath        = "/extract-plan"
)

// Options configures a Client. Zero values fall back to defaults;
// MaxRetries is taken as given and a negative value selects the default.
type Options struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	BackoffBase       time.Duration
	FailureThreshold  int
	CoolDown          time.Duration
	Clock             shared.Clock
	HTTPClient        *http.Client
}

// Client calls the plan-extraction service: rate limited, retried with
// exponential backoff and jitter, behind a circuit breaker
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	breaker     *Breaker
	baseURL     string
	apiKey      string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewClient creates a plan-extraction client
func NewClient(opts Options) *Client {
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 5
	}
	if opts.CoolDown <= 0 {
		opts.CoolDown = 30 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		breaker:     NewBreaker(opts.FailureThreshold, opts.CoolDown, opts.Clock),
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		clock:       opts.Clock,
	}
}

// Breaker exposes the client's circuit breaker
func (c *Client) Breaker() *Breaker {
	return c.breaker
}

type extractRequest struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
}

// Extract uploads a plan drawing and returns the rooms the service read off it
func (c *Client) Extract(ctx context.Context, fileName string, content []byte) (*Plan, error) {
	if len(content) == 0 {
		return nil, shared.NewValidationError("content", "plan file is empty")
	}
	body := extractRequest{
		FileName: fileName,
		MimeType: mimeType(fileName),
		Content:  base64.StdEncoding.EncodeToString(content),
	}

	var response struct {
		Data Plan `json:"data"`
	}
	err := c.breaker.Do(func() error {
		return c.post(ctx, extractPath, body, &response)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract plan: %w", err)
	}
	return &response.Data, nil
}

func mimeType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// retryableError marks a failure worth another attempt
type retryableError struct {
	message    string
	reason     string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// IsRetryable reports whether err came from a retryable failure
func IsRetryable(err error) bool {
	var r *retryableError
	return errors.As(err, &r)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		retryErr, err := c.do(ctx, path, payload, result)
		if err != nil {
			return err
		}
		if retryErr == nil {
			return nil
		}
		lastErr = retryErr

		if attempt >= c.maxRetries {
			break
		}
		delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retryErr.retryAfter > 0 {
			delay = retryErr.retryAfter
		}
		metrics.RecordExtractionRetry(retryErr.reason)
		if err := c.clock.Sleep(ctx, delay); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do performs one attempt. A non-nil retryableError asks for another attempt;
// a non-nil error is final.
func (c *Client) do(ctx context.Context, path string, payload []byte, result interface{}) (*retryableError, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordExtractionRequest(0, time.Since(start).Seconds())
		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		return &retryableError{message: fmt.Sprintf("network error: %v", err), reason: "network_error"}, nil
	}
	defer resp.Body.Close()
	metrics.RecordExtractionRequest(resp.StatusCode, time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var after time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			after = time.Duration(seconds) * time.Second
		}
		return &retryableError{message: "rate limited (429)", reason: "rate_limit", retryAfter: after}, nil
	case resp.StatusCode >= 500:
		return &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode), reason: "server_error"}, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("plan extraction error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil, nil
}

// addJitter scales d by a random factor in [0.5, 1.5)
func addJitter(d time.Duration) time.Duration {
	return time.Duration(float64(d) * (0.5 + rand.Float64()))
}
