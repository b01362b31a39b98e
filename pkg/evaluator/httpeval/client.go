// Package httpeval provides an evaluator.Evaluator implementation that posts
// receipts over HTTP with exponential backoff.
package httpeval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pagesmith/pkg/evaluator"
	"pagesmith/pkg/metrics"

	"github.com/sethvargo/go-retry"
)

// Defaults for the retry schedule: seven delivery attempts spaced 1, 2, 4,
// 8, 16 and 32 seconds apart.
const (
	DefaultRetryBase  = time.Second
	DefaultMaxRetries = 6
)

// Options configure the callback client.
type Options struct {
	// RetryBase is the first backoff interval; it doubles per retry.
	RetryBase time.Duration
	// MaxRetries is how many times a failed delivery is retried.
	MaxRetries uint64
}

// Client posts build receipts to the evaluation service and fulfills the
// evaluator.Evaluator interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	options    Options
}

// Notify posts the receipt to evaluationURL. Delivery counts as successful
// only when the service responds with 200 OK; anything else is retried with
// exponential backoff until the retry budget runs out.
func (c *Client) Notify(ctx context.Context, evaluationURL string, receipt evaluator.Receipt) error {
	body, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("could not marshal receipt: %w", err)
	}

	started := time.Now()
	defer func() {
		metrics.NotifySeconds.Record(ctx, time.Since(started).Seconds())
	}()

	backoff := retry.WithMaxRetries(c.options.MaxRetries, retry.NewExponential(c.options.RetryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, evaluationURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("could not create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)

			return retry.RetryableError(
				fmt.Errorf("notify failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
		}

		return nil
	})
}

// Ensure Client conforms to the evaluator.Evaluator interface at compile time.
var _ evaluator.Evaluator = (*Client)(nil)

// New constructs a Client that uses the provided http.Client to reach the
// evaluation service.
func New(httpClient *http.Client, options Options) *Client {
	if options.RetryBase <= 0 {
		options.RetryBase = DefaultRetryBase
	}
	if options.MaxRetries == 0 {
		options.MaxRetries = DefaultMaxRetries
	}

	return &Client{
		httpClient: httpClient,
		options:    options,
	}
}
