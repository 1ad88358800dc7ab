// Package httputil provides HTTP helpers shared by the outbound clients.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

// RequestFactory builds a fresh request for every attempt so that request
// bodies (multipart uploads) can be replayed.
type RequestFactory func(ctx context.Context) (*http.Request, error)

// Retryable reports whether a status code is worth another attempt:
// throttling and the gateway/unavailable family.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes a request and retries retryable responses with
// exponential backoff: RetryBaseDelay, then twice that, and so on.
//
// maxRetries <= 0 means a single attempt. On each retryable response the
// body is drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, newRequest RequestFactory, maxRetries int) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := newRequest(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}

		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
