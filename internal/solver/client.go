// Package solver sends LP programs to the solving service.
//
// The client is a pipe: it does not parse the program, does not retry, and
// does not cancel a request because another one started. Every failure is
// reported as exactly one of the kinds in errors.go.
package solver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"simplex/internal/logging"
	"simplex/internal/lp"
	"simplex/internal/result"
)

// DefaultEndpoint is where the reference solver listens.
const DefaultEndpoint = "http://localhost:8080/solve"

// maxBodyBytes caps how much of a reply is read.
const maxBodyBytes = 8 << 20

// Config configures a Client.
type Config struct {
	Endpoint string
	Timeout  time.Duration

	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
}

// DefaultConfig returns the reference endpoint with a 30s timeout.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Timeout:  30 * time.Second,
	}
}

// Client talks to one solver endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClientWithConfig creates a client with custom config.
func NewClientWithConfig(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
	}
}

// Endpoint returns the solve URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Solve sends one program and returns the decoded response body. It issues
// exactly one request.
func (c *Client) Solve(ctx context.Context, p lp.Program, requestID string) (*result.Response, error) {
	log := logging.Get(logging.CategoryTransport).With("submission", requestID)

	req, err := Encode(ctx, c.endpoint, p, requestID)
	if err != nil {
		log.Error("request construction failed: %v", err)
		return nil, err
	}

	start := time.Now()
	log.Debug("POST %s source=%s bytes=%d", c.endpoint, p.Source, len(p.Text))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("no response after %v: %v", time.Since(start), err)
		return nil, &UnreachableError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Error("response body lost after status %d: %v", resp.StatusCode, err)
		return nil, &UnreachableError{Endpoint: c.endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	log.Debug("status=%d bytes=%d elapsed=%v", resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("solver rejected program: status=%d", resp.StatusCode)
		return nil, &ServerRejectedError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	decoded, err := result.ParseResponse(bytes.NewReader(body))
	if err != nil {
		log.Error("%v", err)
		return nil, err
	}
	return decoded, nil
}
