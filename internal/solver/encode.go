package solver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"simplex/internal/lp"
)

const (
	// ContentType is sent exactly; the service compares the header verbatim,
	// so no charset parameter is added.
	ContentType = "text/plain"

	// RequestIDHeader carries the submission ID for correlation in logs.
	RequestIDHeader = "X-Request-ID"
)

// Encode builds the POST that carries a program to the solver. The body is
// the program text byte for byte. Any failure here is a
// *RequestConstructionError: nothing has been sent yet.
func Encode(ctx context.Context, endpoint string, p lp.Program, requestID string) (*http.Request, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &RequestConstructionError{Err: fmt.Errorf("invalid endpoint %q: %w", endpoint, err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &RequestConstructionError{Err: fmt.Errorf("endpoint %q must be an http or https URL", endpoint)}
	}
	if u.Host == "" {
		return nil, &RequestConstructionError{Err: fmt.Errorf("endpoint %q has no host", endpoint)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(p.Text))
	if err != nil {
		return nil, &RequestConstructionError{Err: err}
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	return req, nil
}
