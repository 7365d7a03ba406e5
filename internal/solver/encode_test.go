package solver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"simplex/internal/lp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	text := "let x1;\n\n  max x1 ;  \n"
	req, err := Encode(context.Background(), "http://localhost:8080/solve", lp.New("editor", text), "abc")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://localhost:8080/solve", req.URL.String())
	assert.Equal(t, "text/plain", req.Header.Get("Content-Type"))
	assert.Equal(t, "abc", req.Header.Get(RequestIDHeader))
	assert.Equal(t, int64(len(text)), req.ContentLength)

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, text, string(body))
}

func TestEncode_NoRequestID(t *testing.T) {
	req, err := Encode(context.Background(), "https://solver.example/solve", lp.New("editor", ""), "")
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get(RequestIDHeader))
	assert.Equal(t, int64(0), req.ContentLength)
}

func TestEncode_ConstructionFailures(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{"unparseable", "http://[::1"},
		{"relative", "/solve"},
		{"wrong scheme", "ftp://solver.example/solve"},
		{"no host", "http:///solve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Encode(context.Background(), tt.endpoint, lp.New("editor", "let x;"), "")
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, ErrRequestConstruction))

			var rc *RequestConstructionError
			assert.True(t, errors.As(err, &rc))
		})
	}
}
