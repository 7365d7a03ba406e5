package solver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"simplex/internal/lp"
	"simplex/internal/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const scenarioProgram = "let x1; let x2; max 3*x1+4*x2; s.t. x1+x2<=5; x1>=0; x2>=0;"

// newTestClient returns a client with its own transport so idle connections
// are closed when the test ends.
func newTestClient(t *testing.T, endpoint string, timeout time.Duration) *Client {
	t.Helper()
	tr := &http.Transport{}
	t.Cleanup(tr.CloseIdleConnections)
	return NewClientWithConfig(Config{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Transport: tr, Timeout: timeout},
	})
}

func TestClient_Solve_SendsProgramVerbatim(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/solve", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "sub-1", r.Header.Get(RequestIDHeader))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, scenarioProgram, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"solution":[5,0],"resultType":"optimal","certificate":[],"mapping":{"0":"x1","1":"x2"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/solve", time.Second)
	resp, err := client.Solve(context.Background(), lp.New("test", scenarioProgram), "sub-1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, result.TypeOptimal, resp.ResultType)
	assert.Equal(t, []float64{5, 0}, resp.Solution)
	assert.Equal(t, map[int]string{0: "x1", 1: "x2"}, resp.Mapping)
}

func TestClient_Solve_ServerRejected(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "bad program", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/solve", time.Second)
	_, err := client.Solve(context.Background(), lp.New("test", "max;"), "")
	require.Error(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "failures are not retried")
	assert.Equal(t, KindServerRejected, KindOf(err))
	assert.True(t, errors.Is(err, ErrServerRejected))
	assert.False(t, errors.Is(err, ErrUnreachable))

	var rejected *ServerRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusInternalServerError, rejected.StatusCode)
	assert.Equal(t, "bad program\n", rejected.Body)
	assert.Contains(t, err.Error(), "status 500: bad program")
}

func TestClient_Solve_TimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL+"/solve", 50*time.Millisecond)
	_, err := client.Solve(context.Background(), lp.New("test", scenarioProgram), "")
	require.Error(t, err)

	assert.Equal(t, KindUnreachable, KindOf(err))
	assert.False(t, errors.Is(err, ErrServerRejected))

	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, server.URL+"/solve", unreachable.Endpoint)
}

func TestClient_Solve_ConnectionRefusedIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/solve"
	server.Close()

	client := newTestClient(t, endpoint, time.Second)
	_, err := client.Solve(context.Background(), lp.New("test", scenarioProgram), "")
	require.Error(t, err)
	assert.Equal(t, KindUnreachable, KindOf(err))
}

func TestClient_Solve_RequestConstructionSendsNothing(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	var nilCtx context.Context
	client := newTestClient(t, server.URL+"/solve", time.Second)
	_, err := client.Solve(nilCtx, lp.New("test", scenarioProgram), "")
	require.Error(t, err)

	assert.Equal(t, KindRequestConstruction, KindOf(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	_, err = newTestClient(t, "ftp://example.com/solve", time.Second).Solve(context.Background(), lp.New("test", ""), "")
	assert.Equal(t, KindRequestConstruction, KindOf(err))
}

func TestClient_Solve_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>proxy error</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/solve", time.Second)
	_, err := client.Solve(context.Background(), lp.New("test", scenarioProgram), "")
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestClient_Solve_Accepts2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"resultType":"infeasible","solution":[],"certificate":[],"mapping":{}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/solve", time.Second)
	resp, err := client.Solve(context.Background(), lp.New("test", scenarioProgram), "")
	require.NoError(t, err)
	assert.Equal(t, result.TypeInfeasible, resp.ResultType)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClientWithConfig(DefaultConfig())
	assert.Equal(t, DefaultEndpoint, client.Endpoint())
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}
