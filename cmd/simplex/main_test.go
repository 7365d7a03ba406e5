package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"simplex/internal/config"
	"simplex/internal/lp"
	"simplex/internal/session"
	"simplex/internal/solver"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	scenarioA = `{"solution":[5,0],"resultType":"optimal","certificate":[],"mapping":{"0":"x1","1":"x2"}}`
	scenarioB = `{"resultType":"infeasible","solution":[],"certificate":[],"mapping":{}}`
	scenarioC = `{"solution":[1,2],"resultType":"unbounded","certificate":[1,1],"mapping":{"0":"x1","1":"x2"}}`
)

// fakeSolver answers by request body; unknown bodies get a 500.
func fakeSolver(t *testing.T, replies map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "text/plain" {
			http.Error(w, "Content-Type must be text/plain", http.StatusUnsupportedMediaType)
			return
		}
		body, _ := io.ReadAll(r.Body)
		reply, ok := replies[strings.TrimSpace(string(body))]
		if !ok {
			http.Error(w, "bad program", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, reply)
	}))
	t.Cleanup(server.Close)
	return server
}

// setup resets globals to a default config pointing at endpoint.
func setup(t *testing.T, endpoint string) {
	t.Helper()
	for _, k := range []string{"SIMPLEX_SOLVER_URL", "SIMPLEX_TIMEOUT", "SIMPLEX_DEBUG", "SIMPLEX_THEME"} {
		t.Setenv(k, "")
	}
	logger = zap.NewNop()
	workspace = t.TempDir()
	configPath = ""
	prettyStyle = "notty"
	cfg = config.DefaultConfig()
	cfg.Solver.Endpoint = endpoint
	cfg.Solver.Timeout = "5s"
	t.Cleanup(func() {
		workspace, configPath, prettyStyle = "", "", ""
	})
}

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func writeProgram(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestRunSolve_SingleFile(t *testing.T) {
	server := fakeSolver(t, map[string]string{"prog-a": scenarioA})
	setup(t, server.URL+"/solve")

	cmd, out, _ := newTestCmd()
	require.NoError(t, runSolve(cmd, []string{writeProgram(t, "a.lp", "prog-a")}))

	assert.Equal(t, "Result is optimal\nSolution:\n  x1 = 5\n  x2 = 0\n", out.String())
}

func TestRunSolve_BatchKeepsArgumentOrder(t *testing.T) {
	server := fakeSolver(t, map[string]string{"prog-b": scenarioB, "prog-c": scenarioC})
	setup(t, server.URL+"/solve")
	cfg.Batch.MaxParallel = 2

	files := []string{
		writeProgram(t, "c.lp", "prog-c"),
		writeProgram(t, "bad.lp", "nonsense"),
		writeProgram(t, "b.lp", "prog-b"),
	}

	cmd, out, errOut := newTestCmd()
	err := runSolve(cmd, files)
	require.Error(t, err)
	assert.Equal(t, "1 of 3 submissions failed", err.Error())

	got := out.String()
	ic, ibad, ib := strings.Index(got, "c.lp"), strings.Index(got, "bad.lp"), strings.Index(got, "b.lp ==")
	assert.True(t, ic < ibad && ibad < ib, "results out of order:\n%s", got)
	assert.Contains(t, got, "Unbounded ray:")
	assert.Contains(t, got, "Result is infeasible")
	assert.Contains(t, errOut.String(), solver.KindServerRejected.Title())
	assert.Contains(t, errOut.String(), "bad program")
}

func TestRunSolve_UnreachableIsDistinct(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/solve"
	server.Close()
	setup(t, url)

	cmd, _, errOut := newTestCmd()
	err := runSolve(cmd, []string{writeProgram(t, "a.lp", "prog-a")})
	require.Error(t, err)
	assert.Contains(t, errOut.String(), solver.KindUnreachable.Title())
	assert.NotContains(t, errOut.String(), solver.KindServerRejected.Title())
}

func TestRunSolve_BlankProgramIsStillSent(t *testing.T) {
	server := fakeSolver(t, map[string]string{"": scenarioB})
	setup(t, server.URL+"/solve")
	core, logs := observer.New(zapcore.WarnLevel)
	logger = zap.New(core)

	cmd, out, _ := newTestCmd()
	require.NoError(t, runSolve(cmd, []string{writeProgram(t, "blank.lp", "  \n")}))

	assert.Equal(t, "Result is infeasible\n", out.String())
	assert.Equal(t, 1, logs.FilterMessage("program is blank, sending it anyway").Len())
}

func TestRunSolve_Formats(t *testing.T) {
	server := fakeSolver(t, map[string]string{"prog-a": scenarioA})
	setup(t, server.URL+"/solve")
	path := writeProgram(t, "a.lp", "prog-a")

	tests := []struct {
		format string
		want   string
	}{
		{"latex", `\begin{pmatrix} \text{x1} \\ \text{x2} \end{pmatrix}`},
		{"markdown", "| x1 | 5 |"},
		{"json", `"resultType": "optimal"`},
		{"pretty", "Result is optimal"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg.Render.Format = tt.format
			cmd, out, _ := newTestCmd()
			require.NoError(t, runSolve(cmd, []string{path}))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRunRender(t *testing.T) {
	setup(t, "http://localhost:8080/solve")

	cmd, out, _ := newTestCmd()
	require.NoError(t, runRender(cmd, []string{writeProgram(t, "c.json", scenarioC)}))
	assert.Equal(t, "Result is unbounded\nSolution:\n  x1 = 1\n  x2 = 2\nUnbounded ray:\n  x1 = 1\n  x2 = 1\n", out.String())
}

func TestRunRender_Stdin(t *testing.T) {
	setup(t, "http://localhost:8080/solve")

	cmd, out, _ := newTestCmd()
	cmd.SetIn(strings.NewReader(scenarioB))
	require.NoError(t, runRender(cmd, []string{"-"}))
	assert.Equal(t, "Result is infeasible\n", out.String())
}

func TestRunRender_Malformed(t *testing.T) {
	setup(t, "http://localhost:8080/solve")

	cmd, _, errOut := newTestCmd()
	short := `{"resultType":"optimal","solution":[1,2],"mapping":{"0":"x"}}`
	err := runRender(cmd, []string{writeProgram(t, "short.json", short)})
	require.Error(t, err)
	assert.Equal(t, solver.KindMalformedResponse, solver.KindOf(err))
	assert.Contains(t, errOut.String(), solver.KindMalformedResponse.Title())
}

func TestRunRender_StrictResultType(t *testing.T) {
	setup(t, "http://localhost:8080/solve")
	odd := `{"resultType":"degenerate","solution":[3],"certificate":[],"mapping":{"0":"x"}}`
	path := writeProgram(t, "odd.json", odd)

	cmd, out, _ := newTestCmd()
	require.NoError(t, runRender(cmd, []string{path}))
	assert.Contains(t, out.String(), "Result is degenerate")

	cfg.Render.StrictResultType = true
	cmd, _, _ = newTestCmd()
	err := runRender(cmd, []string{path})
	assert.Equal(t, solver.KindMalformedResponse, solver.KindOf(err))
}

func TestWatch_ResubmitsOnSave(t *testing.T) {
	server := fakeSolver(t, map[string]string{"prog-a": scenarioA, "prog-c": scenarioC})
	setup(t, server.URL+"/solve")
	path := writeProgram(t, "watched.lp", "prog-a")

	applied := make(chan session.Reply, 8)
	var out, errOut bytes.Buffer
	w := &programWatcher{
		path:     path,
		session:  newSession(),
		out:      &out,
		errOut:   &errOut,
		onAccept: func(r session.Reply) { applied <- r },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	next := func() session.Reply {
		t.Helper()
		select {
		case r := <-applied:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a reply")
			return session.Reply{}
		}
	}

	first := next()
	require.True(t, first.OK(), "initial submission failed: %v", first.Err)
	assert.Equal(t, "Result is optimal", first.Certificate.Headline)

	require.NoError(t, os.WriteFile(path, []byte("prog-c"), 0644))
	second := next()
	require.True(t, second.OK(), "resubmission failed: %v", second.Err)
	assert.Equal(t, "Result is unbounded", second.Certificate.Headline)

	require.NoError(t, os.WriteFile(path, []byte("nonsense"), 0644))
	third := next()
	assert.Equal(t, solver.KindServerRejected, third.Kind())

	current, ok := w.session.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	assert.Contains(t, out.String(), "Unbounded ray:")
	assert.Contains(t, errOut.String(), "keeping previous result (Result is unbounded)")
}

func TestNewCLILogger(t *testing.T) {
	verbose = false

	root, err := newCLILogger(rootCmd)
	require.NoError(t, err)
	assert.False(t, root.Core().Enabled(zapcore.ErrorLevel), "workbench logger must stay silent")

	sub, err := newCLILogger(solveCmd)
	require.NoError(t, err)
	assert.True(t, sub.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, sub.Core().Enabled(zapcore.DebugLevel))

	verbose = true
	t.Cleanup(func() { verbose = false })
	sub, err = newCLILogger(solveCmd)
	require.NoError(t, err)
	assert.True(t, sub.Core().Enabled(zapcore.DebugLevel))
}

func TestRootCommand_ExamplePlain(t *testing.T) {
	setup(t, "http://localhost:8080/solve")
	dir := t.TempDir()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"-w", dir, "example", "--plain"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		examplePlain = false
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, lp.Example+"\n", out.String())
}

func TestRootCommand_ConfigInitAndShow(t *testing.T) {
	setup(t, "http://localhost:8080/solve")
	dir := t.TempDir()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configForce = false
	})

	rootCmd.SetArgs([]string{"-w", dir, "config", "init"})
	require.NoError(t, rootCmd.Execute())
	wantPath := config.DefaultPath(dir)
	assert.FileExists(t, wantPath)

	// a second init refuses to overwrite
	rootCmd.SetArgs([]string{"-w", dir, "config", "init"})
	assert.Error(t, rootCmd.Execute())

	out.Reset()
	rootCmd.SetArgs([]string{"-w", dir, "--endpoint", "http://solver.test:9000/solve", "config", "show"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "# "+wantPath+"\n"), out.String())
	assert.Contains(t, out.String(), "endpoint: http://solver.test:9000/solve")
}
