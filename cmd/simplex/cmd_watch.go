package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"simplex/cmd/simplex/ui"
	"simplex/internal/logging"
	"simplex/internal/lp"
	"simplex/internal/session"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// saveDebounce coalesces the events one editor save produces.
const saveDebounce = 150 * time.Millisecond

// watchCmd re-solves a program file on every save
var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Solve a program file now and again on every save",
	Long: `Solves the file once, then watches it. Every save sends the file again;
earlier requests are not cancelled and the latest reply to arrive is shown.
A failed submission is reported and the previous result stays current.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("format", "f", "text", "Output format: text, latex, markdown, pretty, json")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", args[0], err)
	}

	w := &programWatcher{
		path:    path,
		session: newSession(),
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}
	return w.run(ctx)
}

// programWatcher turns saves of one file into submissions.
type programWatcher struct {
	path    string
	session *session.Session
	out     io.Writer
	errOut  io.Writer

	// set by tests to observe each applied reply
	onAccept func(session.Reply)
}

func (w *programWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by replacing the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	logging.Boot("Watching %s", w.path)
	fmt.Fprintf(w.errOut, "watching %s (Ctrl+C to stop)\n", w.path)

	replies := make(chan session.Reply)
	var inflight sync.WaitGroup
	defer inflight.Wait()

	// cancelled before Wait so pending senders give up
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	submit := func() {
		p, err := lp.ReadFile(w.path)
		if err != nil {
			logger.Warn("read failed", zap.String("path", w.path), zap.Error(err))
			return
		}
		inflight.Add(1)
		go func() {
			defer inflight.Done()
			r := w.session.Submit(ctx, p)
			select {
			case replies <- r:
			case <-ctx.Done():
			}
		}()
	}

	saves := make(chan struct{}, 1)
	debouncer := ui.NewDebouncer(saveDebounce)
	defer debouncer.Cancel()

	submit()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debouncer.Debounce(func() {
				select {
				case saves <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-saves:
			logging.UIDebug("Save detected: %s", w.path)
			submit()

		case r := <-replies:
			w.apply(r)
		}
	}
}

// apply accepts a reply into the session and prints the outcome.
func (w *programWatcher) apply(r session.Reply) {
	w.session.Accept(r)
	stamp := time.Now().Format("15:04:05")

	if r.OK() {
		fmt.Fprintf(w.out, "[%s] %s\n", stamp, filepath.Base(w.path))
		_ = writeReply(w.out, w.errOut, r)
	} else {
		fmt.Fprintf(w.errOut, "[%s] ", stamp)
		writeFailure(w.errOut, r.Err)
		if prev, ok := w.session.Current(); ok {
			fmt.Fprintf(w.errOut, "keeping previous result (%s)\n", prev.Certificate.Headline)
		}
	}

	if w.onAccept != nil {
		w.onAccept(r)
	}
}
