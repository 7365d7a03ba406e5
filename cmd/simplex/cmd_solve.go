package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"simplex/internal/lp"
	"simplex/internal/session"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// solveCmd submits one or more program files
var solveCmd = &cobra.Command{
	Use:   "solve [file...]",
	Short: "Send LP programs to the solver and print the results",
	Long: `Sends each program file to the solver as-is and prints its result.

Several files are solved concurrently (batch.max_parallel at a time) and
printed in argument order. "-" or no argument reads the program from stdin.

Examples:
  simplex solve diet.lp
  simplex solve --format latex a.lp b.lp
  echo "let x; max x; s.t. x <= 1;" | simplex solve`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringP("format", "f", "text", "Output format: text, latex, markdown, pretty, json")
}

func runSolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession()
	replies, err := solveAll(ctx, s, args)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := 0
	for i, r := range replies {
		if len(args) > 1 {
			fmt.Fprintf(out, "== %s ==\n", args[i])
		}
		if err := writeReply(out, errOut, r); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(replies))
	}
	return nil
}

// solveAll reads every program, then submits them with bounded parallelism.
// Each program gets exactly one request. A failed submission does not stop
// the others.
func solveAll(ctx context.Context, s *session.Session, paths []string) ([]session.Reply, error) {
	programs := make([]lp.Program, len(paths))
	for i, path := range paths {
		p, err := lp.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if p.Blank() {
			logger.Warn("program is blank, sending it anyway", zap.String("source", p.Source))
		}
		programs[i] = p
	}

	var bar *progressbar.ProgressBar
	if len(programs) > 1 {
		bar = progressbar.NewOptions(len(programs),
			progressbar.OptionSetDescription("solving"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	replies := make([]session.Reply, len(programs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Batch.MaxParallel)

	for i, p := range programs {
		i, p := i, p
		g.Go(func() error {
			r := s.Submit(gctx, p)
			replies[i] = r
			logger.Debug("submission finished",
				zap.String("source", p.Source),
				zap.String("submission", r.ID),
				zap.String("kind", r.Kind().String()),
				zap.Duration("elapsed", r.Elapsed))
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if bar != nil {
		_ = bar.Finish()
	}
	return replies, nil
}
