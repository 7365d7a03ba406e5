package main

import (
	"fmt"
	"os"
	"time"

	"simplex/internal/config"
	"simplex/internal/logging"
	"simplex/internal/result"
	"simplex/internal/session"
	"simplex/internal/solver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	endpoint   string
	timeout    time.Duration
	strict     bool

	// Effective configuration after file, env and flags
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "simplex",
	Short: "simplex - terminal client for an LP solving service",
	Long: `simplex sends linear programs to a solving service and shows what comes
back: an optimal point, an unbounded ray, or an infeasibility notice.

Programs are sent exactly as written; the service owns the grammar:

  let x1;
  let x2;
  max 3 * x1 + 4 * x2;
  s.t. x1 + x2 <= 5;

Run without arguments to start the interactive workbench.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		if err := logging.Initialize(workspace, logging.Options{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			JSONFormat: cfg.Logging.JSONFormat(),
			Categories: cfg.Logging.Categories,
		}); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		if err := logging.InitAudit(workspace); err != nil {
			return fmt.Errorf("failed to initialize audit trail: %w", err)
		}
		logging.Boot("simplex starting: command=%s endpoint=%s timeout=%v", cmd.Name(), cfg.Solver.Endpoint, cfg.GetTimeout())

		var err error
		logger, err = newCLILogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("configuration resolved",
			zap.String("workspace", workspace),
			zap.String("endpoint", cfg.Solver.Endpoint),
			zap.Duration("timeout", cfg.GetTimeout()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkbench()
	},
}

// newCLILogger builds the stderr logger for subcommands. The root command
// runs the workbench, which owns the terminal, so it gets a no-op logger.
func newCLILogger(cmd *cobra.Command) (*zap.Logger, error) {
	if !cmd.HasParent() {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return zc.Build()
}

// loadConfig resolves the workspace and layers file, env and flags.
func loadConfig(cmd *cobra.Command) error {
	if workspace == "" {
		ws, err := config.FindWorkspaceRoot()
		if err != nil {
			return fmt.Errorf("failed to resolve workspace: %w", err)
		}
		workspace = ws
	}
	if configPath == "" {
		configPath = config.DefaultPath(workspace)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		loaded.Solver.Endpoint = endpoint
	}
	if flags.Changed("timeout") {
		loaded.Solver.Timeout = timeout.String()
	}
	if flags.Changed("strict") {
		loaded.Render.StrictResultType = strict
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		loaded.Render.Format = f.Value.String()
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	return nil
}

// newSession wires a solver client to a session using cfg.
func newSession() *session.Session {
	client := solver.NewClientWithConfig(solver.Config{
		Endpoint: cfg.Solver.Endpoint,
		Timeout:  cfg.GetTimeout(),
	})
	return session.New(client, session.Options{Decode: decodeOptions()})
}

func decodeOptions() result.DecodeOptions {
	return result.DecodeOptions{
		Strict:      cfg.Render.StrictResultType,
		UnknownName: cfg.Render.UnknownName,
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output on stderr")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: nearest directory with .simplex)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.simplex/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Solver endpoint URL (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Solver request timeout (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Treat unrecognized result types as malformed responses")

	rootCmd.AddCommand(
		solveCmd,
		renderCmd,
		watchCmd,
		exampleCmd,
		configCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
