// Package config loads the simplex configuration from .simplex/config.yaml.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace directory holding config and logs.
const DirName = ".simplex"

const defaultTimeout = 30 * time.Second

// Config holds all simplex configuration.
type Config struct {
	// Solving service
	Solver SolverConfig `yaml:"solver"`

	// How certificates are produced and printed
	Render RenderConfig `yaml:"render"`

	// Interactive workbench
	UI UIConfig `yaml:"ui"`

	// Multi-file solve
	Batch BatchConfig `yaml:"batch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SolverConfig locates the solving service.
type SolverConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
}

// RenderConfig configures result interpretation.
type RenderConfig struct {
	Format string `yaml:"format"` // text, latex, markdown, pretty, json

	// StrictResultType treats an unrecognized resultType as a malformed
	// response instead of rendering it like a solution.
	StrictResultType bool `yaml:"strict_result_type"`

	// UnknownName labels a solution index with no mapping entry.
	UnknownName string `yaml:"unknown_name"`
}

// BatchConfig bounds concurrent submissions from `simplex solve`.
type BatchConfig struct {
	MaxParallel int `yaml:"max_parallel"`
}

// ValidFormats lists the accepted render.format values.
var ValidFormats = []string{"text", "latex", "markdown", "pretty", "json"}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "dark", "light"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Endpoint: "http://localhost:8080/solve",
			Timeout:  "30s",
		},
		Render: RenderConfig{
			Format:      "text",
			UnknownName: "?",
		},
		UI:    *DefaultUIConfig(),
		Batch: BatchConfig{MaxParallel: 4},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DirName, "config.yaml")
}

// FindWorkspaceRoot walks up from the working directory looking for a
// .simplex directory. Falls back to the working directory.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if info, err := os.Stat(filepath.Join(dir, DirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return originalDir, nil
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv("SIMPLEX_SOLVER_URL"); u != "" {
		c.Solver.Endpoint = u
	}
	if t := os.Getenv("SIMPLEX_TIMEOUT"); t != "" {
		c.Solver.Timeout = t
	}
	if d := os.Getenv("SIMPLEX_DEBUG"); d != "" {
		if on, err := strconv.ParseBool(d); err == nil {
			c.Logging.DebugMode = on
		}
	}
	if theme := os.Getenv("SIMPLEX_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// GetTimeout returns the solver timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Solver.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Solver.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid solver endpoint %q: %w", c.Solver.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid solver endpoint %q: must be an absolute http(s) URL", c.Solver.Endpoint)
	}

	d, err := time.ParseDuration(c.Solver.Timeout)
	if err != nil {
		return fmt.Errorf("invalid solver timeout %q: %w", c.Solver.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid solver timeout %q: must be positive", c.Solver.Timeout)
	}

	if !contains(ValidFormats, c.Render.Format) {
		return fmt.Errorf("invalid render format: %s (valid: %v)", c.Render.Format, ValidFormats)
	}
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.UI.SplitPaneRatio <= 0 || c.UI.SplitPaneRatio >= 1 {
		return fmt.Errorf("invalid ui split_pane_ratio %.2f: must be between 0 and 1", c.UI.SplitPaneRatio)
	}
	if c.Batch.MaxParallel < 1 {
		return fmt.Errorf("invalid batch max_parallel %d: must be at least 1", c.Batch.MaxParallel)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
