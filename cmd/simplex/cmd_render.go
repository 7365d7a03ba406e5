package main

import (
	"fmt"
	"io"
	"os"

	"simplex/internal/logging"
	"simplex/internal/result"

	"github.com/spf13/cobra"
)

// renderCmd interprets a saved solver response offline
var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a saved solver response without contacting the solver",
	Long: `Reads a JSON response body as returned by POST /solve and prints its
certificate. Useful for replaying captured responses.

Example:
  curl -s -H 'Content-Type: text/plain' --data-binary @prog.lp localhost:8080/solve | simplex render`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("format", "f", "text", "Output format: text, latex, markdown, pretty, json")
}

func runRender(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	source := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open response: %w", err)
		}
		defer f.Close()
		in, source = f, args[0]
	}

	c, err := renderResponse(in)
	if err != nil {
		logging.RenderWarn("render %s failed: %v", source, err)
		writeFailure(cmd.ErrOrStderr(), err)
		return err
	}

	text, err := formatCertificate(c)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

// renderResponse decodes and renders one response body.
func renderResponse(r io.Reader) (result.Certificate, error) {
	resp, err := result.ParseResponse(r)
	if err != nil {
		return result.Certificate{}, err
	}
	o, err := result.Decode(resp, decodeOptions())
	if err != nil {
		return result.Certificate{}, err
	}
	logging.RenderDebug("rendered offline response: %s", o.ResultType())
	return result.Render(o), nil
}
