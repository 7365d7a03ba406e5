package main

import (
	"fmt"
	"io"

	"simplex/cmd/simplex/ui"
	"simplex/internal/result"
	"simplex/internal/session"
	"simplex/internal/solver"
)

const (
	formatPretty = "pretty"
	prettyWidth  = 80
)

// prettyStyle picks the glamour style. Tests set it to "notty".
var prettyStyle = ""

// formatCertificate renders c in cfg.Render.Format.
func formatCertificate(c result.Certificate) (string, error) {
	if cfg.Render.Format == formatPretty {
		style := prettyStyle
		if style == "" {
			style = ui.ThemeFor(cfg.UI.DarkMode(ui.DetectDark())).GlamourStyle()
		}
		return ui.NewMarkdownRenderer(style, 1).Render(result.Markdown(c), prettyWidth)
	}

	f, err := result.ParseFormat(cfg.Render.Format)
	if err != nil {
		return "", err
	}
	return result.Write(c, f)
}

// writeReply prints a successful reply to out, or its failure to errOut.
func writeReply(out, errOut io.Writer, r session.Reply) error {
	if !r.OK() {
		writeFailure(errOut, r.Err)
		return r.Err
	}
	text, err := formatCertificate(r.Certificate)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// writeFailure prints the error kind label and detail.
func writeFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", solver.KindOf(err).Title(), err)
}
