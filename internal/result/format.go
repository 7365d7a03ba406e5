package result

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects a textual representation of a Certificate.
type Format string

const (
	FormatText     Format = "text"
	FormatLaTeX    Format = "latex"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists the formats Write understands.
var Formats = []Format{FormatText, FormatLaTeX, FormatMarkdown, FormatJSON}

// ParseFormat maps a name to a Format.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: %v)", name, Formats)
}

// Write renders c in the given format.
func Write(c Certificate, f Format) (string, error) {
	switch f {
	case FormatText:
		return Text(c), nil
	case FormatLaTeX:
		return LaTeX(c), nil
	case FormatMarkdown:
		return Markdown(c), nil
	case FormatJSON:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal certificate: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q", f)
	}
}

// Text renders one "name = value" line per row, names padded to align.
func Text(c Certificate) string {
	var sb strings.Builder
	sb.WriteString(c.Headline)
	sb.WriteString("\n")
	for _, eq := range c.Equations {
		sb.WriteString(eq.Label)
		sb.WriteString(":\n")
		width := 0
		for _, r := range eq.Rows {
			if len(r.Name) > width {
				width = len(r.Name)
			}
		}
		for _, r := range eq.Rows {
			fmt.Fprintf(&sb, "  %-*s = %s\n", width, r.Name, FormatNumber(r.Value))
		}
	}
	return sb.String()
}

// LaTeX renders each equation as a pair of column vectors:
//
//	\[ \begin{pmatrix} \text{x1} \\ \text{x2} \end{pmatrix} = \begin{pmatrix} 5 \\ 0 \end{pmatrix} \]
func LaTeX(c Certificate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\text{%s}\n", escapeLaTeX(c.Headline))
	for _, eq := range c.Equations {
		names := eq.LHS()
		for i, n := range names {
			names[i] = `\text{` + escapeLaTeX(n) + `}`
		}
		fmt.Fprintf(&sb, "%% %s\n", eq.Label)
		sb.WriteString("\\[\n")
		fmt.Fprintf(&sb, "    \\begin{pmatrix} %s \\end{pmatrix} =\n", strings.Join(names, ` \\ `))
		fmt.Fprintf(&sb, "    \\begin{pmatrix} %s \\end{pmatrix}\n", strings.Join(eq.RHS(), ` \\ `))
		sb.WriteString("\\]\n")
	}
	return sb.String()
}

// Markdown renders a bold headline and one table per equation.
func Markdown(c Certificate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n", c.Headline)
	for _, eq := range c.Equations {
		fmt.Fprintf(&sb, "\n#### %s\n\n", eq.Label)
		if len(eq.Rows) == 0 {
			sb.WriteString("_no variables_\n")
			continue
		}
		sb.WriteString("| Variable | Value |\n")
		sb.WriteString("|---|---|\n")
		for _, r := range eq.Rows {
			fmt.Fprintf(&sb, "| %s | %s |\n", strings.ReplaceAll(r.Name, "|", `\|`), FormatNumber(r.Value))
		}
	}
	return sb.String()
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`_`, `\_`,
	`^`, `\^{}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`~`, `\~{}`,
)

func escapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}
