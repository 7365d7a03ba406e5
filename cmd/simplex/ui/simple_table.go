package ui

import (
	"strings"

	"simplex/internal/result"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable is a simple table component for rendering static data.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles. An empty table renders
// its title and a muted placeholder.
func (t *SimpleTable) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.PaneTitle.Render(t.Title))
		sb.WriteString("\n")
	}

	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("  (no variables)"))
		sb.WriteString("\n")
		return sb.String()
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Copy().Padding(0, 1)
	rowStyle := styles.Body.Copy().Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1 // separators
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				sb.WriteString(rowStyle.Width(colWidths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(sepStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// CertificateView renders a certificate as a headline followed by one
// Variable/Value table per equation.
func CertificateView(c result.Certificate, styles Styles) string {
	var sb strings.Builder

	headline := styles.Success
	if c.ResultType == result.TypeInfeasible {
		headline = styles.Warning
	}
	sb.WriteString(headline.Render(c.Headline))
	sb.WriteString("\n")

	for _, eq := range c.Equations {
		sb.WriteString("\n")
		table := NewSimpleTable(eq.Label, []string{"Variable", "Value"})
		lhs, rhs := eq.LHS(), eq.RHS()
		for i := range lhs {
			table.AddRow(lhs[i], rhs[i])
		}
		sb.WriteString(table.View(styles))
	}

	return sb.String()
}
