package workbench

import (
	"fmt"
	"strings"

	"simplex/cmd/simplex/ui"
	"simplex/internal/logging"
	"simplex/internal/lp"
	"simplex/internal/result"

	"github.com/charmbracelet/lipgloss"
)

const keyHelp = "ctrl+s solve • ctrl+e example • ctrl+l load example • tab switch pane • ctrl+c quit"

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render(title),
		m.styles.Subtitle.Render(subtitle),
	)

	var body string
	if m.showExample {
		body = m.exampleDialog()
	} else {
		body = m.panes()
	}

	divider := m.styles.RenderDivider(m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, divider, body, m.footer())
}

func (m Model) panes() string {
	layout := ui.NewLayoutConfig(m.width, m.height, m.ratio)
	left, right := layout.PaneWidths()

	editor := m.styles.Pane(m.focus == focusEditor).
		Width(left - ui.PanelBorderWidth*2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.PaneTitle.Render("Program"),
			m.editor.View(),
		))

	resultTitle := "Result"
	if m.inFlight > 0 {
		resultTitle = fmt.Sprintf("Result %s solving", m.spinner.View())
	}
	res := m.styles.Pane(m.focus == focusResult).
		Width(right - ui.PanelBorderWidth*2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.PaneTitle.Render(resultTitle),
			m.result.View(),
		))

	if layout.IsCompact {
		return lipgloss.JoinVertical(lipgloss.Left, editor, res)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, editor, strings.Repeat(" ", ui.SplitPaneDivider), res)
}

func (m Model) exampleDialog() string {
	code := m.styles.Body.Render(lp.Example)
	notes := m.styles.Muted.Render(lp.ExampleNotes)
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Example"),
		lipgloss.JoinHorizontal(lipgloss.Top, code, "   ", notes),
		"",
		m.styles.Muted.Render("ctrl+l load into editor • esc close"),
	)
	return m.styles.Dialog.Render(content)
}

func (m Model) footer() string {
	status := fmt.Sprintf("%s • submitted %d", m.session.Endpoint(), m.submitted)
	if m.inFlight > 0 {
		status += fmt.Sprintf(" • %d in flight", m.inFlight)
	}
	return m.styles.Footer.Render(keyHelp + "\n" + status)
}

// refreshResult redraws the result pane from the session.
func (m *Model) refreshResult() {
	m.result.SetContent(m.renderResult())
}

func (m Model) renderResult() string {
	var sb strings.Builder

	if failure, ok := m.session.LastFailure(); ok {
		sb.WriteString(m.styles.Error.Render(failure.Kind().Title()))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render(failure.Err.Error()))
		sb.WriteString("\n\n")
	}

	current, ok := m.session.Current()
	if !ok {
		if sb.Len() == 0 {
			sb.WriteString(m.styles.Muted.Render("Press ctrl+s to solve."))
		}
		return sb.String()
	}

	width := m.result.Width
	if width <= 0 {
		width = ui.MinPaneWidth
	}
	out, err := m.markdown.Render(result.Markdown(current.Certificate), width)
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("markdown render failed, using table view: %v", err)
		out = ui.CertificateView(current.Certificate, m.styles)
	}
	sb.WriteString(out)
	return sb.String()
}
