package workbench

import (
	"context"

	"simplex/cmd/simplex/ui"
	"simplex/internal/logging"
	"simplex/internal/lp"
	"simplex/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		edCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			logging.UI("Workbench quit with %d submission(s) in flight", m.inFlight)
			return m, tea.Quit

		case "ctrl+s":
			return m.submit()

		case "ctrl+e":
			m.showExample = !m.showExample
			return m, nil

		case "esc":
			if m.showExample {
				m.showExample = false
				return m, nil
			}

		case "ctrl+l":
			m.editor.SetValue(lp.Example)
			m.showExample = false
			logging.UIDebug("Example loaded into editor")
			return m, nil

		case "tab":
			if m.focus == focusEditor {
				m.focus = focusResult
				m.editor.Blur()
			} else {
				m.focus = focusEditor
				edCmd = m.editor.Focus()
			}
			return m, edCmd
		}

		if m.focus == focusResult {
			m.result, vpCmd = m.result.Update(msg)
			return m, vpCmd
		}
		m.editor, edCmd = m.editor.Update(msg)
		return m, edCmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.inFlight > 0 {
			var spCmd tea.Cmd
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil

	case solvedMsg:
		m.inFlight--
		if m.inFlight < 0 {
			m.inFlight = 0
		}
		m.session.Accept(msg.reply)
		m.refreshResult()
		if msg.reply.OK() {
			m.result.GotoTop()
		}
		return m, nil
	}

	m.editor, edCmd = m.editor.Update(msg)
	m.result, vpCmd = m.result.Update(msg)
	return m, tea.Batch(edCmd, vpCmd)
}

// submit issues exactly one request for the current editor content. Earlier
// submissions keep running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	program := m.Program()
	m.submitted++
	m.inFlight++
	logging.UIDebug("Submit #%d (%d bytes, %d in flight)", m.submitted, len(program.Text), m.inFlight)

	cmds := []tea.Cmd{solveCmd(m.session, program)}
	if m.inFlight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func solveCmd(s *session.Session, p lp.Program) tea.Cmd {
	return func() tea.Msg {
		return solvedMsg{reply: s.Submit(context.Background(), p)}
	}
}

func (m *Model) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height

	layout := ui.NewLayoutConfig(width, height, m.ratio)
	left, right := layout.PaneWidths()
	editorHeight, resultHeight := layout.PaneHeights()

	m.editor.SetWidth(ui.PanelContentWidth(left))
	m.editor.SetHeight(ui.PanelContentHeight(editorHeight))
	m.result.Width = ui.PanelContentWidth(right)
	m.result.Height = ui.PanelContentHeight(resultHeight)
	m.ready = true

	m.refreshResult()
}
