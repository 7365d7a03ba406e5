// Package workbench is the interactive LP editor: a program editor on the
// left, the current result on the right.
//
// Every ctrl+s becomes one tea.Cmd that calls session.Submit off the event
// loop. Its reply comes back as a solvedMsg and is applied with
// session.Accept inside Update, so replies land in arrival order and the
// last one to arrive is displayed.
package workbench

import (
	"simplex/cmd/simplex/ui"
	"simplex/internal/logging"
	"simplex/internal/lp"
	"simplex/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	title    = "Linear Program Solver"
	subtitle = "Enter a Linear Program below to solve"
)

// Options configures a Model.
type Options struct {
	Session *session.Session
	Styles  ui.Styles

	// GlamourStyle names the glamour style for the result pane. Defaults to
	// the theme's style.
	GlamourStyle string

	// LoadExample starts the editor with the bundled example.
	LoadExample bool

	// SplitRatio is the editor's share of the width.
	SplitRatio float64
}

type focusArea int

const (
	focusEditor focusArea = iota
	focusResult
)

// solvedMsg carries one submission's reply back to the event loop.
type solvedMsg struct {
	reply session.Reply
}

// Model is the bubbletea model of the workbench.
type Model struct {
	session  *session.Session
	styles   ui.Styles
	markdown *ui.MarkdownRenderer
	ratio    float64

	editor  textarea.Model
	result  viewport.Model
	spinner spinner.Model

	focus       focusArea
	showExample bool

	// submissions started and not yet accepted
	inFlight  int
	submitted int

	width, height int
	ready         bool
}

// New creates the workbench model.
func New(opts Options) Model {
	editor := textarea.New()
	editor.Placeholder = "let x1;\nmax x1;\ns.t. x1 <= 1;"
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	if opts.LoadExample {
		editor.SetValue(lp.Example)
	}
	editor.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	style := opts.GlamourStyle
	if style == "" {
		style = opts.Styles.Theme.GlamourStyle()
	}

	m := Model{
		session:  opts.Session,
		styles:   opts.Styles,
		markdown: ui.NewMarkdownRenderer(style, 16),
		ratio:    opts.SplitRatio,
		editor:   editor,
		result:   viewport.New(40, 10),
		spinner:  sp,
		focus:    focusEditor,
	}
	m.refreshResult()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	logging.UI("Workbench started, endpoint=%s", m.session.Endpoint())
	return textarea.Blink
}

// Run starts the workbench on the alternate screen.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// InFlight returns the number of unanswered submissions.
func (m Model) InFlight() int { return m.inFlight }

// Program returns the editor content as a program.
func (m Model) Program() lp.Program {
	return lp.New("editor", m.editor.Value())
}
