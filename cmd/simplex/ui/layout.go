// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for pane sizing
const (
	// Split pane dimensions
	DefaultSplitRatio = 0.5
	SplitPaneDivider  = 1

	// Panel borders and spacing
	PanelBorderWidth = 1
	PanelPaddingH    = 1
	PanelPaddingV    = 0
	PaneTitleHeight  = 1

	// Control areas
	HeaderHeight = 3
	FooterHeight = 2 // key help + status

	// Below this width the panes stack vertically
	CompactModeWidth = 90

	// Smallest usable pane content
	MinPaneWidth  = 20
	MinPaneHeight = 3
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	SplitRatio     float64
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size.
// A ratio outside (0,1) falls back to DefaultSplitRatio.
func NewLayoutConfig(width, height int, ratio float64) LayoutConfig {
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultSplitRatio
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		SplitRatio:     ratio,
		IsCompact:      width < CompactModeWidth,
	}
}

// PaneWidths returns the outer widths of the editor and result panes.
// Stacked panes both take the full width.
func (l LayoutConfig) PaneWidths() (left, right int) {
	if l.IsCompact {
		return l.TerminalWidth, l.TerminalWidth
	}
	return SplitPaneWidths(l.TerminalWidth, l.SplitRatio)
}

// PaneHeight returns the outer height of the pane area.
func (l LayoutConfig) PaneHeight() int {
	h := l.TerminalHeight - HeaderHeight - FooterHeight
	if h < minPaneOuterHeight {
		h = minPaneOuterHeight
	}
	return h
}

// PaneHeights returns the outer heights of the editor and result panes.
// Side by side they share PaneHeight; stacked they split it by SplitRatio.
func (l LayoutConfig) PaneHeights() (editor, result int) {
	total := l.PaneHeight()
	if !l.IsCompact {
		return total, total
	}
	editor = int(float64(total) * l.SplitRatio)
	if editor < minPaneOuterHeight {
		editor = minPaneOuterHeight
	}
	result = total - editor
	if result < minPaneOuterHeight {
		result = minPaneOuterHeight
	}
	return editor, result
}

const minPaneOuterHeight = MinPaneHeight + PanelBorderWidth*2 + PaneTitleHeight

// SplitPaneWidths calculates left and right pane widths for a split view
func SplitPaneWidths(totalWidth int, ratio float64) (leftWidth, rightWidth int) {
	leftWidth = int(float64(totalWidth) * ratio)
	rightWidth = totalWidth - leftWidth - SplitPaneDivider
	if rightWidth < 0 {
		rightWidth = 0
	}
	return
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	w := panelWidth - (PanelBorderWidth * 2) - (PanelPaddingH * 2)
	if w < MinPaneWidth {
		return MinPaneWidth
	}
	return w
}

// PanelContentHeight returns the content height inside a bordered panel,
// below its title line
func PanelContentHeight(panelHeight int) int {
	h := panelHeight - (PanelBorderWidth * 2) - (PanelPaddingV * 2) - PaneTitleHeight
	if h < MinPaneHeight {
		return MinPaneHeight
	}
	return h
}
