package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// pane is one bordered column of a split modal
type pane struct {
	title   string
	content string
	border  lipgloss.AdaptiveColor
	focused bool
}

// render draws the pane at the given inner size
func (p pane) render(width, height int) string {
	title := styleTitleUnfocused
	if p.focused {
		title = styleTitleFocused
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(title.Render(p.title) + "\n" + p.content)
}

// splitWidths divides a modal between two panes. ratio is the share of the
// left pane and falls back to an even split outside (0, 1).
func splitWidths(modalWidth int, ratio float64) (left, right int) {
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}
	left = int(float64(modalWidth-3) * ratio)
	return left, modalWidth - left - 3
}

// splitModal is a centred modal with a list pane, an optional detail pane
// and a footer line
type splitModal struct {
	width, height int
	ratio         float64
	list          pane
	detail        *pane // nil renders the list at full width
	footer        string
}

func (s splitModal) render(totalWidth, totalHeight int) string {
	paneHeight := s.height - 4

	var body string
	if s.detail == nil {
		body = s.list.render(s.width, paneHeight)
	} else {
		left, right := splitWidths(s.width, s.ratio)
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.list.render(left, paneHeight),
			s.detail.render(right, paneHeight),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, body, "\n"+styleSubtle.Render(s.footer))
	return lipgloss.Place(totalWidth, totalHeight, lipgloss.Center, lipgloss.Center, content)
}
