package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help manual modal
func (m Model) renderHelp() string {
	title := styleTitle.Render("Keydeck Help")
	footer := "↑/↓ j/k: scroll | gg/G: top/bottom | ESC/?: close"

	// Footer is outside the viewport so it stays visible
	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render(footer)

	helpView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - ModalWidthMarginNarrow).
		Height(m.height - ModalHeightMarginMed).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpView,
	)
}

// renderHistory renders the journal with the selected entry on the right
func (m Model) renderHistory() string {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMargin

	footerText := "↑/↓ j/k: Navigate | C: Clear All | ESC/H/q: Close"
	if total := len(m.historyEntries); total > 0 {
		footerText += fmt.Sprintf(" [%d/%d]", m.historyIndex+1, total)
	}

	modal := splitModal{
		width:  modalWidth,
		height: modalHeight,
		ratio:  HistoryListWidthRatio,
		list:   pane{title: "Journal", content: m.modalView.View(), border: colorBlue, focused: true},
		footer: footerText,
	}
	if len(m.historyEntries) > 0 {
		_, detailWidth := splitWidths(modalWidth, HistoryListWidthRatio)
		modal.detail = &pane{title: "Entry", content: m.renderHistoryDetail(detailWidth - 4), border: colorGreen}
	}

	return modal.render(m.width, m.height)
}

// renderTextInputModal renders the rename and name edit dialogs
func (m Model) renderTextInputModal() string {
	var title, label string
	switch m.textInput.GetPurpose() {
	case InputRenameProfile:
		title = "Rename Profile"
		label = fmt.Sprintf("New name for '%s':", m.textInput.GetTarget())
	case InputBindingName:
		title = "Edit Name"
		label = fmt.Sprintf("New name for '%s':", m.textInput.GetTarget())
	default:
		title = "Input"
	}

	var content strings.Builder
	content.WriteString(label + "\n\n")
	content.WriteString(m.textInput.View() + "\n")
	if m.errorMsg != "" {
		content.WriteString("\n" + styleError.Render(m.errorMsg) + "\n")
	}

	return m.renderModal(title, content.String(), "Enter: save | ESC: cancel | Ctrl+K: clear", TextInputModalWidth, colorBlue)
}

// renderConfirmModal asks before closing a profile or clearing the journal
func (m Model) renderConfirmModal() string {
	var title, question string
	switch m.confirm {
	case confirmCloseProfile:
		title = "Close Profile"
		question = fmt.Sprintf("Close '%s'? Its bindings are discarded.", m.confirmTarget)
	case confirmClearHistory:
		title = "Clear Journal"
		question = fmt.Sprintf("Delete all %d journal entries?", len(m.historyEntries))
	}

	return m.renderModal(title, styleWarning.Render(question)+"\n", "y: yes | n/ESC: no", TextInputModalWidth, colorYellow)
}

// renderCountdown renders the "Starts in N" dialog
func (m Model) renderCountdown() string {
	title := "Calibration"
	if m.countdown.Purpose() == purposeCamera {
		title = "Camera"
	}

	content := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorYellow).
		Render(m.countdown.Label())

	return m.renderModal(title, content+"\n", "ESC: cancel", 30, colorYellow)
}

// renderDeviceView renders the camera feed or the calibration window
func (m Model) renderDeviceView() string {
	width := m.width - ModalWidthMarginNarrow
	height := m.height - ModalHeightMarginMed

	var title, body, footer string
	if m.mode == ModeCamera {
		title = "Camera Feed"
		body = styleSubtle.Render("No signal")
		footer = "ESC/q: close camera"
	} else {
		title = "Calibration Window: " + m.calibrateBinding
		body = fmt.Sprintf("Press and release the key bound to '%s'.", m.calibrateBinding)
		footer = "ESC/q/c: finish calibration"
	}

	indicator := ""
	if m.recording {
		if m.frameOn {
			indicator = styleError.Render("● REC")
		} else {
			indicator = styleSubtle.Render("○ REC")
		}
	}

	header := styleTitle.Render(title)
	if indicator != "" {
		spacing := width - 4 - lipgloss.Width(header) - lipgloss.Width(indicator)
		if spacing < 1 {
			spacing = 1
		}
		header += strings.Repeat(" ", spacing) + indicator
	}

	feed := lipgloss.Place(width-4, height-8, lipgloss.Center, lipgloss.Center, body)
	content := header + "\n\n" + feed + "\n\n" + styleSubtle.Render(footer)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(width).
		Height(height).
		Padding(1, 1).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderModal renders a small centred dialog
func (m Model) renderModal(title, content, footer string, width int, border lipgloss.AdaptiveColor) string {
	if limit := m.width - 2; width > limit {
		width = limit
	}

	fullContent := styleTitle.Render(title) + "\n\n" + content
	if footer != "" {
		fullContent += "\n" + styleSubtle.Render(footer)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
