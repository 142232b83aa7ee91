package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/filter"
	"github.com/studiowebux/keydeck/internal/keybinds"
	"github.com/studiowebux/keydeck/internal/types"
)

// renderMain renders the tab bar, the deck of the active profile and the
// status bar
func (m Model) renderMain() string {
	tabs := m.renderTabBar()
	status := m.renderStatusBar()

	deckHeight := m.height - lipgloss.Height(tabs) - lipgloss.Height(status) - 2
	if deckHeight < 1 {
		deckHeight = 1
	}

	var body string
	if m.mode == ModeFilter {
		body = m.renderFilterResults()
	} else {
		body = m.renderDeck()
	}

	deck := m.theme.Deck.
		Width(m.width - 2).
		Height(deckHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, tabs, deck, status)
}

// renderTabBar shows one tab per profile, the power switch and a "+" tab
// while another profile may be added
func (m Model) renderTabBar() string {
	active := m.store.ActiveProfile()

	var tabs []string
	for _, name := range m.store.ListProfiles() {
		label := name
		if m.store.IsProtected(name) {
			label = "🔒 " + name
		}
		if name == active {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}
	if m.editSession.Permissions(m.store).AddProfile {
		tabs = append(tabs, m.theme.TabInactive.Render("+"))
	}

	power := styleError.Render("○ OFF")
	if m.editSession.Enabled() {
		power = styleSuccess.Render("● ON")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	spacing := m.width - lipgloss.Width(row) - lipgloss.Width(power) - 1
	if spacing < 1 {
		spacing = 1
	}
	return m.theme.TabBar.Render(row + strings.Repeat(" ", spacing) + power)
}

// linesPerBinding is how many terminal rows one binding takes in the
// current theme
func (m Model) linesPerBinding() int {
	if m.theme.Name == config.ThemeCompact {
		return 1
	}
	return 4 // border (2) + labels + values
}

// visibleBindings is how many bindings fit in the deck
func (m Model) visibleBindings() int {
	// One row is kept for the lock hint
	rows := m.height - ContentOffsetDeck - 3
	n := rows / m.linesPerBinding()
	if n < 1 {
		n = 1
	}
	return n
}

// renderDeck renders the visible window of binding lines
func (m Model) renderDeck() string {
	bindings := m.activeBindings()

	var b strings.Builder
	b.WriteString(m.renderLockHint())
	b.WriteString("\n")

	if len(bindings) == 0 {
		b.WriteString(styleSubtle.Render("No bindings. Press 'a' to add a line."))
		return b.String()
	}

	end := m.deckOffset + m.visibleBindings()
	if end > len(bindings) {
		end = len(bindings)
	}

	var rows []string
	for i := m.deckOffset; i < end; i++ {
		rows = append(rows, m.renderBinding(bindings[i], i == m.bindingIndex))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if len(bindings) > end-m.deckOffset {
		b.WriteString("\n" + styleSubtle.Render(fmt.Sprintf("[%d/%d]", m.bindingIndex+1, len(bindings))))
	}
	return b.String()
}

// renderLockHint explains why the active profile cannot be edited
func (m Model) renderLockHint() string {
	active := m.store.ActiveProfile()
	switch {
	case m.store.IsProtected(active):
		return m.theme.Locked.Render("Default profile is read-only. Add or switch to another profile to edit.")
	case !m.editSession.Enabled():
		return m.theme.Locked.Render("Power is OFF. Press 'p' to edit.")
	case m.mode == ModeCapture:
		return styleWarning.Render("Press the key to bind (esc: cancel, backspace: clear)")
	}
	return styleSubtle.Render(fmt.Sprintf("%s | editing %s", active, m.field))
}

// renderBinding renders one line of the deck
func (m Model) renderBinding(b types.Binding, selected bool) string {
	key := b.Key
	if key == "" {
		key = "-"
	}
	if selected && m.mode == ModeCapture {
		key = "…"
	}

	values := []string{b.Name, key, b.Type.String()}
	cells := make([]string, len(values))
	for i, v := range values {
		style := m.theme.Field
		if selected && Field(i) == m.field {
			style = m.theme.FieldFocused
		}
		cells[i] = style.Render(v)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	if m.theme.Name == config.ThemeCompact {
		marker := "  "
		if selected {
			marker = "> "
		}
		return m.theme.Card.Render(marker + row)
	}

	labels := make([]string, fieldCount)
	for i := range labels {
		labels[i] = m.theme.FieldLabel.Width(lipgloss.Width(cells[i])).Render(Field(i).String())
	}
	card := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, labels...),
		row,
	)
	if selected {
		return m.theme.CardSelected.Render(card)
	}
	return m.theme.Card.Render(card)
}

// renderFilterResults lists the bindings matching the filter query with
// the matched characters highlighted
func (m Model) renderFilterResults() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Filter") + "\n\n")

	if len(m.filterMatches) == 0 {
		b.WriteString(styleSubtle.Render("No matching bindings"))
		return b.String()
	}

	mark := func(s string) string { return styleMatch.Render(s) }
	for i, match := range m.filterMatches {
		name := filter.Highlight(match.Binding.Name, match.NameRange(), mark)
		key := filter.Highlight(match.Binding.Key, match.KeyRange(), mark)
		line := fmt.Sprintf("%-3d %s  %s  %s", match.Index+1, name, styleSubtle.Render("["+key+"]"), match.Binding.Type)
		if i == m.filterIndex {
			line = styleSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	perms := m.editSession.Permissions(m.store)

	// Left side - active profile and counters
	left := fmt.Sprintf("Profile: %s | Extra: %d/%d", m.store.ActiveProfile(), m.store.ExtraCount(), m.store.ExtraLimit())
	if !perms.EditBindings {
		left += " " + m.theme.Locked.Render("[locked]")
	}

	// Right side - messages or input
	right := ""
	switch m.mode {
	case ModeFilter:
		right = fmt.Sprintf("Filter: %s", m.textInput.View())
		if q := m.textInput.GetInput(); q != "" {
			right = styleWarning.Render(fmt.Sprintf("%d matches | ", len(m.filterMatches))) + right
		}
	case ModeCapture:
		right = styleWarning.Render("Capturing key...")
	default:
		if m.errorMsg != "" {
			right = styleError.Render(m.errorMsg)
		} else if m.statusMsg != "" {
			right = styleSuccess.Render(m.statusMsg)
		} else {
			right = styleSubtle.Render("p: power | a: add line | / filter | ? help | q quit")
		}
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

func (m *Model) updateViewport() {
	// Help viewport sits inside a modal with padding and a footer
	m.helpView.Width = m.width - ModalWidthMarginNarrow - 4
	m.helpView.Height = m.height - ContentOffsetHelp
	if m.helpView.Height < 1 {
		m.helpView.Height = 1
	}

	m.ensureCursorVisible()
	m.updateHelpView()
	m.updateHistoryView()
}

// ensureCursorVisible scrolls the deck so the selected binding is shown
func (m *Model) ensureCursorVisible() {
	visible := m.visibleBindings()
	if m.bindingIndex < m.deckOffset {
		m.deckOffset = m.bindingIndex
	}
	if m.bindingIndex >= m.deckOffset+visible {
		m.deckOffset = m.bindingIndex - visible + 1
	}
	if m.deckOffset < 0 {
		m.deckOffset = 0
	}
}

const helpManual = `KEYDECK - Key Binding Profiles

PROFILES
  Default is always present and read-only. Up to four extra profiles
  ("Profile #1" to "Profile #4") can be added, renamed and closed.
  Closing a profile switches back to Default.

POWER
  Editing only works while the power is ON. With the power OFF every
  profile is view only; switching profiles still works.

BINDING LINES
  Each line has a name, a key and an input type (Click or Hold).
  A key can be used by only one line per profile. "Ctrl + A" and
  "ctrl+a" are the same key. A rejected edit leaves the line unchanged.

KEY CAPTURE
  Focus the Key Input field and press enter, then press the key to
  bind. esc cancels; backspace or delete clears the key.

CALIBRATION AND CAMERA
  Both start after a short countdown which can be cancelled.

FILES
  Profiles are read from keydeck.yaml in the current directory, or the
  profiles file in the config directory. Changes on disk are reloaded.
`

// updateHelpView fills the help viewport with the manual followed by the
// live keymap
func (m *Model) updateHelpView() {
	var b strings.Builder
	b.WriteString(helpManual)

	sections := []struct {
		title   string
		context keybinds.Context
	}{
		{"DECK", keybinds.ContextNormal},
		{"KEY CAPTURE", keybinds.ContextCapture},
		{"FILTER", keybinds.ContextFilter},
		{"JOURNAL", keybinds.ContextHistory},
		{"CALIBRATION", keybinds.ContextCalibration},
	}
	for _, s := range sections {
		b.WriteString("\n" + s.title + "\n")
		for _, kb := range m.keybinds.ListBindings(s.context) {
			if kb.Context != s.context {
				continue
			}
			info := keybinds.GetActionInfo(kb.Action)
			b.WriteString(fmt.Sprintf("  %-14s %s\n", kb.Key, info.Description))
		}
	}

	width := m.helpView.Width
	m.helpView.SetContent(wrapText(b.String(), width))
}

// updateHistoryView fills the journal viewport, keeping the selected entry
// in view
func (m *Model) updateHistoryView() {
	listWidth, _ := splitWidths(m.width-ModalWidthMargin, HistoryListWidthRatio)
	m.modalView.Width = listWidth - 2
	m.modalView.Height = m.height - ModalHeightMargin - 7
	if m.modalView.Height < 1 {
		m.modalView.Height = 1
	}

	var content strings.Builder
	if len(m.historyEntries) == 0 {
		content.WriteString("No journal entries")
	}
	for i, entry := range m.historyEntries {
		kindStyle := styleSuccess
		if entry.Error != "" {
			kindStyle = styleError
		}
		line := fmt.Sprintf("%s %s %s",
			entry.Timestamp.Format("01-02 15:04:05"),
			kindStyle.Render(entry.Kind),
			entry.Profile)
		if i == m.historyIndex {
			line = styleSelected.Render(line)
		}
		content.WriteString(line + "\n")
	}

	yOffset := m.modalView.YOffset
	m.modalView.SetContent(content.String())

	if len(m.historyEntries) == 0 {
		m.modalView.GotoTop()
		return
	}
	switch {
	case m.historyIndex < yOffset:
		m.modalView.SetYOffset(m.historyIndex)
	case m.historyIndex >= yOffset+m.modalView.Height:
		m.modalView.SetYOffset(m.historyIndex - m.modalView.Height + 1)
	default:
		m.modalView.SetYOffset(yOffset)
	}
}

// renderHistoryDetail describes the selected journal entry
func (m Model) renderHistoryDetail(width int) string {
	if m.historyIndex < 0 || m.historyIndex >= len(m.historyEntries) {
		return styleSubtle.Render("Nothing selected")
	}
	e := m.historyEntries[m.historyIndex]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Time:    %s\n", e.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Kind:    %s\n", e.Kind))
	if e.Profile != "" {
		b.WriteString(fmt.Sprintf("Profile: %s\n", e.Profile))
	}
	if e.Detail != "" {
		b.WriteString("\n" + e.Detail + "\n")
	}
	if e.Error != "" {
		b.WriteString("\n" + styleError.Render("Error: "+e.Error) + "\n")
	}
	return wrapText(b.String(), width)
}

// wrapText wraps long lines to fit within the specified width, breaking at
// spaces and keeping the indentation of the wrapped line
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if lipgloss.Width(line) <= width {
			out = append(out, line)
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		words := strings.Fields(line)
		current := indent
		for _, w := range words {
			if strings.TrimSpace(current) != "" && lipgloss.Width(current)+1+lipgloss.Width(w) > width {
				out = append(out, current)
				current = indent
			}
			if strings.TrimSpace(current) == "" {
				current += w
			} else {
				current += " " + w
			}
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}
