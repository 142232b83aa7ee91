package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/keydeck/internal/profile"
)

var (
	selectorTitle  = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	profileRow     = lipgloss.NewStyle().PaddingLeft(4)
	profileCursor  = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	profileTag     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectorFooter = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

// errSelectionCancelled is returned when the prompt is left without a choice
var errSelectionCancelled = errors.New("selection cancelled")

// profileItem is one row of the selector
type profileItem struct {
	name   string
	active bool
}

func (i profileItem) FilterValue() string { return i.name }

// Title is the name followed by its tags
func (i profileItem) Title() string {
	return i.name + i.tags()
}

func (i profileItem) tags() string {
	var tags string
	if i.name == profile.DefaultProfileName {
		tags += " (read-only)"
	}
	if i.active {
		tags += " [active]"
	}
	return tags
}

func (i profileItem) Description() string { return "" }

type selectorModel struct {
	list   list.Model
	choice string
	done   bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// The list owns every key while its filter is being typed
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.choice, m.done = "", true
			return m, tea.Quit

		case "enter":
			if it, ok := m.list.SelectedItem().(profileItem); ok {
				m.choice = it.name
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.done {
		return ""
	}
	return m.list.View() + "\n\n" + selectorFooter.Render("↑/↓: navigate • /: filter • enter: switch • q/esc: cancel")
}

// newSelector lists the profiles in store order with the cursor on the
// active one
func newSelector(names []string, active string) selectorModel {
	items := make([]list.Item, len(names))
	cursor := 0
	for i, name := range names {
		items[i] = profileItem{name: name, active: name == active}
		if name == active {
			cursor = i
		}
	}

	// Tabs never exceed Default plus the extra slots
	height := profile.MaxExtraProfiles + 8

	l := list.New(items, profileDelegate{}, 60, height)
	l.Title = "Switch profile"
	l.Styles.Title = selectorTitle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Select(cursor)

	return selectorModel{list: l}
}

// promptForProfile runs the selector and returns the chosen profile
func promptForProfile(names []string, active string) (string, error) {
	final, err := tea.NewProgram(newSelector(names, active)).Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	if choice := final.(selectorModel).choice; choice != "" {
		return choice, nil
	}
	return "", errSelectionCancelled
}

// profileDelegate renders one profile per line with dimmed tags
type profileDelegate struct{}

func (profileDelegate) Height() int                             { return 1 }
func (profileDelegate) Spacing() int                            { return 0 }
func (profileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (profileDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(profileItem)
	if !ok {
		return
	}

	if index == m.Index() {
		fmt.Fprint(w, profileCursor.Render("> "+it.name+it.tags()))
		return
	}
	fmt.Fprint(w, profileRow.Render(it.name+profileTag.Render(it.tags())))
}
