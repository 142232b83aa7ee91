package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/countdown"
	"github.com/studiowebux/keydeck/internal/filter"
	"github.com/studiowebux/keydeck/internal/history"
	"github.com/studiowebux/keydeck/internal/keybinds"
	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/session"
	"github.com/studiowebux/keydeck/internal/types"
	"github.com/studiowebux/keydeck/internal/watch"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeCapture
	ModeTextInput
	ModeFilter
	ModeHelp
	ModeHistory
	ModeCountdown
	ModeCalibration
	ModeCamera
	ModeConfirm
)

// Field is the column of a binding line the cursor is on
type Field int

const (
	FieldName Field = iota
	FieldKey
	FieldType
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldKey:
		return "Key Input"
	case FieldType:
		return "Input type"
	}
	return ""
}

// confirmKind names what a confirmation dialog is about
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmCloseProfile
	confirmClearHistory
)

// Countdown purposes
const (
	purposeCalibrate = "calibrate"
	purposeCamera    = "camera"
)

// Model represents the TUI state
type Model struct {
	// Core state
	store          *profile.Store
	editSession    *session.EditSession
	keybinds       *keybinds.Registry
	historyManager *history.Manager
	watcher        *watch.Watcher
	log            *logrus.Logger
	settings       config.Settings
	profilesPath   string
	mode           Mode
	theme          Theme

	// Deck cursor
	bindingIndex int
	field        Field
	deckOffset   int // first visible binding line

	// Text input (rename, name edit) and filter
	textInput     *TextInputState
	filterMatches []filter.Match
	filterIndex   int

	// Capture
	captureRef types.BindingRef

	// Confirmation
	confirm       confirmKind
	confirmTarget string

	// Countdown and device views
	countdown        *countdown.Countdown
	calibrateBinding string
	frameID          int
	frameOn          bool
	recording        bool

	// Help and journal
	helpView       viewport.Model
	modalView      viewport.Model
	historyEntries []types.JournalEntry
	historyIndex   int

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	statusID  int
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.WaitCmd()
	}
	return nil
}

// Cleanup closes the journal database and the file watcher
func (m *Model) Cleanup() {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.WithError(err).Warn("error closing profiles watcher")
		}
		m.watcher = nil
	}
	if m.historyManager != nil {
		if err := m.historyManager.Close(); err != nil {
			m.log.WithError(err).Warn("error closing journal database")
		}
		m.historyManager = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	// Mouse events are captured to prevent terminal scrolling
	case tea.MouseMsg:

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case countdown.TickMsg:
		cmd = m.countdown.Update(msg)

	case countdown.DoneMsg:
		cmd = m.handleCountdownDone(msg)

	case frameMsg:
		if msg.id == m.frameID && (m.mode == ModeCalibration || m.mode == ModeCamera) {
			m.frameOn = !m.frameOn
			cmd = m.nextFrame()
		}

	case watch.ChangedMsg:
		cmd = tea.Batch(m.reloadProfiles(), m.waitForChange())

	case historyLoadedMsg:
		m.historyEntries = msg.entries
		m.historyIndex = 0
		m.updateHistoryView()

	case historyClearedMsg:
		m.historyEntries = nil
		m.historyIndex = 0
		m.updateHistoryView()
		cmd = m.setStatusMessage(fmt.Sprintf("Journal cleared (%d entries)", msg.count))

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
			m.errorMsg = ""
		}

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))
	}

	// The help viewport has no manual handling for non-key messages
	if cmd == nil && m.mode == ModeHelp {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			if _, isMouseMsg := msg.(tea.MouseMsg); !isMouseMsg {
				m.helpView, cmd = m.helpView.Update(msg)
			}
		}
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeHistory:
		return m.renderHistory()
	case ModeTextInput:
		return m.renderTextInputModal()
	case ModeConfirm:
		return m.renderConfirmModal()
	case ModeCountdown:
		return m.renderCountdown()
	case ModeCalibration, ModeCamera:
		return m.renderDeviceView()
	default:
		return m.renderMain()
	}
}

// Custom message types
type historyLoadedMsg struct {
	entries []types.JournalEntry
}

type historyClearedMsg struct {
	count int64
}

type frameMsg struct {
	id int
}

type clearStatusMsg struct {
	id int
}

type errorMsg string

// Helper methods for setting messages. Both clear after StatusTimeout
// unless a newer message replaced them.
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = msg
	m.errorMsg = ""
	return m.scheduleClear()
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = msg
	m.statusMsg = ""
	return m.scheduleClear()
}

func (m *Model) scheduleClear() tea.Cmd {
	m.statusID++
	id := m.statusID
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) nextFrame() tea.Cmd {
	id := m.frameID
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.WaitCmd()
}
