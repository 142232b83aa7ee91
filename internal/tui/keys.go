package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/keydeck/internal/filter"
	"github.com/studiowebux/keydeck/internal/keybinds"
	"github.com/studiowebux/keydeck/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.Cleanup()
		return tea.Quit
	}

	// Mode-specific handling
	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeCapture:
		return m.handleCaptureKeys(msg)
	case ModeTextInput:
		return m.handleTextInputKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeCountdown, ModeCalibration, ModeCamera:
		return m.handleCalibrationKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	}

	return nil
}

// handleNormalKeys handles keys on the deck
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionTogglePower:
		return m.togglePower()

	case keybinds.ActionNextProfile:
		return m.switchProfile(1)

	case keybinds.ActionPrevProfile:
		return m.switchProfile(-1)

	case keybinds.ActionAddProfile:
		return m.addProfile()

	case keybinds.ActionRenameProfile:
		return m.startRenameProfile()

	case keybinds.ActionCloseProfile:
		return m.startCloseProfile()

	case keybinds.ActionNavigateUp:
		if m.bindingIndex > 0 {
			m.bindingIndex--
			m.ensureCursorVisible()
		}

	case keybinds.ActionNavigateDown:
		if m.bindingIndex < len(m.activeBindings())-1 {
			m.bindingIndex++
			m.ensureCursorVisible()
		}

	case keybinds.ActionFieldLeft:
		m.field = (m.field + fieldCount - 1) % fieldCount

	case keybinds.ActionFieldRight:
		m.field = (m.field + 1) % fieldCount

	case keybinds.ActionEditField:
		return m.editField()

	case keybinds.ActionAddBinding:
		return m.addBinding()

	case keybinds.ActionRemoveBinding:
		return m.removeBinding()

	case keybinds.ActionCopyKey:
		return m.copyKey()

	case keybinds.ActionOpenFilter:
		m.textInput.Initialize(InputFilter, "", "")
		m.filterMatches = filter.Bindings("", m.activeBindings())
		m.filterIndex = 0
		m.mode = ModeFilter

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
		m.helpView.GotoTop()

	case keybinds.ActionOpenHistory:
		return m.openHistory()

	case keybinds.ActionCalibrate:
		return m.startCountdown(purposeCalibrate)

	case keybinds.ActionOpenCamera:
		return m.startCountdown(purposeCamera)

	case keybinds.ActionExport:
		return m.exportProfiles()

	case keybinds.ActionToggleTheme:
		return m.toggleTheme()
	}

	return nil
}

// handleCaptureKeys records the next key press as the key of the line
// being edited. The capture context keys stop or clear instead.
func (m *Model) handleCaptureKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextCapture, msg.String()); ok {
		switch action {
		case keybinds.ActionCaptureCancel:
			m.mode = ModeNormal
			return m.setStatusMessage("Capture cancelled")

		case keybinds.ActionCaptureClear:
			m.mode = ModeNormal
			empty := ""
			return m.updateBinding(m.captureRef, types.BindingUpdate{Key: &empty})
		}
	}

	text := keybinds.KeyText(msg)
	if text == "" {
		return nil
	}
	m.mode = ModeNormal
	return m.updateBinding(m.captureRef, types.BindingUpdate{Key: &text})
}

// handleTextInputKeys handles the rename and name edit modals
func (m *Model) handleTextInputKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			m.textInput.Reset()
			return nil

		case keybinds.ActionTextSubmit:
			return m.submitTextInput()
		}
	}

	m.textInput.HandleKey(msg)
	return nil
}

func (m *Model) submitTextInput() tea.Cmd {
	value := m.textInput.GetInput()
	purpose := m.textInput.GetPurpose()
	target := m.textInput.GetTarget()

	m.errorMsg = ""
	var cmd tea.Cmd
	switch purpose {
	case InputRenameProfile:
		cmd = m.renameProfile(target, value)
	case InputBindingName:
		cmd = m.updateBinding(m.captureRef, types.BindingUpdate{Name: &value})
	}

	// A rejected edit keeps the modal open so the text can be fixed
	if m.errorMsg != "" {
		return cmd
	}
	m.mode = ModeNormal
	m.textInput.Reset()
	return cmd
}

// handleFilterKeys narrows the binding list as the query changes
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextFilter, msg.String()); ok {
		switch action {
		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			m.textInput.Reset()
			m.filterMatches = nil
			return nil

		case keybinds.ActionTextSubmit:
			if m.filterIndex < len(m.filterMatches) {
				m.bindingIndex = m.filterMatches[m.filterIndex].Index
				m.ensureCursorVisible()
			}
			m.mode = ModeNormal
			m.textInput.Reset()
			m.filterMatches = nil
			return nil

		case keybinds.ActionNavigateUp:
			if m.filterIndex > 0 {
				m.filterIndex--
			}
			return nil

		case keybinds.ActionNavigateDown:
			if m.filterIndex < len(m.filterMatches)-1 {
				m.filterIndex++
			}
			return nil
		}
	}

	if m.textInput.HandleKey(msg) {
		m.filterMatches = filter.Bindings(m.textInput.GetInput(), m.activeBindings())
		m.filterIndex = 0
	}
	return nil
}

// handleHelpKeys scrolls the manual
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextHelp, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
		m.keybinds.ClearMultiKeyState(keybinds.ContextHelp)
	case keybinds.ActionNavigateUp:
		m.helpView.LineUp(1)
	case keybinds.ActionNavigateDown:
		m.helpView.LineDown(1)
	case keybinds.ActionPageUp:
		m.helpView.HalfViewUp()
	case keybinds.ActionPageDown:
		m.helpView.HalfViewDown()
	case keybinds.ActionGoToTop:
		m.helpView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.helpView.GotoBottom()
	}
	return nil
}

// handleHistoryKeys navigates the journal
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHistory, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		if m.historyIndex > 0 {
			m.historyIndex--
			m.updateHistoryView()
		}
	case keybinds.ActionNavigateDown:
		if m.historyIndex < len(m.historyEntries)-1 {
			m.historyIndex++
			m.updateHistoryView()
		}
	case keybinds.ActionHistoryClear:
		if len(m.historyEntries) > 0 {
			m.confirm = confirmClearHistory
			m.confirmTarget = ""
			m.mode = ModeConfirm
		}
	}
	return nil
}

// handleCalibrationKeys cancels the countdown or closes a device view
func (m *Model) handleCalibrationKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextCalibration, msg.String())
	if !ok || action != keybinds.ActionCalibrationCancel {
		return nil
	}
	if m.mode == ModeCountdown {
		return m.cancelCountdown()
	}
	return m.closeDeviceView()
}

// handleConfirmKeys answers the open confirmation dialog
func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	kind, target := m.confirm, m.confirmTarget
	m.confirm = confirmNone
	m.confirmTarget = ""

	switch kind {
	case confirmCloseProfile:
		m.mode = ModeNormal
		if action == keybinds.ActionConfirm {
			return m.closeProfile(target)
		}
	case confirmClearHistory:
		m.mode = ModeHistory
		if action == keybinds.ActionConfirm {
			return m.clearHistory()
		}
	default:
		m.mode = ModeNormal
	}
	return nil
}
