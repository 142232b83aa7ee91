package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/keydeck/internal/countdown"
	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/seed"
	"github.com/studiowebux/keydeck/internal/types"
)

// describeError turns a store rejection into the status bar text
func describeError(err error) string {
	var conflict *profile.ConflictError
	switch {
	case errors.As(err, &conflict):
		return "Duplicate Key: " + conflict.Error()
	case errors.Is(err, profile.ErrProtected):
		return "Default profile cannot be modified."
	case errors.Is(err, profile.ErrDisabled):
		return "Turn ON the power to modify profiles."
	case errors.Is(err, profile.ErrLimitReached):
		return fmt.Sprintf("Only %d extra profiles are allowed.", profile.MaxExtraProfiles)
	case errors.Is(err, profile.ErrDuplicateName):
		return "A profile with this name already exists."
	case errors.Is(err, profile.ErrEmptyName):
		return "Name cannot be empty."
	}
	return err.Error()
}

func (m *Model) fail(err error) tea.Cmd {
	return m.setErrorMessage(describeError(err))
}

// activeBindings returns the lines of the active profile
func (m *Model) activeBindings() []types.Binding {
	bindings, err := m.store.BindingsOf(m.store.ActiveProfile())
	if err != nil {
		return nil
	}
	return bindings
}

// selectedBinding returns the line under the cursor
func (m *Model) selectedBinding() (types.Binding, bool) {
	bindings := m.activeBindings()
	if m.bindingIndex < 0 || m.bindingIndex >= len(bindings) {
		return types.Binding{}, false
	}
	return bindings[m.bindingIndex], true
}

// clampCursor keeps the binding cursor inside the active profile
func (m *Model) clampCursor() {
	n := len(m.activeBindings())
	if m.bindingIndex >= n {
		m.bindingIndex = n - 1
	}
	if m.bindingIndex < 0 {
		m.bindingIndex = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) togglePower() tea.Cmd {
	on := !m.editSession.Enabled()
	m.editSession.TogglePower(on)
	return m.setStatusMessage("Application " + m.editSession.State().String())
}

func (m *Model) switchProfile(delta int) tea.Cmd {
	names := m.store.ListProfiles()
	if len(names) < 2 {
		return nil
	}
	cur := 0
	for i, name := range names {
		if name == m.store.ActiveProfile() {
			cur = i
		}
	}
	next := names[(cur+delta+len(names))%len(names)]
	return m.switchTo(next)
}

func (m *Model) switchTo(name string) tea.Cmd {
	if err := m.store.SwitchTo(name); err != nil {
		return m.fail(err)
	}
	m.bindingIndex = 0
	m.deckOffset = 0
	return m.setStatusMessage("Switched to " + name)
}

func (m *Model) addProfile() tea.Cmd {
	name, err := m.store.AddExtraProfile()
	if err != nil {
		return m.fail(err)
	}
	m.bindingIndex = 0
	m.deckOffset = 0
	return m.setStatusMessage(fmt.Sprintf("Profile '%s' created (empty)", name))
}

func (m *Model) startRenameProfile() tea.Cmd {
	active := m.store.ActiveProfile()
	if !m.editSession.PermissionsFor(m.store, active).RenameProfile {
		if m.store.IsProtected(active) {
			return m.fail(profile.ErrProtected)
		}
		return m.fail(profile.ErrDisabled)
	}
	m.textInput.Initialize(InputRenameProfile, active, active)
	m.mode = ModeTextInput
	return nil
}

func (m *Model) renameProfile(oldName, newName string) tea.Cmd {
	newName = strings.TrimSpace(newName)
	if err := m.store.RenameProfile(oldName, newName); err != nil {
		return m.fail(err)
	}
	if oldName == newName {
		return nil
	}
	return m.setStatusMessage(fmt.Sprintf("Profile '%s' renamed to '%s'", oldName, newName))
}

func (m *Model) startCloseProfile() tea.Cmd {
	active := m.store.ActiveProfile()
	if !m.editSession.PermissionsFor(m.store, active).CloseProfile {
		if m.store.IsProtected(active) {
			return m.fail(profile.ErrProtected)
		}
		return m.fail(profile.ErrDisabled)
	}
	m.confirm = confirmCloseProfile
	m.confirmTarget = active
	m.mode = ModeConfirm
	return nil
}

func (m *Model) closeProfile(name string) tea.Cmd {
	if err := m.store.CloseProfile(name); err != nil {
		return m.fail(err)
	}
	m.bindingIndex = 0
	m.deckOffset = 0
	return m.setStatusMessage(fmt.Sprintf("Profile '%s' closed, switched to %s", name, m.store.ActiveProfile()))
}

func (m *Model) addBinding() tea.Cmd {
	active := m.store.ActiveProfile()
	_, err := m.store.AddBinding(active, profile.NewBindingName, "", types.Click)
	if err != nil {
		return m.fail(err)
	}
	m.bindingIndex = len(m.activeBindings()) - 1
	m.field = FieldName
	m.ensureCursorVisible()
	return m.setStatusMessage("New line added to " + active)
}

func (m *Model) removeBinding() tea.Cmd {
	b, ok := m.selectedBinding()
	if !ok {
		return nil
	}
	if err := m.store.RemoveBinding(m.store.ActiveProfile(), b.Ref()); err != nil {
		return m.fail(err)
	}
	m.clampCursor()
	return m.setStatusMessage(fmt.Sprintf("Line '%s' removed", b.Name))
}

// editField starts editing the focused field of the selected line: a text
// modal for the name, key capture for the key, and a direct toggle for the
// input type
func (m *Model) editField() tea.Cmd {
	b, ok := m.selectedBinding()
	if !ok {
		return nil
	}
	active := m.store.ActiveProfile()
	if !m.editSession.PermissionsFor(m.store, active).EditBindings {
		if m.store.IsProtected(active) {
			return m.fail(profile.ErrProtected)
		}
		return m.fail(profile.ErrDisabled)
	}

	switch m.field {
	case FieldName:
		m.captureRef = b.Ref()
		m.textInput.Initialize(InputBindingName, b.Name, b.Name)
		m.mode = ModeTextInput
	case FieldKey:
		m.captureRef = b.Ref()
		m.mode = ModeCapture
		return m.setStatusMessage("Press a key for " + b.Name)
	case FieldType:
		next := b.Type.Toggle()
		return m.updateBinding(b.Ref(), types.BindingUpdate{Type: &next})
	}
	return nil
}

// updateBinding applies upd to the line matching ref. A rejected update
// leaves the line as it was, so the view reverts by itself.
func (m *Model) updateBinding(ref types.BindingRef, upd types.BindingUpdate) tea.Cmd {
	updated, err := m.store.UpdateBinding(m.store.ActiveProfile(), ref, upd)
	if err != nil {
		return m.fail(err)
	}
	for i, b := range m.activeBindings() {
		if b == updated {
			m.bindingIndex = i
			break
		}
	}
	switch {
	case upd.Key != nil && updated.Key == "":
		return m.setStatusMessage(fmt.Sprintf("Key of '%s' cleared", updated.Name))
	case upd.Key != nil:
		return m.setStatusMessage(fmt.Sprintf("'%s' bound to %s", updated.Name, updated.Key))
	case upd.Type != nil:
		return m.setStatusMessage(fmt.Sprintf("'%s' set to %s", updated.Name, updated.Type))
	}
	return m.setStatusMessage(fmt.Sprintf("Line renamed to '%s'", updated.Name))
}

func (m *Model) copyKey() tea.Cmd {
	b, ok := m.selectedBinding()
	if !ok || b.Key == "" {
		return m.setErrorMessage("No key to copy")
	}
	if err := clipboard.WriteAll(b.Key); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to copy key: %v", err))
	}
	return m.setStatusMessage(fmt.Sprintf("Key '%s' copied", b.Key))
}

// exportProfiles writes the whole store back to the profiles file
func (m *Model) exportProfiles() tea.Cmd {
	if m.profilesPath == "" {
		return m.setErrorMessage("No profiles file configured")
	}
	if err := seed.Save(m.profilesPath, m.store.SeedFile()); err != nil {
		return m.setErrorMessage(err.Error())
	}
	return m.setStatusMessage("Profiles saved to " + m.profilesPath)
}

// reloadProfiles re-reads the profiles file after it changed on disk
func (m *Model) reloadProfiles() tea.Cmd {
	if m.profilesPath == "" {
		return nil
	}
	report, err := seed.Reload(m.profilesPath, m.store)
	if err != nil {
		m.log.WithError(err).WithField("file", m.profilesPath).Warn("reload failed")
		return m.setErrorMessage(fmt.Sprintf("Reload failed: %v", err))
	}
	for _, issue := range report.Issues() {
		m.log.WithField("file", m.profilesPath).Warn(issue)
	}
	m.clampCursor()
	if report.HasIssues() {
		return m.setErrorMessage(fmt.Sprintf("Profiles reloaded with %d issues (see log)", len(report.Issues())))
	}
	return m.setStatusMessage("Profiles reloaded")
}

func (m *Model) toggleTheme() tea.Cmd {
	m.settings.Theme = m.settings.Theme.Toggle()
	m.theme = NewTheme(m.settings.Theme)
	return m.setStatusMessage("Theme: " + string(m.settings.Theme))
}

// startCountdown opens the countdown before the calibration or camera view
func (m *Model) startCountdown(purpose string) tea.Cmd {
	perms := m.editSession.Permissions(m.store)
	switch purpose {
	case purposeCalibrate:
		if !perms.Calibrate {
			return m.setErrorMessage("Turn ON the power to calibrate.")
		}
		b, ok := m.selectedBinding()
		if !ok {
			return m.setErrorMessage("No line to calibrate")
		}
		m.calibrateBinding = b.Name
	case purposeCamera:
		if !perms.OpenCamera {
			return m.setErrorMessage("Turn ON the power to open the camera.")
		}
	}
	m.mode = ModeCountdown
	return m.countdown.Start(purpose)
}

func (m *Model) cancelCountdown() tea.Cmd {
	purpose := m.countdown.Purpose()
	m.countdown.Cancel()
	m.mode = ModeNormal
	if purpose == purposeCamera {
		return m.setStatusMessage("Camera cancelled")
	}
	return m.setStatusMessage("Calibration cancelled")
}

func (m *Model) handleCountdownDone(msg countdown.DoneMsg) tea.Cmd {
	if m.mode != ModeCountdown {
		return nil
	}
	m.frameID++
	m.frameOn = true
	switch msg.Purpose {
	case purposeCamera:
		m.mode = ModeCamera
		m.recording = false
		return tea.Batch(m.setStatusMessage("Camera opened"), m.nextFrame())
	default:
		m.mode = ModeCalibration
		m.recording = true
		return tea.Batch(m.setStatusMessage("Calibration started"), m.nextFrame())
	}
}

func (m *Model) closeDeviceView() tea.Cmd {
	wasCamera := m.mode == ModeCamera
	m.mode = ModeNormal
	m.recording = false
	m.frameID++
	if wasCamera {
		return m.setStatusMessage("Camera closed")
	}
	return m.setStatusMessage("Calibration finished")
}

func (m *Model) openHistory() tea.Cmd {
	if m.historyManager == nil {
		return m.setErrorMessage("Journal is disabled")
	}
	m.mode = ModeHistory
	m.updateHistoryView()
	mgr := m.historyManager
	return func() tea.Msg {
		entries, err := mgr.Load("", HistoryViewLimit)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load journal: %v", err))
		}
		return historyLoadedMsg{entries: entries}
	}
}

func (m *Model) clearHistory() tea.Cmd {
	if m.historyManager == nil {
		return nil
	}
	mgr := m.historyManager
	return func() tea.Msg {
		n, err := mgr.Clear("")
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to clear journal: %v", err))
		}
		return historyClearedMsg{count: n}
	}
}
