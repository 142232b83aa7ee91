package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerCaptureBindings(r)
	registerTextInputBindings(r)
	registerFilterBindings(r)
	registerHelpBindings(r)
	registerHistoryBindings(r)
	registerCalibrationBindings(r)
	registerConfirmBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNormalModeBindings sets up the deck view
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)
	r.Register(ContextNormal, "p", ActionTogglePower)

	// Profiles
	r.Register(ContextNormal, "tab", ActionNextProfile)
	r.Register(ContextNormal, "shift+tab", ActionPrevProfile)
	r.Register(ContextNormal, "n", ActionAddProfile)
	r.Register(ContextNormal, "R", ActionRenameProfile)
	r.Register(ContextNormal, "X", ActionCloseProfile)

	// Bindings
	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextNormal, []string{"left", "h"}, ActionFieldLeft)
	r.RegisterMultiple(ContextNormal, []string{"right", "l"}, ActionFieldRight)
	r.RegisterMultiple(ContextNormal, []string{"enter", "e"}, ActionEditField)
	r.Register(ContextNormal, "a", ActionAddBinding)
	r.Register(ContextNormal, "d", ActionRemoveBinding)
	r.Register(ContextNormal, "y", ActionCopyKey)
	r.Register(ContextNormal, "/", ActionOpenFilter)

	// Devices
	r.Register(ContextNormal, "c", ActionCalibrate)
	r.Register(ContextNormal, "C", ActionOpenCamera)

	r.Register(ContextNormal, "?", ActionOpenHelp)
	r.Register(ContextNormal, "H", ActionOpenHistory)
	r.Register(ContextNormal, "E", ActionExport)
	r.Register(ContextNormal, "t", ActionToggleTheme)
}

// registerCaptureBindings keeps the keys that stop a capture. Every other
// key is recorded.
func registerCaptureBindings(r *Registry) {
	r.Register(ContextCapture, "esc", ActionCaptureCancel)
	r.RegisterMultiple(ContextCapture, []string{"backspace", "delete"}, ActionCaptureClear)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
}

func registerFilterBindings(r *Registry) {
	r.Register(ContextFilter, "enter", ActionTextSubmit)
	r.Register(ContextFilter, "esc", ActionTextCancel)
	r.Register(ContextFilter, "up", ActionNavigateUp)
	r.Register(ContextFilter, "down", ActionNavigateDown)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHelp, "pgup", ActionPageUp)
	r.Register(ContextHelp, "pgdown", ActionPageDown)
	r.Register(ContextHelp, "g", ActionGoToTopPrepare)
	r.Register(ContextHelp, "gg", ActionGoToTop)
	r.RegisterMultiple(ContextHelp, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextHelp, "home", ActionGoToTop)
}

func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"esc", "H", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHistory, "C", ActionHistoryClear)
}

func registerCalibrationBindings(r *Registry) {
	r.RegisterMultiple(ContextCalibration, []string{"esc", "q", "c"}, ActionCalibrationCancel)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}
