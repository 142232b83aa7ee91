package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal      Context = "global"      // Available everywhere
	ContextNormal      Context = "normal"      // Deck view
	ContextCapture     Context = "capture"     // Recording a key for a binding
	ContextTextInput   Context = "text_input"  // Rename and name edit modals
	ContextFilter      Context = "filter"      // Fuzzy binding filter
	ContextHelp        Context = "help"        // Help manual
	ContextHistory     Context = "history"     // Journal viewer
	ContextCalibration Context = "calibration" // Countdown and camera views
	ContextConfirm     Context = "confirm"     // Confirmation dialogs
)

// Contexts lists every context in display order
var Contexts = []Context{
	ContextGlobal,
	ContextNormal,
	ContextCapture,
	ContextTextInput,
	ContextFilter,
	ContextHelp,
	ContextHistory,
	ContextCalibration,
	ContextConfirm,
}

const (
	// Global actions
	ActionQuitForce Action = "quit_force"

	// Deck actions
	ActionQuit          Action = "quit"
	ActionTogglePower   Action = "toggle_power"
	ActionNextProfile   Action = "next_profile"
	ActionPrevProfile   Action = "prev_profile"
	ActionAddProfile    Action = "add_profile"
	ActionRenameProfile Action = "rename_profile"
	ActionCloseProfile  Action = "close_profile"
	ActionAddBinding    Action = "add_binding"
	ActionRemoveBinding Action = "remove_binding"
	ActionEditField     Action = "edit_field"
	ActionFieldLeft     Action = "field_left"
	ActionFieldRight    Action = "field_right"
	ActionCopyKey       Action = "copy_key"
	ActionOpenFilter    Action = "open_filter"
	ActionOpenHelp      Action = "open_help"
	ActionOpenHistory   Action = "open_history"
	ActionCalibrate     Action = "calibrate"
	ActionOpenCamera    Action = "open_camera"
	ActionExport        Action = "export"
	ActionToggleTheme   Action = "toggle_theme"

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"
	ActionNavigateDown   Action = "navigate_down"
	ActionPageUp         Action = "page_up"
	ActionPageDown       Action = "page_down"
	ActionGoToTop        Action = "go_to_top"
	ActionGoToBottom     Action = "go_to_bottom"
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Capture actions
	ActionCaptureCancel Action = "capture_cancel"
	ActionCaptureClear  Action = "capture_clear"

	// Text input actions
	ActionTextSubmit Action = "text_submit"
	ActionTextCancel Action = "text_cancel"

	// Modal actions
	ActionCloseModal Action = "close_modal"
	ActionConfirm    Action = "confirm"
	ActionCancel     Action = "cancel"

	// History actions
	ActionHistoryClear Action = "history_clear"

	// Calibration actions
	ActionCalibrationCancel Action = "calibration_cancel"

	ActionNoOp Action = "noop"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuitForce:         {ActionQuitForce, "Force quit", "Global"},
	ActionQuit:              {ActionQuit, "Quit", "Global"},
	ActionTogglePower:       {ActionTogglePower, "Turn editing ON/OFF", "Session"},
	ActionNextProfile:       {ActionNextProfile, "Next profile", "Profiles"},
	ActionPrevProfile:       {ActionPrevProfile, "Previous profile", "Profiles"},
	ActionAddProfile:        {ActionAddProfile, "Add profile", "Profiles"},
	ActionRenameProfile:     {ActionRenameProfile, "Rename profile", "Profiles"},
	ActionCloseProfile:      {ActionCloseProfile, "Close profile", "Profiles"},
	ActionAddBinding:        {ActionAddBinding, "Add line", "Bindings"},
	ActionRemoveBinding:     {ActionRemoveBinding, "Delete line", "Bindings"},
	ActionEditField:         {ActionEditField, "Edit name, capture key or toggle type", "Bindings"},
	ActionFieldLeft:         {ActionFieldLeft, "Previous field", "Bindings"},
	ActionFieldRight:        {ActionFieldRight, "Next field", "Bindings"},
	ActionCopyKey:           {ActionCopyKey, "Copy key to clipboard", "Bindings"},
	ActionOpenFilter:        {ActionOpenFilter, "Filter bindings", "Bindings"},
	ActionOpenHelp:          {ActionOpenHelp, "Help", "Information"},
	ActionOpenHistory:       {ActionOpenHistory, "Journal", "Information"},
	ActionCalibrate:         {ActionCalibrate, "Calibrate", "Devices"},
	ActionOpenCamera:        {ActionOpenCamera, "Camera", "Devices"},
	ActionExport:            {ActionExport, "Export profiles", "Files"},
	ActionToggleTheme:       {ActionToggleTheme, "Switch theme", "View"},
	ActionNavigateUp:        {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:      {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:            {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:          {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:           {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:        {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionGoToTopPrepare:    {ActionGoToTopPrepare, "Go to top (first g)", "Navigation"},
	ActionCaptureCancel:     {ActionCaptureCancel, "Stop capturing", "Capture"},
	ActionCaptureClear:      {ActionCaptureClear, "Clear key", "Capture"},
	ActionTextSubmit:        {ActionTextSubmit, "Submit", "Text"},
	ActionTextCancel:        {ActionTextCancel, "Cancel", "Text"},
	ActionCloseModal:        {ActionCloseModal, "Close", "Modal"},
	ActionConfirm:           {ActionConfirm, "Confirm", "Modal"},
	ActionCancel:            {ActionCancel, "Cancel", "Modal"},
	ActionHistoryClear:      {ActionHistoryClear, "Clear journal", "History"},
	ActionCalibrationCancel: {ActionCalibrationCancel, "Cancel calibration", "Devices"},
	ActionNoOp:              {ActionNoOp, "Ignore key", "Other"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is defined
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsKnownContext reports whether context is defined
func IsKnownContext(context Context) bool {
	for _, c := range Contexts {
		if c == context {
			return true
		}
	}
	return false
}
