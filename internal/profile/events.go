package profile

// EventKind names what happened to the store
type EventKind string

const (
	EventProfileAdded    EventKind = "profile_added"
	EventProfileRenamed  EventKind = "profile_renamed"
	EventProfileClosed   EventKind = "profile_closed"
	EventProfileSwitched EventKind = "profile_switched"
	EventBindingAdded    EventKind = "binding_added"
	EventBindingUpdated  EventKind = "binding_updated"
	EventBindingRemoved  EventKind = "binding_removed"
	EventIntentRejected  EventKind = "intent_rejected"
	EventProfilesLoaded  EventKind = "profiles_loaded"
)

// Intent names the command an event answers
type Intent string

const (
	IntentAddProfile    Intent = "add_profile"
	IntentRenameProfile Intent = "rename_profile"
	IntentCloseProfile  Intent = "close_profile"
	IntentSwitchProfile Intent = "switch_profile"
	IntentAddBinding    Intent = "add_binding"
	IntentUpdateBinding Intent = "update_binding"
	IntentRemoveBinding Intent = "remove_binding"
	IntentLoad          Intent = "load"
)

// Event is reported to listeners after every command, accepted or not
type Event struct {
	Kind    EventKind
	Intent  Intent
	Profile string
	Detail  string // human readable status line
	Err     error  // rejection reason, or a surfaced conflict on an accepted add
}

// Listener receives store events
type Listener func(Event)
