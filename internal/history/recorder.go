package history

import (
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/types"
)

// EntryFromEvent converts a store event into a journal row
func EntryFromEvent(ev profile.Event) types.JournalEntry {
	entry := types.JournalEntry{
		Profile: ev.Profile,
		Kind:    string(ev.Kind),
		Detail:  ev.Detail,
	}
	if ev.Kind == profile.EventIntentRejected {
		entry.Detail = string(ev.Intent)
		if ev.Detail != "" {
			entry.Detail += ": " + ev.Detail
		}
	}
	if ev.Err != nil {
		entry.Error = ev.Err.Error()
	}
	return entry
}

// Recorder returns a store listener writing every event to the journal.
// Write failures are logged and otherwise ignored so the UI keeps going.
func Recorder(m *Manager, log logrus.FieldLogger) profile.Listener {
	return func(ev profile.Event) {
		if err := m.Record(EntryFromEvent(ev)); err != nil && log != nil {
			log.WithError(err).WithField("kind", ev.Kind).Warn("journal write failed")
		}
	}
}
