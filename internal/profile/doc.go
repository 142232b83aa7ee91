/*
Package profile implements the profile store: the protected Default profile,
up to four extra profiles named "Profile #N", the active pointer, and the
bindings of each profile.

Every profile keeps a binding.Registry derived from its binding list. The
registry is rebuilt whenever a profile becomes active, so a stale registry
never outlives a switch.

# Gating

Mutations of extra profiles are allowed only while the Gate reports Enabled.
The Default profile can never be renamed, closed or edited. Switching and
host loading are never gated.

	sess := session.NewEditSession()
	store := profile.NewStore(sess)

	sess.TogglePower(true)
	name, _ := store.AddExtraProfile() // "Profile #1", now active
	store.AddBinding(name, "Jump", "space", types.Hold)

	_, err := store.AddBinding(name, "Crouch", "Space", types.Click)
	errors.Is(err, profile.ErrDuplicateKey) // true, Crouch was added with no key

# Events

Every command reports an Event to the listeners, including rejected ones
(EventIntentRejected carries the error). Listeners run outside the store
lock.
*/
package profile
