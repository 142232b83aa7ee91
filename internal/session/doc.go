/*
Package session implements the edit session: the on/off gate that decides
whether profiles and bindings may be changed.

The session starts Disabled. TogglePower takes the target state rather
than flipping the current one, so repeated calls are idempotent and only
actual changes reach the OnChange listeners.

Permissions are derived, never stored. Each call recomputes every gate
from the power state and the profile store's current view:

	EditBindings   on and profile not protected
	AddProfile     on and extra profile limit not reached
	CloseProfile   on and profile not protected
	RenameProfile  on and profile not protected
	Calibrate      on
	OpenCamera     on

The protected Default profile stays read-only whatever the power state.
*/
package session
