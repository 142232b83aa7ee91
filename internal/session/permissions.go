package session

// ProfileView is the read side of a profile store needed to compute
// permissions
type ProfileView interface {
	ActiveProfile() string
	IsProtected(name string) bool
	ExtraCount() int
	ExtraLimit() int
}

// Permissions lists which intents are currently allowed on the active
// profile
type Permissions struct {
	EditBindings  bool // add, edit, remove bindings
	AddProfile    bool
	CloseProfile  bool
	RenameProfile bool
	Calibrate     bool
	OpenCamera    bool
}

// Permissions recomputes every gate from scratch for the active profile
func (s *EditSession) Permissions(view ProfileView) Permissions {
	return s.PermissionsFor(view, view.ActiveProfile())
}

// PermissionsFor recomputes every gate from scratch for the named profile
func (s *EditSession) PermissionsFor(view ProfileView, profile string) Permissions {
	on := s.Enabled()
	protected := view.IsProtected(profile)

	return Permissions{
		EditBindings:  on && !protected,
		AddProfile:    on && view.ExtraCount() < view.ExtraLimit(),
		CloseProfile:  on && !protected,
		RenameProfile: on && !protected,
		Calibrate:     on,
		OpenCamera:    on,
	}
}
