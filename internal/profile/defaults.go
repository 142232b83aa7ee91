package profile

import "github.com/studiowebux/keydeck/internal/types"

const (
	// DefaultProfileName is the protected profile that always exists
	DefaultProfileName = "Default"

	// MaxExtraProfiles is the number of profiles allowed besides Default
	MaxExtraProfiles = 4

	// NewBindingName is the placeholder name of a freshly added line
	NewBindingName = "Name"
)

// DefaultBindings returns the bindings the Default profile starts with
func DefaultBindings() []types.Binding {
	return []types.Binding{
		{Name: "Forward", Key: "w", Type: types.Click},
		{Name: "Backwards", Key: "s", Type: types.Click},
		{Name: "Left", Key: "a", Type: types.Click},
		{Name: "Right", Key: "d", Type: types.Click},
	}
}
