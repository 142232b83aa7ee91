package profile

import (
	"slices"

	"github.com/studiowebux/keydeck/internal/binding"
	"github.com/studiowebux/keydeck/internal/types"
)

// Profile is an ordered list of bindings plus the registry derived from it
type Profile struct {
	name     string
	bindings []types.Binding
	registry *binding.Registry
}

func newProfile(name string, bindings []types.Binding) *Profile {
	p := &Profile{
		name:     name,
		bindings: slices.Clone(bindings),
		registry: binding.NewRegistry(),
	}
	p.rebuild()
	return p
}

// Name returns the profile name
func (p *Profile) Name() string {
	return p.name
}

// Bindings returns a copy of the binding list
func (p *Profile) Bindings() []types.Binding {
	return slices.Clone(p.bindings)
}

// Snapshot returns the serializable form of the profile
func (p *Profile) Snapshot() types.ProfileSnapshot {
	return types.ProfileSnapshot{Name: p.name, Bindings: p.Bindings()}
}

// rebuild re-derives the registry from the binding list. Bindings with an
// empty name or key are skipped; when stored data holds the same normalized
// key twice, the first binding keeps it and the later ones are returned.
func (p *Profile) rebuild() []types.Binding {
	p.registry.Reset()

	var dropped []types.Binding
	seen := make(map[string]bool)
	for _, b := range p.bindings {
		if b.Name == "" || b.Key == "" {
			continue
		}
		norm := binding.Normalize(b.Key)
		if seen[norm] {
			dropped = append(dropped, b)
			continue
		}
		p.registry.Assign(b.Name, b.Key)
		seen[norm] = true
	}
	return dropped
}

// clear empties the profile on closure
func (p *Profile) clear() {
	p.bindings = nil
	p.registry.Reset()
}

func (p *Profile) indexOf(ref types.BindingRef) int {
	return slices.IndexFunc(p.bindings, ref.Matches)
}

// displayConflict scans the other bindings' displayed keys for rawKey.
// Bindings that never reached the registry (empty name) still count.
func (p *Profile) displayConflict(skip int, rawKey string) (string, bool) {
	norm := binding.Normalize(rawKey)
	if norm == "" {
		return "", false
	}
	for i, b := range p.bindings {
		if i == skip {
			continue
		}
		if binding.Normalize(b.Key) == norm {
			return b.Name, true
		}
	}
	return "", false
}

// holds reports whether some binding still carries name with a key
// equivalent to rawKey
func (p *Profile) holds(name, rawKey string) bool {
	return slices.ContainsFunc(p.bindings, func(b types.Binding) bool {
		return b.Name == name && binding.Equivalent(b.Key, rawKey)
	})
}

// ownsEntry reports whether the registry entry under b.Name carries b's key
func (p *Profile) ownsEntry(b types.Binding) bool {
	key, ok := p.registry.KeyOf(b.Name)
	return ok && binding.Equivalent(key, b.Key)
}
