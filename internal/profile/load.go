package profile

import (
	"fmt"
	"strings"

	"github.com/studiowebux/keydeck/internal/types"
)

// SkippedProfile is a seeded profile that was not loaded
type SkippedProfile struct {
	Name   string
	Reason string
}

// DroppedBinding is a seeded binding whose key an earlier binding of the
// same profile already claimed. It stays in the list but owns nothing.
type DroppedBinding struct {
	Profile string
	Binding types.Binding
	Owner   string
}

// LoadReport describes what a Load or Refresh did with its input
type LoadReport struct {
	Loaded  []string
	Skipped []SkippedProfile
	Dropped []DroppedBinding
	Active  string
}

// HasIssues reports whether anything in the input was skipped or ignored
func (r *LoadReport) HasIssues() bool {
	return len(r.Skipped) > 0 || len(r.Dropped) > 0
}

// Issues returns one line per skipped profile or dropped binding
func (r *LoadReport) Issues() []string {
	var lines []string
	for _, sk := range r.Skipped {
		lines = append(lines, fmt.Sprintf("profile '%s' skipped: %s", sk.Name, sk.Reason))
	}
	for _, d := range r.Dropped {
		lines = append(lines, fmt.Sprintf("profile '%s': '%s' ignores key '%s' already used by '%s'",
			d.Profile, d.Binding.Name, d.Binding.Key, d.Owner))
	}
	return lines
}

// Load replaces every profile with the seed's content. It is a host
// operation and is not gated by the edit session. The Default profile keeps
// its starting bindings unless the seed provides it.
func (s *Store) Load(seed types.SeedFile) *LoadReport {
	return s.replace(seed, false)
}

// Refresh reloads profiles after an outside change. The active profile is
// kept when it still exists.
func (s *Store) Refresh(seed types.SeedFile) *LoadReport {
	return s.replace(seed, true)
}

func (s *Store) replace(seed types.SeedFile, keepActive bool) *LoadReport {
	report := &LoadReport{}

	s.mu.Lock()
	previous := s.active
	s.resetLocked(s.defaults)

	seen := make(map[string]bool)
	for _, snap := range seed.Profiles {
		name := strings.TrimSpace(snap.Name)
		switch {
		case name == "":
			report.Skipped = append(report.Skipped, SkippedProfile{Name: snap.Name, Reason: "empty name"})
			continue
		case seen[name]:
			report.Skipped = append(report.Skipped, SkippedProfile{Name: name, Reason: "duplicate name"})
			continue
		}
		seen[name] = true

		if name == DefaultProfileName {
			s.profiles[name] = newProfile(name, snap.Bindings)
			continue
		}
		if len(s.order)-1 >= MaxExtraProfiles {
			report.Skipped = append(report.Skipped, SkippedProfile{Name: name,
				Reason: fmt.Sprintf("only %d extra profiles are allowed", MaxExtraProfiles)})
			continue
		}
		s.profiles[name] = newProfile(name, snap.Bindings)
		s.order = append(s.order, name)
	}

	for _, name := range s.order {
		p := s.profiles[name]
		report.Loaded = append(report.Loaded, name)
		for _, b := range p.rebuild() {
			owner, _ := p.registry.Owner(b.Key)
			report.Dropped = append(report.Dropped, DroppedBinding{Profile: name, Binding: b, Owner: owner})
		}
	}

	target := strings.TrimSpace(seed.Active)
	if keepActive {
		target = previous
	}
	if _, ok := s.profiles[target]; ok {
		s.active = target
	}
	report.Active = s.active
	s.mu.Unlock()

	detail := fmt.Sprintf("Loaded %d profiles", len(report.Loaded))
	if keepActive {
		detail = fmt.Sprintf("Reloaded %d profiles", len(report.Loaded))
	}
	if report.HasIssues() {
		detail += fmt.Sprintf(" (%d issues)", len(report.Skipped)+len(report.Dropped))
	}
	s.emit(Event{Kind: EventProfilesLoaded, Intent: IntentLoad, Profile: report.Active, Detail: detail})
	return report
}
