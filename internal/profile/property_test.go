package profile

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/studiowebux/keydeck/internal/binding"
	"github.com/studiowebux/keydeck/internal/session"
	"github.com/studiowebux/keydeck/internal/types"
)

var (
	propNames = []string{"Jump", "Crouch", "Fire", "", "Name"}
	propKeys  = []string{"", "space", "SPACE", "c", " C ", "ctrl+a", "Ctrl + A", "+"}
)

// checkStore verifies the structural invariants of the store and of every
// profile registry
func checkStore(t *rapid.T, s *Store) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 || s.order[0] != DefaultProfileName {
		t.Fatalf("Default is not first: %v", s.order)
	}
	if len(s.order)-1 > MaxExtraProfiles {
		t.Fatalf("%d extra profiles", len(s.order)-1)
	}
	if len(s.order) != len(s.profiles) {
		t.Fatalf("order %v does not match %d profiles", s.order, len(s.profiles))
	}
	if _, ok := s.profiles[s.active]; !ok {
		t.Fatalf("active profile %q missing", s.active)
	}

	for _, name := range s.order {
		p, ok := s.profiles[name]
		if !ok {
			t.Fatalf("profile %q listed but missing", name)
		}
		if err := p.registry.CheckMirror(); err != nil {
			t.Fatalf("profile %q: %v", name, err)
		}
		// no two lines show the same key
		shown := make(map[string]string)
		for _, b := range p.bindings {
			norm := binding.Normalize(b.Key)
			if norm == "" {
				continue
			}
			if other, dup := shown[norm]; dup {
				t.Fatalf("profile %q: key %q shown by both %q and %q", name, norm, other, b.Name)
			}
			shown[norm] = b.Name
		}
		// every registered key is shown by a line carrying the same name
		for _, regName := range p.registry.Names() {
			key, _ := p.registry.KeyOf(regName)
			if binding.Normalize(key) == "" {
				continue
			}
			if !p.holds(regName, key) {
				t.Fatalf("profile %q: registry %q=%q has no matching line in %v", name, regName, key, p.bindings)
			}
		}
	}
}

func pickProfile(t *rapid.T, s *Store) string {
	return rapid.SampledFrom(s.ListProfiles()).Draw(t, "profile")
}

func pickRef(t *rapid.T, s *Store, profile string) types.BindingRef {
	bindings, _ := s.BindingsOf(profile)
	if len(bindings) == 0 || rapid.Bool().Draw(t, "unknownRef") {
		return types.BindingRef{
			Name: rapid.SampledFrom(propNames).Draw(t, "refName"),
			Key:  rapid.SampledFrom(propKeys).Draw(t, "refKey"),
		}
	}
	return rapid.SampledFrom(bindings).Draw(t, "binding").Ref()
}

func TestStore_Invariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sess := session.NewEditSession()
		s := NewStore(sess)
		steps := rapid.IntRange(1, 60).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 8).Draw(t, "op") {
			case 0:
				sess.TogglePower(rapid.Bool().Draw(t, "power"))
			case 1:
				_, _ = s.AddExtraProfile()
			case 2:
				_ = s.CloseProfile(pickProfile(t, s))
			case 3:
				_ = s.RenameProfile(pickProfile(t, s), rapid.SampledFrom([]string{"Racing", "Default", "Profile #3", ""}).Draw(t, "newName"))
			case 4:
				_ = s.SwitchTo(pickProfile(t, s))
			case 5:
				_, _ = s.AddBinding(pickProfile(t, s),
					rapid.SampledFrom(propNames).Draw(t, "name"),
					rapid.SampledFrom(propKeys).Draw(t, "key"),
					rapid.SampledFrom(types.InputTypes).Draw(t, "type"))
			case 6:
				p := pickProfile(t, s)
				var upd types.BindingUpdate
				if rapid.Bool().Draw(t, "setName") {
					n := rapid.SampledFrom(propNames).Draw(t, "newBindingName")
					upd.Name = &n
				}
				if rapid.Bool().Draw(t, "setKey") {
					k := rapid.SampledFrom(propKeys).Draw(t, "newKey")
					upd.Key = &k
				}
				_, _ = s.UpdateBinding(p, pickRef(t, s, p), upd)
			case 7:
				p := pickProfile(t, s)
				_ = s.RemoveBinding(p, pickRef(t, s, p))
			case 8:
				before := s.Snapshot()
				err := s.RenameProfile(pickProfile(t, s), pickProfile(t, s))
				if err != nil {
					after := s.Snapshot()
					if len(before) != len(after) {
						t.Fatalf("rejected rename changed the store")
					}
					for j := range before {
						if before[j].Name != after[j].Name {
							t.Fatalf("rejected rename changed %q to %q", before[j].Name, after[j].Name)
						}
					}
				}
			}

			checkStore(t, s)
		}
	})
}

// shownOwner returns the first line of profile displaying rawKey
func shownOwner(s *Store, profile, rawKey string) (string, bool) {
	bindings, _ := s.BindingsOf(profile)
	for _, b := range bindings {
		if binding.Normalize(rawKey) != "" && binding.Equivalent(b.Key, rawKey) {
			return b.Name, true
		}
	}
	return "", false
}

// Property: an add conflict names the line showing the key, or else the
// owner reported by CanAssign
func TestStore_AddConflictMatchesCanAssign(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sess := session.NewEditSession()
		sess.TogglePower(true)
		s := NewStore(sess)
		p, err := s.AddExtraProfile()
		if err != nil {
			t.Fatalf("AddExtraProfile: %v", err)
		}

		n := rapid.IntRange(1, 20).Draw(t, "n")
		for i := 0; i < n; i++ {
			name := rapid.SampledFrom(propNames).Draw(t, "name")
			key := rapid.SampledFrom(propKeys).Draw(t, "key")

			ok, owner, _ := s.CanAssign(p, name, key)
			shownBy, shown := shownOwner(s, p, key)
			b, err := s.AddBinding(p, name, key, types.Click)

			if shown {
				got, isConflict := ConflictOwner(err)
				if !isConflict || got != shownBy || b.Key != "" {
					t.Fatalf("key %q shown by %q: got owner %q, key %q (err %v)", key, shownBy, got, b.Key, err)
				}
			} else if ok && err != nil {
				t.Fatalf("AddBinding(%q, %q) failed although CanAssign allowed it: %v", name, key, err)
			}
			if !ok && !shown {
				got, isConflict := ConflictOwner(err)
				if !isConflict || got != owner {
					t.Fatalf("conflict owner %q, CanAssign said %q (err %v)", got, owner, err)
				}
				if b.Key != "" {
					t.Fatalf("conflicting line kept key %q", b.Key)
				}
			}
			checkStore(t, s)
		}
	})
}
