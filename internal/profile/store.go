package profile

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/studiowebux/keydeck/internal/binding"
	"github.com/studiowebux/keydeck/internal/types"
)

// Gate tells the store whether mutations are currently allowed
type Gate interface {
	Enabled() bool
}

// Store owns every profile, the display order and the active pointer.
// Listeners run after the store lock is released and may query the store.
type Store struct {
	mu        sync.RWMutex
	gate      Gate
	profiles  map[string]*Profile
	order     []string // display order, Default first
	active    string
	defaults  []types.Binding
	listeners []Listener
}

// Option configures a Store
type Option func(*Store)

// WithDefaultBindings replaces the bindings the Default profile starts with
func WithDefaultBindings(bindings []types.Binding) Option {
	return func(s *Store) {
		s.defaults = slices.Clone(bindings)
	}
}

// WithListener subscribes fn to store events
func WithListener(fn Listener) Option {
	return func(s *Store) {
		s.listeners = append(s.listeners, fn)
	}
}

// NewStore creates a store holding only the Default profile. A nil gate
// keeps every gated command disabled.
func NewStore(gate Gate, opts ...Option) *Store {
	s := &Store{
		gate:     gate,
		profiles: make(map[string]*Profile),
		defaults: DefaultBindings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked(s.defaults)
	return s
}

// Subscribe adds a listener
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit(events ...Event) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

// reject reports a refused intent and hands the error back
func (s *Store) reject(intent Intent, profile string, err error) error {
	s.emit(Event{
		Kind:    EventIntentRejected,
		Intent:  intent,
		Profile: profile,
		Detail:  err.Error(),
		Err:     err,
	})
	return err
}

func (s *Store) enabled() bool {
	return s.gate != nil && s.gate.Enabled()
}

func (s *Store) resetLocked(defaults []types.Binding) {
	clear(s.profiles)
	s.profiles[DefaultProfileName] = newProfile(DefaultProfileName, defaults)
	s.order = []string{DefaultProfileName}
	s.active = DefaultProfileName
}

// ListProfiles returns profile names in display order
func (s *Store) ListProfiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// ActiveProfile returns the name of the active profile
func (s *Store) ActiveProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Has reports whether a profile exists
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[name]
	return ok
}

// IsProtected reports whether name is the Default profile
func (s *Store) IsProtected(name string) bool {
	return name == DefaultProfileName
}

// ExtraCount returns the number of profiles besides Default
func (s *Store) ExtraCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order) - 1
}

// ExtraLimit returns the maximum number of extra profiles
func (s *Store) ExtraLimit() int {
	return MaxExtraProfiles
}

// NextSlot returns the slot the next extra profile would take
func (s *Store) NextSlot() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nextSlot(s.order)
}

// BindingsOf returns a copy of a profile's bindings
func (s *Store) BindingsOf(name string) ([]types.Binding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
	}
	return p.Bindings(), nil
}

// CanAssign reports whether bindingName may take rawKey in profile. When it
// may not, the owning binding name is returned.
func (s *Store) CanAssign(profile, bindingName, rawKey string) (bool, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profile]
	if !ok {
		return false, "", fmt.Errorf("%w: '%s'", ErrProfileNotFound, profile)
	}
	allowed, owner := p.registry.CanAssign(bindingName, rawKey)
	return allowed, owner, nil
}

// Snapshot returns every profile in display order
func (s *Store) Snapshot() []types.ProfileSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.ProfileSnapshot, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.profiles[name].Snapshot())
	}
	return out
}

// SeedFile returns the store as a document Load accepts
func (s *Store) SeedFile() types.SeedFile {
	snap := s.Snapshot()
	return types.SeedFile{Active: s.ActiveProfile(), Profiles: snap}
}

// CheckConsistency verifies the registry mirror of every profile
func (s *Store) CheckConsistency() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, name := range s.order {
		if err := s.profiles[name].registry.CheckMirror(); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
	}
	return nil
}

// AddExtraProfile creates an empty profile in the smallest free slot and
// makes it active
func (s *Store) AddExtraProfile() (string, error) {
	s.mu.Lock()
	if !s.enabled() {
		s.mu.Unlock()
		return "", s.reject(IntentAddProfile, "", fmt.Errorf("cannot add a profile: %w", ErrDisabled))
	}

	n, ok := nextSlot(s.order)
	if !ok {
		s.mu.Unlock()
		return "", s.reject(IntentAddProfile, "",
			fmt.Errorf("only %d extra profiles are allowed: %w", MaxExtraProfiles, ErrLimitReached))
	}

	name := SlotName(n)
	s.profiles[name] = newProfile(name, nil)
	s.order = append(s.order, name)
	s.active = name
	s.mu.Unlock()

	s.emit(
		Event{Kind: EventProfileAdded, Intent: IntentAddProfile, Profile: name,
			Detail: fmt.Sprintf("Profile '%s' created (empty)", name)},
		Event{Kind: EventProfileSwitched, Intent: IntentAddProfile, Profile: name,
			Detail: fmt.Sprintf("Switched to '%s'", name)},
	)
	return name, nil
}

// RenameProfile renames a profile, keeping its position and active status
func (s *Store) RenameProfile(oldName, newName string) error {
	newName = strings.TrimSpace(newName)

	s.mu.Lock()
	err := s.checkRenameLocked(oldName, newName)
	if err != nil {
		s.mu.Unlock()
		return s.reject(IntentRenameProfile, oldName, err)
	}
	if oldName == newName {
		s.mu.Unlock()
		return nil
	}

	p := s.profiles[oldName]
	delete(s.profiles, oldName)
	p.name = newName
	s.profiles[newName] = p
	s.order[slices.Index(s.order, oldName)] = newName
	if s.active == oldName {
		s.active = newName
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventProfileRenamed, Intent: IntentRenameProfile, Profile: newName,
		Detail: fmt.Sprintf("Profile '%s' renamed to '%s'", oldName, newName)})
	return nil
}

func (s *Store) checkRenameLocked(oldName, newName string) error {
	if s.IsProtected(oldName) {
		return fmt.Errorf("cannot rename '%s': %w", oldName, ErrProtected)
	}
	if !s.enabled() {
		return fmt.Errorf("cannot rename '%s': %w", oldName, ErrDisabled)
	}
	if _, ok := s.profiles[oldName]; !ok {
		return fmt.Errorf("%w: '%s'", ErrProfileNotFound, oldName)
	}
	if newName == "" {
		return fmt.Errorf("profile %w", ErrEmptyName)
	}
	if newName == oldName {
		return nil
	}
	if _, ok := s.profiles[newName]; ok {
		return fmt.Errorf("%w: '%s' already exists", ErrDuplicateName, newName)
	}
	return nil
}

// CloseProfile discards a profile and its bindings. Closing the active
// profile activates its left neighbor.
func (s *Store) CloseProfile(name string) error {
	s.mu.Lock()
	var err error
	switch {
	case s.IsProtected(name):
		err = fmt.Errorf("cannot close '%s': %w", name, ErrProtected)
	case !s.enabled():
		err = fmt.Errorf("cannot close '%s': %w", name, ErrDisabled)
	default:
		if _, ok := s.profiles[name]; !ok {
			err = fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
		}
	}
	if err != nil {
		s.mu.Unlock()
		return s.reject(IntentCloseProfile, name, err)
	}

	idx := slices.Index(s.order, name)
	s.profiles[name].clear()
	delete(s.profiles, name)
	s.order = slices.Delete(s.order, idx, idx+1)

	events := []Event{{Kind: EventProfileClosed, Intent: IntentCloseProfile, Profile: name,
		Detail: fmt.Sprintf("Profile '%s' closed", name)}}

	if s.active == name {
		// Default sits at index 0 and is never closed, so idx-1 exists
		next := s.order[idx-1]
		events = append(events, s.switchLocked(IntentCloseProfile, next))
	}
	s.mu.Unlock()

	s.emit(events...)
	return nil
}

// SwitchTo makes name the active profile and re-derives its registry
func (s *Store) SwitchTo(name string) error {
	s.mu.Lock()
	if _, ok := s.profiles[name]; !ok {
		s.mu.Unlock()
		return s.reject(IntentSwitchProfile, name, fmt.Errorf("%w: '%s'", ErrProfileNotFound, name))
	}
	ev := s.switchLocked(IntentSwitchProfile, name)
	s.mu.Unlock()

	s.emit(ev)
	return nil
}

func (s *Store) switchLocked(intent Intent, name string) Event {
	s.active = name
	dropped := s.profiles[name].rebuild()

	detail := fmt.Sprintf("Switched to '%s'", name)
	if len(dropped) > 0 {
		detail += fmt.Sprintf(" (%d duplicate keys ignored)", len(dropped))
	}
	return Event{Kind: EventProfileSwitched, Intent: intent, Profile: name, Detail: detail}
}

// editableLocked resolves profile for a binding edit
func (s *Store) editableLocked(profile string) (*Profile, error) {
	if s.IsProtected(profile) {
		return nil, fmt.Errorf("'%s' cannot be modified: %w", profile, ErrProtected)
	}
	if !s.enabled() {
		return nil, fmt.Errorf("turn ON the power to modify profiles: %w", ErrDisabled)
	}
	p, ok := s.profiles[profile]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrProfileNotFound, profile)
	}
	return p, nil
}

// AddBinding appends a binding to profile. When the key is already shown by
// another line or owned in the registry, the line is still added with an
// empty key and the returned *ConflictError names the owner.
func (s *Store) AddBinding(profile, name, rawKey string, typ types.InputType) (types.Binding, error) {
	s.mu.Lock()
	p, err := s.editableLocked(profile)
	if err == nil && !typ.Valid() {
		err = fmt.Errorf("%w: %s", types.ErrInvalidInputType, typ)
	}
	if err != nil {
		s.mu.Unlock()
		return types.Binding{}, s.reject(IntentAddBinding, profile, err)
	}

	b := types.Binding{Name: name, Key: rawKey, Type: typ}
	var conflict error
	if owner, taken := p.displayConflict(-1, rawKey); taken {
		conflict = &ConflictError{Profile: profile, Key: rawKey, Owner: owner}
		b.Key = ""
	} else if ok, owner := p.registry.CanAssign(name, rawKey); !ok {
		conflict = &ConflictError{Profile: profile, Key: rawKey, Owner: owner}
		b.Key = ""
	}

	p.bindings = append(p.bindings, b)
	if b.Name != "" && b.Key != "" {
		p.registry.Assign(b.Name, b.Key)
	}
	s.mu.Unlock()

	detail := fmt.Sprintf("Added '%s' to '%s'", b.Name, profile)
	if conflict != nil {
		detail = conflict.Error()
	}
	s.emit(Event{Kind: EventBindingAdded, Intent: IntentAddBinding, Profile: profile,
		Detail: detail, Err: conflict})
	return b, conflict
}

// UpdateBinding edits the binding identified by ref. Every field is
// validated before anything changes, so a rejected update leaves both the
// binding and the registry untouched.
func (s *Store) UpdateBinding(profile string, ref types.BindingRef, upd types.BindingUpdate) (types.Binding, error) {
	s.mu.Lock()
	p, err := s.editableLocked(profile)
	if err != nil {
		s.mu.Unlock()
		return types.Binding{}, s.reject(IntentUpdateBinding, profile, err)
	}

	idx := p.indexOf(ref)
	if idx < 0 {
		s.mu.Unlock()
		return types.Binding{}, s.reject(IntentUpdateBinding, profile,
			fmt.Errorf("%w: '%s' (%s)", ErrBindingNotFound, ref.Name, ref.Key))
	}

	cur := p.bindings[idx]
	next, err := p.validateUpdate(idx, upd)
	if err != nil {
		s.mu.Unlock()
		return cur, s.reject(IntentUpdateBinding, profile, err)
	}

	// The registry entry under cur.Name may belong to another line sharing
	// the name; only move it when it is this line's key
	if next.Name != cur.Name && p.ownsEntry(cur) {
		p.registry.Rename(cur.Name, next.Name)
	}
	if upd.Key != nil && next.Name != "" {
		if !p.registry.Assign(next.Name, next.Key) {
			// validateUpdate checked ownership, so this only trips on a
			// registry already out of step with the binding list
			owner, _ := p.registry.Owner(next.Key)
			p.rebuild()
			s.mu.Unlock()
			return cur, s.reject(IntentUpdateBinding, profile,
				&ConflictError{Profile: profile, Key: next.Key, Owner: owner})
		}
	}
	p.bindings[idx] = next
	s.mu.Unlock()

	s.emit(Event{Kind: EventBindingUpdated, Intent: IntentUpdateBinding, Profile: profile,
		Detail: describeUpdate(cur, next)})
	return next, nil
}

// validateUpdate computes the edited binding or the reason it is refused
func (p *Profile) validateUpdate(idx int, upd types.BindingUpdate) (types.Binding, error) {
	cur := p.bindings[idx]
	next := cur

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return cur, fmt.Errorf("binding %w", ErrEmptyName)
		}
		next.Name = name
	}

	if upd.Type != nil {
		if !upd.Type.Valid() {
			return cur, fmt.Errorf("%w: %s", types.ErrInvalidInputType, *upd.Type)
		}
		next.Type = *upd.Type
	}

	if upd.Key != nil {
		key := strings.TrimSpace(*upd.Key)
		next.Key = key

		if owner, taken := p.displayConflict(idx, key); taken {
			return cur, &ConflictError{Profile: p.name, Key: key, Owner: owner}
		}
		if owner, taken := p.registry.Owner(key); taken && owner != cur.Name && owner != next.Name {
			return cur, &ConflictError{Profile: p.name, Key: key, Owner: owner}
		}
	}

	return next, nil
}

func describeUpdate(cur, next types.Binding) string {
	var changes []string
	if cur.Name != next.Name {
		changes = append(changes, fmt.Sprintf("name '%s' -> '%s'", cur.Name, next.Name))
	}
	if cur.Key != next.Key {
		changes = append(changes, fmt.Sprintf("key '%s' -> '%s'", cur.Key, next.Key))
	}
	if cur.Type != next.Type {
		changes = append(changes, fmt.Sprintf("type %s -> %s", cur.Type, next.Type))
	}
	if len(changes) == 0 {
		return fmt.Sprintf("'%s' unchanged", next.Name)
	}
	return fmt.Sprintf("Updated '%s': %s", next.Name, strings.Join(changes, ", "))
}

// RemoveBinding deletes the first binding matching ref and releases its key
func (s *Store) RemoveBinding(profile string, ref types.BindingRef) error {
	s.mu.Lock()
	p, err := s.editableLocked(profile)
	if err != nil {
		s.mu.Unlock()
		return s.reject(IntentRemoveBinding, profile, err)
	}

	idx := p.indexOf(ref)
	if idx < 0 {
		s.mu.Unlock()
		return s.reject(IntentRemoveBinding, profile,
			fmt.Errorf("%w: '%s' (%s)", ErrBindingNotFound, ref.Name, ref.Key))
	}
	p.bindings = slices.Delete(p.bindings, idx, idx+1)

	// Only release the registry entry if it belonged to the removed line and
	// no remaining line with the same name still shows that key
	if key, ok := p.registry.KeyOf(ref.Name); ok && binding.Equivalent(key, ref.Key) && !p.holds(ref.Name, key) {
		p.registry.RemoveName(ref.Name)
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventBindingRemoved, Intent: IntentRemoveBinding, Profile: profile,
		Detail: fmt.Sprintf("Removed '%s' from '%s'", ref.Name, profile)})
	return nil
}
