package types

import "time"

// Binding is one action-name/key/trigger-mode triple within a profile
type Binding struct {
	Name string    `json:"name" yaml:"name"`
	Key  string    `json:"key" yaml:"key"` // raw key text as displayed
	Type InputType `json:"type" yaml:"type"`
}

// Ref returns the name+key pair identifying this binding
func (b Binding) Ref() BindingRef {
	return BindingRef{Name: b.Name, Key: b.Key}
}

// BindingRef identifies a binding by its name and raw key. Bindings are
// matched by value, not identity: the first binding with the same pair wins.
type BindingRef struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
}

// Matches reports whether b carries exactly this name+key pair
func (r BindingRef) Matches(b Binding) bool {
	return b.Name == r.Name && b.Key == r.Key
}

// BindingUpdate is a per-field edit intent. Nil fields are left unchanged.
type BindingUpdate struct {
	Name *string
	Key  *string
	Type *InputType
}

// IsEmpty reports whether the update changes nothing
func (u BindingUpdate) IsEmpty() bool {
	return u.Name == nil && u.Key == nil && u.Type == nil
}

// ProfileSnapshot is the projected, serializable form of a profile
type ProfileSnapshot struct {
	Name     string    `json:"name" yaml:"name"`
	Bindings []Binding `json:"bindings" yaml:"bindings"`
}

// SeedFile is the host-side document a store can be seeded from
type SeedFile struct {
	Active   string            `json:"active,omitempty" yaml:"active,omitempty"`
	Profiles []ProfileSnapshot `json:"profiles" yaml:"profiles"`
}

// JournalEntry is one recorded intent outcome
type JournalEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Profile   string    `json:"profile"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	Error     string    `json:"error,omitempty"`
}
