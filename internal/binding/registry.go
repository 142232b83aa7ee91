package binding

import (
	"fmt"
	"sort"
)

// Registry keeps the per-profile name <-> key consistency map.
//
// nameToKey holds the raw key text as displayed; keyToName is keyed by the
// normalized key. The two maps mirror each other for every non-empty key,
// so at most one name owns a normalized key at any time.
type Registry struct {
	nameToKey map[string]string
	keyToName map[string]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		nameToKey: make(map[string]string),
		keyToName: make(map[string]string),
	}
}

// CanAssign reports whether name may take rawKey. When it may not, the name
// currently owning the normalized key is returned.
func (r *Registry) CanAssign(name, rawKey string) (bool, string) {
	norm := Normalize(rawKey)
	if norm == "" {
		return true, ""
	}

	usedBy, ok := r.keyToName[norm]
	if !ok || usedBy == name {
		return true, ""
	}
	return false, usedBy
}

// Assign gives rawKey to name. It returns false and leaves the registry
// untouched when the key belongs to another name.
func (r *Registry) Assign(name, rawKey string) bool {
	if ok, _ := r.CanAssign(name, rawKey); !ok {
		return false
	}

	if old, ok := r.nameToKey[name]; ok && old != "" {
		r.dropMirror(name, old)
	}

	r.nameToKey[name] = rawKey
	if norm := Normalize(rawKey); norm != "" {
		r.keyToName[norm] = name
	}
	return true
}

// RemoveName forgets name and releases its key
func (r *Registry) RemoveName(name string) {
	old, ok := r.nameToKey[name]
	if !ok {
		return
	}
	delete(r.nameToKey, name)
	if old != "" {
		r.dropMirror(name, old)
	}
}

// Rename moves the entry of oldName to newName, keeping its key
func (r *Registry) Rename(oldName, newName string) {
	if oldName == newName || oldName == "" {
		return
	}

	seq, ok := r.nameToKey[oldName]
	if !ok {
		return
	}
	delete(r.nameToKey, oldName)
	if seq == "" {
		return
	}

	// newName may already hold a key of its own; release it before the
	// entry is overwritten so no key is left owned by a name not holding it.
	if prev, ok := r.nameToKey[newName]; ok && prev != "" {
		r.dropMirror(newName, prev)
	}

	norm := Normalize(seq)
	if r.keyToName[norm] == oldName {
		r.keyToName[norm] = newName
	}
	r.nameToKey[newName] = seq
}

// dropMirror deletes the keyToName entry for rawKey only while it still
// points at name. A key reassigned to someone else in between stays put.
func (r *Registry) dropMirror(name, rawKey string) {
	norm := Normalize(rawKey)
	if owner, ok := r.keyToName[norm]; ok && owner == name {
		delete(r.keyToName, norm)
	}
}

// Reset clears both maps
func (r *Registry) Reset() {
	clear(r.nameToKey)
	clear(r.keyToName)
}

// KeyOf returns the raw key text registered for name
func (r *Registry) KeyOf(name string) (string, bool) {
	key, ok := r.nameToKey[name]
	return key, ok
}

// Owner returns the name owning the normalized form of rawKey
func (r *Registry) Owner(rawKey string) (string, bool) {
	norm := Normalize(rawKey)
	if norm == "" {
		return "", false
	}
	name, ok := r.keyToName[norm]
	return name, ok
}

// Len returns the number of registered names
func (r *Registry) Len() int {
	return len(r.nameToKey)
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.nameToKey))
	for name := range r.nameToKey {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckMirror verifies that both maps agree. Every non-empty key held by a
// name must map back to that name, and every owned key must be held by its
// owner.
func (r *Registry) CheckMirror() error {
	for name, raw := range r.nameToKey {
		norm := Normalize(raw)
		if norm == "" {
			continue
		}
		owner, ok := r.keyToName[norm]
		if !ok {
			return fmt.Errorf("key '%s' of '%s' has no owner entry", norm, name)
		}
		if owner != name {
			return fmt.Errorf("key '%s' of '%s' is owned by '%s'", norm, name, owner)
		}
	}

	for norm, owner := range r.keyToName {
		raw, ok := r.nameToKey[owner]
		if !ok {
			return fmt.Errorf("key '%s' owned by unknown name '%s'", norm, owner)
		}
		if Normalize(raw) != norm {
			return fmt.Errorf("key '%s' owned by '%s' which holds '%s'", norm, owner, raw)
		}
	}

	return nil
}
