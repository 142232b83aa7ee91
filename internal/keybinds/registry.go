package keybinds

import (
	"sort"
	"strings"
	"sync"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	mu sync.RWMutex

	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// pending tracks multi-key sequences (like 'gg' in vim)
	pending map[Context]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
		pending:  make(map[Context]string),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerLocked(context, key, action)
}

func (r *Registry) registerLocked(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		r.registerLocked(context, key, action)
	}
}

// Rebind replaces every key of action in context with keys
func (r *Registry) Rebind(context Context, action Action, keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
	for _, key := range keys {
		r.registerLocked(context, key, action)
	}
}

// Match attempts to match a key to an action in the given context.
// The specific context wins over global.
func (r *Registry) Match(context Context, key string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.matchLocked(context, key)
}

func (r *Registry) matchLocked(context Context, key string) (Action, bool) {
	if action, ok := r.bindings[context][key]; ok {
		return action, true
	}
	if action, ok := r.bindings[ContextGlobal][key]; ok {
		return action, true
	}
	return "", false
}

// MatchMultiKey handles multi-key sequences like 'gg'.
// Returns the action, whether it's a complete match, and whether it's a partial match.
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.pending[context]; ok {
		delete(r.pending, context)
		if action, ok := r.matchLocked(context, prev+key); ok {
			return action, true, false
		}
		return "", false, false
	}

	if action, ok := r.matchLocked(context, key); ok && action == ActionGoToTopPrepare {
		r.pending[context] = key
		return "", false, true
	}

	action, ok := r.matchLocked(context, key)
	return action, ok, false
}

// ClearMultiKeyState clears any pending multi-key state for a context
func (r *Registry) ClearMultiKeyState(context Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, context)
}

// GetBinding returns the sorted key(s) bound to an action in a context,
// falling back to global
func (r *Registry) GetBinding(context Context, action Action) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := keysFor(r.bindings[context], action)
	if len(keys) == 0 {
		keys = keysFor(r.bindings[ContextGlobal], action)
	}
	return keys
}

func keysFor(bindings map[string]Action, action Action) []string {
	var keys []string
	for key, act := range bindings {
		if act == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns all bindings for a context followed by the global
// ones, sorted by key
func (r *Registry) ListBindings(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	contexts := []Context{context}
	if context != ContextGlobal {
		contexts = append(contexts, ContextGlobal)
	}
	for _, ctx := range contexts {
		var part []Binding
		for key, action := range r.bindings[ctx] {
			part = append(part, Binding{Key: key, Action: action, Context: ctx})
		}
		sort.Slice(part, func(i, j int) bool { return part[i].Key < part[j].Key })
		out = append(out, part...)
	}
	return out
}

// HasBinding checks if a key is bound in a context or globally
func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, key)
	return ok
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := NewRegistry()
	for context, bindings := range r.bindings {
		for key, action := range bindings {
			clone.registerLocked(context, key, action)
		}
	}
	return clone
}
