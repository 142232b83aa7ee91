package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys maps keys that should not be rebound to their action
	reservedKeys map[string]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce,
		},
	}
}

// ValidateConfig checks a configuration before it is applied: every action
// must be known, every key well formed, and no key may be listed for two
// actions of the same section. The config is then applied over the defaults
// to look for reserved key and shadowing issues.
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	sections := config.sections()
	for _, context := range Contexts {
		v.checkSection(context, *sections[context], result)
	}
	if result.HasErrors() {
		return result
	}

	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			Message: err.Error(),
		})
		return result
	}

	v.checkReservedKeys(registry, result)
	v.checkShadowing(registry, result)
	return result
}

// ValidateRegistry checks an already built registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
	v.checkReservedKeys(registry, result)
	v.checkShadowing(registry, result)
	return result
}

// checkSection reports unknown actions, bad keys and keys listed twice
func (v *Validator) checkSection(context Context, section map[string]string, result *ValidationResult) {
	actions := make([]string, 0, len(section))
	for action := range section {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	owners := make(map[string]string)
	for _, action := range actions {
		if err := ValidateAction(action); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Context: context,
				Message: err.Error(),
			})
			continue
		}

		for _, key := range SplitKeys(section[action]) {
			if err := ValidateKey(key); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     key,
					Message: err.Error(),
				})
				continue
			}
			if prev, ok := owners[key]; ok && prev != action {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "conflict",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("bound to both '%s' and '%s'", prev, action),
				})
				continue
			}
			owners[key] = action
		}
	}
}

// checkReservedKeys checks if any reserved keys have been rebound globally
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for key, want := range v.reservedKeys {
		action, ok := registry.bindings[ContextGlobal][key]
		if ok && action != want {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Context: ContextGlobal,
				Key:     key,
				Message: "reserved key rebound (may cause issues)",
			})
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	globalBindings := registry.bindings[ContextGlobal]
	if globalBindings == nil {
		return
	}

	for _, context := range Contexts {
		if context == ContextGlobal {
			continue
		}
		bindings := registry.bindings[context]
		keys := make([]string, 0, len(bindings))
		for key := range bindings {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			action := bindings[key]
			if globalAction, ok := globalBindings[key]; ok && action != globalAction {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
				})
			}
		}
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config) []string {
	result := NewValidator().ValidateConfig(config)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}
	return conflicts
}

var validModifiers = []string{"ctrl", "alt", "shift", "super"}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if key == "+" {
		return nil
	}

	tokens := strings.Split(key, "+")
	for i, tok := range tokens {
		if tok == "" {
			return fmt.Errorf("empty token in key: %s", key)
		}
		if i < len(tokens)-1 && !isModifier(tok) {
			return fmt.Errorf("unknown modifier '%s' in key: %s", tok, key)
		}
	}
	if isModifier(tokens[len(tokens)-1]) {
		return fmt.Errorf("modifier without key: %s", key)
	}

	return nil
}

func isModifier(tok string) bool {
	for _, mod := range validModifiers {
		if tok == mod {
			return true
		}
	}
	return false
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action '%s'", actionStr)
	}
	return nil
}
