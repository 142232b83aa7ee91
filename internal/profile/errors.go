package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when a key is already owned by another
	// binding of the same profile
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDuplicateName is returned when a profile name is already taken
	ErrDuplicateName = errors.New("duplicate profile name")

	// ErrProtected is returned for mutations of the Default profile
	ErrProtected = errors.New("protected profile")

	// ErrDisabled is returned for mutations while the edit session is off
	ErrDisabled = errors.New("editing is disabled")

	// ErrLimitReached is returned when every extra profile slot is in use
	ErrLimitReached = errors.New("extra profile limit reached")

	// ErrProfileNotFound is returned for unknown profile names
	ErrProfileNotFound = errors.New("profile not found")

	// ErrBindingNotFound is returned when no binding carries the given name+key pair
	ErrBindingNotFound = errors.New("binding not found")

	// ErrEmptyName is returned when a binding or profile name would become empty
	ErrEmptyName = errors.New("name cannot be empty")
)

// ConflictError reports a key already used by another binding
type ConflictError struct {
	Profile string
	Key     string // raw key text that was rejected
	Owner   string // name of the binding holding the key
}

func (e *ConflictError) Error() string {
	owner := e.Owner
	if owner == "" {
		owner = "another input"
	}
	return fmt.Sprintf("key '%s' is already used by '%s' in profile '%s'", e.Key, owner, e.Profile)
}

// Unwrap makes errors.Is(err, ErrDuplicateKey) hold
func (e *ConflictError) Unwrap() error {
	return ErrDuplicateKey
}

// ConflictOwner returns the conflicting binding name carried by err, if any
func ConflictOwner(err error) (string, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Owner, true
	}
	return "", false
}
