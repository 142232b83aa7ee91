/*
Package binding holds the key sequence canonicalization and the per-profile
name/key consistency registry.

# Key sequences

A key sequence is a '+'-joined list of tokens such as "ctrl+shift+a". Two raw
inputs are the same key when their normalized forms are equal:

	Normalize("Ctrl + A ") == "ctrl+a"

The empty sequence means "unset" and never conflicts with anything.

# Registry

Registry mirrors two maps: name -> raw key (for display) and normalized
key -> name (for conflict lookup). Whenever an entry is released the
reverse entry is only deleted if it still points at the releasing name.
Keys can be reassigned out from under a name, and an unconditional delete
would drop the new owner's claim.

	r := NewRegistry()
	r.Assign("Jump", "space")
	ok, owner := r.CanAssign("Crouch", "Space") // false, "Jump"
*/
package binding
