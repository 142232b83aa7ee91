/*
Package types defines the data structures shared by the keydeck packages.

# Bindings

Binding is an action name, a raw key sequence and a trigger mode:

	{"name": "Jump", "key": "space", "type": "Hold"}

The key is kept exactly as entered; comparisons go through
binding.Normalize. InputType serializes by name ("Click" or "Hold") in
both JSON and YAML, and parsing ignores case.

# References and updates

BindingRef names a binding by its name+key pair. Edits and removals act
on the first binding carrying that pair. BindingUpdate carries optional
per-field changes.

# Snapshots

ProfileSnapshot is the projected list form of a profile and SeedFile the
host document holding several of them. Neither is a storage format of the
profile store itself; the store keeps its state for the process lifetime.
*/
package types
