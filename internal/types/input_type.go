package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// InputType is the trigger mode of a binding
type InputType int

const (
	Click InputType = iota
	Hold
)

// ErrInvalidInputType is returned for trigger modes other than Click and Hold
var ErrInvalidInputType = errors.New("invalid input type")

// InputTypes lists the trigger modes in display order
var InputTypes = []InputType{Click, Hold}

func (t InputType) String() string {
	switch t {
	case Click:
		return "Click"
	case Hold:
		return "Hold"
	default:
		return fmt.Sprintf("InputType(%d)", int(t))
	}
}

// Valid reports whether t is a known trigger mode
func (t InputType) Valid() bool {
	return t == Click || t == Hold
}

// Toggle returns the other trigger mode
func (t InputType) Toggle() InputType {
	if t == Hold {
		return Click
	}
	return Hold
}

// ParseInputType parses a trigger mode name, ignoring case and padding.
// An empty string is Click.
func ParseInputType(s string) (InputType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "click":
		return Click, nil
	case "hold":
		return Hold, nil
	default:
		return Click, fmt.Errorf("%w: %q (use Click or Hold)", ErrInvalidInputType, s)
	}
}

// MarshalJSON writes the trigger mode by name
func (t InputType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInputType, int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the trigger mode name
func (t *InputType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("input type must be a string (Click or Hold)")
	}
	parsed, err := ParseInputType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML writes the trigger mode by name
func (t InputType) MarshalYAML() (interface{}, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInputType, int(t))
	}
	return t.String(), nil
}

// UnmarshalYAML accepts the trigger mode name
func (t *InputType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return errors.New("input type must be a string (Click or Hold)")
	}
	parsed, err := ParseInputType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
