package boardflow

import (
	"fmt"
	"math"
)

// DataType identifies the kind of value a pin carries.
//
// The set of types is closed: boards and node definitions referencing an
// unknown type are rejected at registration or board-load time. Exec is
// special - it is a control-flow signal and never carries a value.
type DataType string

const (
	// TypeExec is the control-flow signal type. Exec pins carry no value;
	// they only drive execution order.
	TypeExec DataType = "exec"

	// TypeString carries a Go string.
	TypeString DataType = "string"

	// TypeBool carries a Go bool.
	TypeBool DataType = "bool"

	// TypeInteger carries a 64-bit signed integer. Smaller integer kinds
	// are accepted and canonicalized to int64.
	TypeInteger DataType = "integer"

	// TypeFloat carries a float64. float32 is accepted and widened.
	TypeFloat DataType = "float"

	// TypeBytes carries a raw []byte payload.
	TypeBytes DataType = "bytes"

	// TypeStruct carries a map[string]any compound value.
	TypeStruct DataType = "struct"
)

// Valid reports whether t is a member of the closed type set.
func (t DataType) Valid() bool {
	switch t {
	case TypeExec, TypeString, TypeBool, TypeInteger, TypeFloat, TypeBytes, TypeStruct:
		return true
	}
	return false
}

// Validate checks that a raw value's shape matches the data type.
// There is no coercion between types: a string is never parsed into an
// integer and a bool is never stringified. Exec pins reject every value.
func (t DataType) Validate(v any) error {
	_, err := t.Canonical(v)
	return err
}

// Canonical validates v against the data type and returns the canonical
// representation node code observes: int64 for integers, float64 for
// floats, and the value unchanged otherwise.
func (t DataType) Canonical(v any) (any, error) {
	switch t {
	case TypeExec:
		return nil, fmt.Errorf("%w: exec pins carry no value", ErrTypeMismatch)
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint:
			if uint64(n) <= math.MaxInt64 {
				return int64(n), nil
			}
			return nil, fmt.Errorf("%w: integer value %d overflows int64", ErrTypeMismatch, n)
		case uint8:
			return int64(n), nil
		case uint16:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		case uint64:
			if n <= math.MaxInt64 {
				return int64(n), nil
			}
			return nil, fmt.Errorf("%w: integer value %d overflows int64", ErrTypeMismatch, n)
		}
	case TypeFloat:
		switch f := v.(type) {
		case float32:
			return float64(f), nil
		case float64:
			return f, nil
		}
	case TypeBytes:
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	case TypeStruct:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
	default:
		return nil, fmt.Errorf("unknown data type %q", t)
	}
	return nil, fmt.Errorf("%w: %T is not a valid %s value", ErrTypeMismatch, v, t)
}

// Direction distinguishes input pins from output pins.
type Direction string

const (
	// Input pins receive values from connected outputs or defaults.
	Input Direction = "input"

	// Output pins emit values written by the node during an activation.
	Output Direction = "output"
)

// Pin describes one typed slot on a node definition.
//
// A pin's identity is its ID, unique within the owning node. Edges may
// connect an output pin only to an input pin of the identical DataType.
type Pin struct {
	// ID uniquely identifies the pin within its node.
	ID string `yaml:"id" json:"id"`

	// Label is the human-readable name shown by editors.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// Description explains the pin's purpose.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Type is the pin's data type.
	Type DataType `yaml:"type" json:"type"`

	// Direction marks the pin as an input or an output.
	Direction Direction `yaml:"direction" json:"direction"`

	// Default is the value used for an input pin with no bound value.
	// Must match Type; validated when the node is registered.
	Default any `yaml:"default,omitempty" json:"default,omitempty"`
}

// IsExec reports whether the pin is a control-flow pin.
func (p Pin) IsExec() bool {
	return p.Type == TypeExec
}

// validate checks structural rules for a single pin definition.
// A malformed pin is a registration-time error, never deferred to run time.
func (p Pin) validate() error {
	if p.ID == "" {
		return fmt.Errorf("pin has empty id")
	}
	if !p.Type.Valid() {
		return fmt.Errorf("pin %q: unknown data type %q", p.ID, p.Type)
	}
	if p.Direction != Input && p.Direction != Output {
		return fmt.Errorf("pin %q: unknown direction %q", p.ID, p.Direction)
	}
	if p.Default != nil {
		if p.Type == TypeExec {
			return fmt.Errorf("pin %q: exec pins cannot declare a default", p.ID)
		}
		if p.Direction != Input {
			return fmt.Errorf("pin %q: only input pins may declare a default", p.ID)
		}
		if err := p.Type.Validate(p.Default); err != nil {
			return fmt.Errorf("pin %q: malformed default: %w", p.ID, err)
		}
	}
	return nil
}

// ExecPin returns an exec pin with the given id and direction.
func ExecPin(id string, dir Direction) Pin {
	return Pin{ID: id, Type: TypeExec, Direction: dir}
}

// InputPin returns a data input pin.
func InputPin(id string, t DataType) Pin {
	return Pin{ID: id, Type: t, Direction: Input}
}

// OutputPin returns a data output pin.
func OutputPin(id string, t DataType) Pin {
	return Pin{ID: id, Type: t, Direction: Output}
}

// WithDefault returns a copy of the pin with a default value set.
func (p Pin) WithDefault(v any) Pin {
	p.Default = v
	return p
}

// WithLabel returns a copy of the pin with a label and description set.
func (p Pin) WithLabel(label, description string) Pin {
	p.Label = label
	p.Description = description
	return p
}
