package boardflow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDataType_Valid verifies the closed type set.
func TestDataType_Valid(t *testing.T) {
	for _, dt := range []DataType{TypeExec, TypeString, TypeBool, TypeInteger, TypeFloat, TypeBytes, TypeStruct} {
		assert.True(t, dt.Valid(), "type %q should be valid", dt)
	}
	assert.False(t, DataType("date").Valid())
	assert.False(t, DataType("").Valid())
}

// TestDataType_Canonical tests canonicalization and shape checking.
func TestDataType_Canonical(t *testing.T) {
	tests := []struct {
		name    string
		dt      DataType
		in      any
		want    any
		wantErr bool
	}{
		{"string ok", TypeString, "hi", "hi", false},
		{"string rejects int", TypeString, 42, nil, true},
		{"bool ok", TypeBool, true, true, false},
		{"bool rejects string", TypeBool, "true", nil, true},
		{"int widens to int64", TypeInteger, 7, int64(7), false},
		{"int32 widens to int64", TypeInteger, int32(7), int64(7), false},
		{"uint32 widens to int64", TypeInteger, uint32(7), int64(7), false},
		{"int64 passes through", TypeInteger, int64(7), int64(7), false},
		{"integer rejects float", TypeInteger, 7.0, nil, true},
		{"integer rejects string", TypeInteger, "7", nil, true},
		{"uint64 overflow rejected", TypeInteger, uint64(math.MaxUint64), nil, true},
		{"float32 widens to float64", TypeFloat, float32(1.5), float64(1.5), false},
		{"float64 passes through", TypeFloat, 2.5, 2.5, false},
		{"float rejects int", TypeFloat, 2, nil, true},
		{"bytes ok", TypeBytes, []byte("x"), []byte("x"), false},
		{"bytes rejects string", TypeBytes, "x", nil, true},
		{"struct ok", TypeStruct, map[string]any{"k": "v"}, map[string]any{"k": "v"}, false},
		{"struct rejects slice", TypeStruct, []any{1}, nil, true},
		{"exec rejects everything", TypeExec, "signal", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dt.Canonical(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDataType_Validate_NoCoercion confirms values are never parsed across types.
func TestDataType_Validate_NoCoercion(t *testing.T) {
	assert.Error(t, TypeInteger.Validate("42"))
	assert.Error(t, TypeBool.Validate("false"))
	assert.Error(t, TypeString.Validate(int64(42)))
}

// TestPin_Validate tests structural pin rules.
func TestPin_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pin     Pin
		wantErr bool
	}{
		{"valid input", InputPin("count", TypeInteger), false},
		{"valid exec", ExecPin("exec_in", Input), false},
		{"valid default", InputPin("count", TypeInteger).WithDefault(int64(3)), false},
		{"empty id", Pin{Type: TypeString, Direction: Input}, true},
		{"unknown type", Pin{ID: "x", Type: "date", Direction: Input}, true},
		{"unknown direction", Pin{ID: "x", Type: TypeString, Direction: "sideways"}, true},
		{"default on exec pin", Pin{ID: "e", Type: TypeExec, Direction: Input, Default: "go"}, true},
		{"default on output pin", OutputPin("out", TypeString).WithDefault("x"), true},
		{"default wrong type", InputPin("count", TypeInteger).WithDefault("3"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pin.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestPin_IsExec tests exec pin detection.
func TestPin_IsExec(t *testing.T) {
	assert.True(t, ExecPin("exec_in", Input).IsExec())
	assert.False(t, InputPin("value", TypeString).IsExec())
}
