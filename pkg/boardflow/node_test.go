package boardflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefinition_Validate tests definition-level invariants.
func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{
			"valid",
			execDef("n", InputPin("x", TypeString)),
			false,
		},
		{
			"empty name",
			Definition{Pins: []Pin{ExecPin("exec_in", Input)}},
			true,
		},
		{
			"duplicate pin id",
			Definition{Name: "n", Pins: []Pin{
				InputPin("x", TypeString),
				InputPin("x", TypeInteger),
			}},
			true,
		},
		{
			"empty permission name",
			Definition{Name: "n", Permissions: []string{"http", ""}},
			true,
		},
		{
			"undeclared error pin",
			Definition{Name: "n", ErrorPin: "exec_error"},
			true,
		},
		{
			"error pin not exec output",
			Definition{Name: "n", ErrorPin: "x",
				Pins: []Pin{InputPin("x", TypeString)}},
			true,
		},
		{
			"valid error pin",
			Definition{Name: "n", ErrorPin: "exec_error",
				Pins: []Pin{ExecPin("exec_error", Output)}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestDefinition_PinFilters tests the directional and exec pin accessors.
func TestDefinition_PinFilters(t *testing.T) {
	def := Definition{Name: "n", Pins: []Pin{
		ExecPin("exec_in", Input),
		ExecPin("exec_out", Output),
		ExecPin("exec_error", Output),
		InputPin("a", TypeString),
		OutputPin("b", TypeInteger),
	}}

	assert.Equal(t, []Pin{InputPin("a", TypeString)}, def.Inputs())
	assert.Equal(t, []Pin{OutputPin("b", TypeInteger)}, def.Outputs())
	assert.Len(t, def.ExecInputs(), 1)
	assert.Len(t, def.ExecOutputs(), 2)

	pin, ok := def.Pin("a")
	require.True(t, ok)
	assert.Equal(t, TypeString, pin.Type)

	_, ok = def.Pin("missing")
	assert.False(t, ok)
}

// TestDefinition_PermissionSet_IsCopy verifies grants cannot be grown
// through the returned set.
func TestDefinition_PermissionSet_IsCopy(t *testing.T) {
	def := Definition{Name: "n", Permissions: []string{CapabilityHTTP}}

	set := def.PermissionSet()
	set["filesystem"] = struct{}{}

	assert.Equal(t, []string{CapabilityHTTP}, def.PermissionSet().Names())
}

// TestResult_Failed tests result classification.
func TestResult_Failed(t *testing.T) {
	assert.False(t, Result{Status: StatusSuccess}.Failed())
	assert.True(t, Result{Status: StatusFail, Message: "boom"}.Failed())
}

// TestNodeFunc tests the function adapter.
func TestNodeFunc(t *testing.T) {
	called := false
	node := NodeFunc(execDef("fn"), func(ctx *ExecutionContext) {
		called = true
		ctx.Success()
	})

	assert.Equal(t, "fn", node.Define().Name)

	cfg := defaultRunConfig()
	def := node.Define()
	ec := newExecutionContext(context.Background(), &cfg, "b", &boundInstance{id: "i", def: &def, node: node}, nil)
	node.Run(ec)

	assert.True(t, called)
	assert.Equal(t, StatusSuccess, ec.finalResult().Status)
}
