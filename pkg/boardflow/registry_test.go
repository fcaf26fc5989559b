package boardflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNodeRegistry_Register tests successful registration.
func TestNodeRegistry_Register(t *testing.T) {
	reg := NewNodeRegistry()

	def, err := reg.Register(recorderNode("worker", &[]string{}))
	require.NoError(t, err)
	assert.Equal(t, "worker", def.Name)
	assert.Equal(t, 1, reg.Len())
	assert.Contains(t, reg.Names(), "worker")
}

// TestNodeRegistry_Register_Duplicate tests that names are claimed once.
func TestNodeRegistry_Register_Duplicate(t *testing.T) {
	reg := NewNodeRegistry()
	_, err := reg.Register(recorderNode("worker", &[]string{}))
	require.NoError(t, err)

	_, err = reg.Register(recorderNode("worker", &[]string{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "worker", regErr.Node)
	assert.Equal(t, 1, reg.Len())
}

// TestNodeRegistry_Register_Malformed tests that rejected nodes are not
// added in any form.
func TestNodeRegistry_Register_Malformed(t *testing.T) {
	reg := NewNodeRegistry()

	bad := NodeFunc(Definition{Name: "bad", Pins: []Pin{
		InputPin("x", TypeString),
		InputPin("x", TypeString),
	}}, func(ctx *ExecutionContext) { ctx.Success() })

	_, err := reg.Register(bad)
	require.Error(t, err)

	var regErr *RegistrationError
	assert.ErrorAs(t, err, &regErr)

	_, err = reg.Lookup("bad")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, reg.Len())
}

// TestNodeRegistry_Lookup_SharedDefinition verifies lookups hand out the
// same definition pointer rather than copies.
func TestNodeRegistry_Lookup_SharedDefinition(t *testing.T) {
	reg := NewNodeRegistry()
	registered, err := reg.Register(recorderNode("worker", &[]string{}))
	require.NoError(t, err)

	first, err := reg.Lookup("worker")
	require.NoError(t, err)
	second, err := reg.Lookup("worker")
	require.NoError(t, err)

	assert.Same(t, registered, first)
	assert.Same(t, first, second)
}

// TestNodeRegistry_Lookup_NotFound tests the unknown-name error.
func TestNodeRegistry_Lookup_NotFound(t *testing.T) {
	reg := NewNodeRegistry()

	_, err := reg.Lookup("ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Node("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestNodeRegistry_MustRegister_Panics tests startup wiring failure mode.
func TestNodeRegistry_MustRegister_Panics(t *testing.T) {
	reg := NewNodeRegistry()
	reg.MustRegister(recorderNode("worker", &[]string{}))

	assert.Panics(t, func() {
		reg.MustRegister(recorderNode("worker", &[]string{}))
	})
}

// TestNodeRegistry_DefineCalledOnce verifies Define is consulted at
// registration, not per lookup.
func TestNodeRegistry_DefineCalledOnce(t *testing.T) {
	calls := 0
	node := &countingDefineNode{calls: &calls}

	reg := NewNodeRegistry()
	_, err := reg.Register(node)
	require.NoError(t, err)

	_, _ = reg.Lookup("counted")
	_, _ = reg.Lookup("counted")

	assert.Equal(t, 1, calls)
}

type countingDefineNode struct {
	calls *int
}

func (n *countingDefineNode) Define() Definition {
	*n.calls++
	return execDef("counted")
}

func (n *countingDefineNode) Run(ctx *ExecutionContext) { ctx.Success() }
