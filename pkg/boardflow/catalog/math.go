package catalog

import (
	"fmt"

	"github.com/boardflow/boardflow/pkg/boardflow"
)

// IntegerAdd sums two integers.
type IntegerAdd struct{}

// Define returns the integer_add node definition.
func (IntegerAdd) Define() boardflow.Definition {
	return boardflow.Definition{
		Name:         "integer_add",
		FriendlyName: "Add",
		Description:  "Adds two integers",
		Category:     "math",
		Pins: []boardflow.Pin{
			boardflow.ExecPin("exec_in", boardflow.Input),
			boardflow.InputPin("a", boardflow.TypeInteger).WithDefault(int64(0)),
			boardflow.InputPin("b", boardflow.TypeInteger).WithDefault(int64(0)),
			boardflow.ExecPin("exec_out", boardflow.Output),
			boardflow.OutputPin("sum", boardflow.TypeInteger),
		},
	}
}

// Run writes a + b to the sum pin.
func (IntegerAdd) Run(ctx *boardflow.ExecutionContext) {
	a, err := ctx.InputInt("a")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	b, err := ctx.InputInt("b")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	if err := ctx.SetOutput("sum", a+b); err != nil {
		ctx.Fail(err.Error())
		return
	}
	ctx.Success()
}

// IntegerCompare compares two integers with a configurable operator.
// Pair it with a branch node to build conditional and looping flows.
type IntegerCompare struct{}

// Define returns the integer_compare node definition.
func (IntegerCompare) Define() boardflow.Definition {
	return boardflow.Definition{
		Name:         "integer_compare",
		FriendlyName: "Compare",
		Description:  "Compares two integers",
		Category:     "math",
		Pins: []boardflow.Pin{
			boardflow.ExecPin("exec_in", boardflow.Input),
			boardflow.InputPin("a", boardflow.TypeInteger).WithDefault(int64(0)),
			boardflow.InputPin("b", boardflow.TypeInteger).WithDefault(int64(0)),
			boardflow.InputPin("op", boardflow.TypeString).
				WithDefault("eq").
				WithLabel("Operator", "One of eq, ne, lt, le, gt, ge"),
			boardflow.ExecPin("exec_out", boardflow.Output),
			boardflow.OutputPin("result", boardflow.TypeBool),
		},
	}
}

// Run evaluates a <op> b and writes the boolean result.
func (IntegerCompare) Run(ctx *boardflow.ExecutionContext) {
	a, err := ctx.InputInt("a")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	b, err := ctx.InputInt("b")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	op, err := ctx.InputString("op")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}

	var result bool
	switch op {
	case "eq":
		result = a == b
	case "ne":
		result = a != b
	case "lt":
		result = a < b
	case "le":
		result = a <= b
	case "gt":
		result = a > b
	case "ge":
		result = a >= b
	default:
		ctx.Fail(fmt.Sprintf("unknown comparison operator %q", op))
		return
	}

	if err := ctx.SetOutput("result", result); err != nil {
		ctx.Fail(err.Error())
		return
	}
	ctx.Success()
}
