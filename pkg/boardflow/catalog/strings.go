package catalog

import "github.com/boardflow/boardflow/pkg/boardflow"

// StringConcat joins two strings with an optional separator.
type StringConcat struct{}

// Define returns the string_concat node definition.
func (StringConcat) Define() boardflow.Definition {
	return boardflow.Definition{
		Name:         "string_concat",
		FriendlyName: "Concat",
		Description:  "Joins two strings",
		Category:     "string",
		Pins: []boardflow.Pin{
			boardflow.ExecPin("exec_in", boardflow.Input),
			boardflow.InputPin("a", boardflow.TypeString).WithDefault(""),
			boardflow.InputPin("b", boardflow.TypeString).WithDefault(""),
			boardflow.InputPin("separator", boardflow.TypeString).WithDefault(""),
			boardflow.ExecPin("exec_out", boardflow.Output),
			boardflow.OutputPin("result", boardflow.TypeString),
		},
	}
}

// Run writes a + separator + b to the result pin.
func (StringConcat) Run(ctx *boardflow.ExecutionContext) {
	a, err := ctx.InputString("a")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	b, err := ctx.InputString("b")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	sep, err := ctx.InputString("separator")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	if err := ctx.SetOutput("result", a+sep+b); err != nil {
		ctx.Fail(err.Error())
		return
	}
	ctx.Success()
}
