package catalog

import "github.com/boardflow/boardflow/pkg/boardflow"

// Branch routes execution to one of two exec outputs based on a boolean
// condition.
type Branch struct{}

// Define returns the branch node definition.
func (Branch) Define() boardflow.Definition {
	return boardflow.Definition{
		Name:         "branch",
		FriendlyName: "Branch",
		Description:  "Routes execution to true or false based on a condition",
		Category:     "control",
		Pins: []boardflow.Pin{
			boardflow.ExecPin("exec_in", boardflow.Input),
			boardflow.InputPin("condition", boardflow.TypeBool).
				WithLabel("Condition", "Value that selects the branch"),
			boardflow.ExecPin("exec_true", boardflow.Output).
				WithLabel("True", "Fired when the condition is true"),
			boardflow.ExecPin("exec_false", boardflow.Output).
				WithLabel("False", "Fired when the condition is false"),
		},
	}
}

// Run evaluates the condition and activates exactly one branch.
func (Branch) Run(ctx *boardflow.ExecutionContext) {
	cond, err := ctx.InputBool("condition")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	if cond {
		_ = ctx.ActivateExec("exec_true")
	} else {
		_ = ctx.ActivateExec("exec_false")
	}
	ctx.Success()
}
