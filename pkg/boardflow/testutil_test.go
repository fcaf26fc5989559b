package boardflow

// Shared helpers for boardflow tests.

// execDef returns a definition with exec_in/exec_out plus any extra pins.
func execDef(name string, extra ...Pin) Definition {
	pins := []Pin{
		ExecPin("exec_in", Input),
		ExecPin("exec_out", Output),
	}
	pins = append(pins, extra...)
	return Definition{Name: name, Pins: pins}
}

// recorderNode succeeds and appends its instance id to log on each activation.
func recorderNode(name string, log *[]string) Node {
	return NodeFunc(execDef(name), func(ctx *ExecutionContext) {
		*log = append(*log, ctx.InstanceID())
		ctx.Success()
	})
}

// link builds an edge between two pins.
func link(fromInst, fromPin, toInst, toPin string) Edge {
	return Edge{
		From: Endpoint{Instance: fromInst, Pin: fromPin},
		To:   Endpoint{Instance: toInst, Pin: toPin},
	}
}
