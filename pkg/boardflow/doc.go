/*
Package boardflow executes node-based flow boards.

# Overview

boardflow is the execution core of a visual flow authoring tool: nodes
are small typed modules, boards wire node instances together with edges,
and a scheduler walks the execution edges at run time. Nodes declare
everything up front in a Definition: their pins (typed inputs and
outputs), and the host capabilities they need. The host enforces those
declarations with a capability gate on every privileged call.

The library provides:
  - A node contract with typed pins and declared permissions
  - Compile-time board validation (endpoints, directions, pin types)
  - A run scheduler driven by exec-pin edges, loops included
  - A capability gate consulted freshly on every host call
  - OpenTelemetry metrics and tracing, slog logging

# Basic Usage

Implement a node, register it, wire a board, compile and run:

	type Greet struct{}

	func (Greet) Define() boardflow.Definition {
	    return boardflow.Definition{
	        Name: "greet",
	        Pins: []boardflow.Pin{
	            boardflow.ExecPin("exec_in", boardflow.Input),
	            boardflow.ExecPin("exec_out", boardflow.Output),
	            boardflow.InputPin("name", boardflow.TypeString),
	            boardflow.OutputPin("greeting", boardflow.TypeString),
	        },
	    }
	}

	func (Greet) Run(ctx *boardflow.ExecutionContext) {
	    name, err := ctx.InputString("name")
	    if err != nil {
	        ctx.Fail(err.Error())
	        return
	    }
	    ctx.SetOutput("greeting", "hello "+name)
	    ctx.Success()
	}

	func main() {
	    reg := boardflow.NewNodeRegistry()
	    reg.MustRegister(Greet{})

	    board := boardflow.Board{
	        Name: "hello",
	        Nodes: []boardflow.Instance{
	            {ID: "greet_1", Node: "greet", Overrides: map[string]any{"name": "world"}},
	        },
	    }

	    compiled, err := board.Compile(reg)
	    if err != nil {
	        log.Fatal(err)
	    }

	    report, err := compiled.Run(context.Background())
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(report.Outcome) // "success"
	}

# Execution Semantics

A run starts from the board's entry instances (explicit, or computed as
the exec-capable instances with no incoming exec edge) and activates one
instance at a time. A successful activation propagates its outputs along
data edges and fires the exec outputs the node activated, or all of them
except a declared error pin when the node activated none. A failed
activation propagates nothing and fires only the error pin.

Exec cycles are legal and drive loops. Termination comes from the
activation budget (default 1000, WithMaxActivations) and the optional
time budget (WithTimeBudget); exceeding either aborts the run with
ErrBudgetExceeded.

# Permissions

A node that calls the host first passes the capability gate. The gate
checks the node's declared permission list on every call, never caching
a prior decision:

	func (FetchNode) Define() boardflow.Definition {
	    return boardflow.Definition{
	        Name:        "http_request",
	        Permissions: []string{boardflow.CapabilityHTTP},
	        // ...
	    }
	}

A node without the permission gets ErrPermissionDenied back and the
underlying request is never made. Denial is an outcome for the node to
handle, not a host fault.
*/
package boardflow
