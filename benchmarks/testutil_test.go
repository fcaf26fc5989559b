// Package benchmarks measures board compilation and execution.
package benchmarks

import (
	"fmt"

	"github.com/boardflow/boardflow/pkg/boardflow"
)

// benchRegistry registers the nodes the benchmark boards use.
func benchRegistry() *boardflow.NodeRegistry {
	reg := boardflow.NewNodeRegistry()

	step := boardflow.Definition{Name: "step", Pins: []boardflow.Pin{
		boardflow.ExecPin("exec_in", boardflow.Input),
		boardflow.ExecPin("exec_out", boardflow.Output),
		boardflow.InputPin("n", boardflow.TypeInteger).WithDefault(int64(0)),
		boardflow.OutputPin("out", boardflow.TypeInteger),
	}}
	reg.MustRegister(boardflow.NodeFunc(step, func(ctx *boardflow.ExecutionContext) {
		n, err := ctx.InputInt("n")
		if err != nil {
			ctx.Fail(err.Error())
			return
		}
		if err := ctx.SetOutput("out", n+1); err != nil {
			ctx.Fail(err.Error())
			return
		}
		ctx.Success()
	}))

	gate := boardflow.Definition{Name: "gate", Pins: []boardflow.Pin{
		boardflow.ExecPin("exec_in", boardflow.Input),
		boardflow.ExecPin("exec_loop", boardflow.Output),
		boardflow.ExecPin("exec_done", boardflow.Output),
		boardflow.InputPin("n", boardflow.TypeInteger).WithDefault(int64(0)),
		boardflow.InputPin("limit", boardflow.TypeInteger).WithDefault(int64(0)),
	}}
	reg.MustRegister(boardflow.NodeFunc(gate, func(ctx *boardflow.ExecutionContext) {
		n, _ := ctx.InputInt("n")
		limit, _ := ctx.InputInt("limit")
		if n < limit {
			_ = ctx.ActivateExec("exec_loop")
		} else {
			_ = ctx.ActivateExec("exec_done")
		}
		ctx.Success()
	}))

	return reg
}

// buildLinearBoard chains n step instances with exec and data edges.
func buildLinearBoard(n int) boardflow.Board {
	board := boardflow.Board{Name: fmt.Sprintf("linear_%d", n)}
	for i := 0; i < n; i++ {
		board.Nodes = append(board.Nodes, boardflow.Instance{
			ID:   fmt.Sprintf("s%d", i),
			Node: "step",
		})
		if i > 0 {
			prev := fmt.Sprintf("s%d", i-1)
			cur := fmt.Sprintf("s%d", i)
			board.Edges = append(board.Edges,
				boardflow.Edge{
					From: boardflow.Endpoint{Instance: prev, Pin: "exec_out"},
					To:   boardflow.Endpoint{Instance: cur, Pin: "exec_in"},
				},
				boardflow.Edge{
					From: boardflow.Endpoint{Instance: prev, Pin: "out"},
					To:   boardflow.Endpoint{Instance: cur, Pin: "n"},
				},
			)
		}
	}
	return board
}

// buildLoopBoard counts to limit through an exec cycle.
func buildLoopBoard(limit int64) boardflow.Board {
	return boardflow.Board{
		Name:    "loop",
		Entries: []string{"add"},
		Nodes: []boardflow.Instance{
			{ID: "add", Node: "step"},
			{ID: "check", Node: "gate", Overrides: map[string]any{"limit": limit}},
		},
		Edges: []boardflow.Edge{
			{
				From: boardflow.Endpoint{Instance: "add", Pin: "out"},
				To:   boardflow.Endpoint{Instance: "add", Pin: "n"},
			},
			{
				From: boardflow.Endpoint{Instance: "add", Pin: "out"},
				To:   boardflow.Endpoint{Instance: "check", Pin: "n"},
			},
			{
				From: boardflow.Endpoint{Instance: "add", Pin: "exec_out"},
				To:   boardflow.Endpoint{Instance: "check", Pin: "exec_in"},
			},
			{
				From: boardflow.Endpoint{Instance: "check", Pin: "exec_loop"},
				To:   boardflow.Endpoint{Instance: "add", Pin: "exec_in"},
			},
		},
	}
}

// mustCompile compiles or panics; benchmark setup only.
func mustCompile(board boardflow.Board, reg *boardflow.NodeRegistry) *boardflow.CompiledBoard {
	compiled, err := board.Compile(reg)
	if err != nil {
		panic(err)
	}
	return compiled
}
