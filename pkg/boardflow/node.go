package boardflow

import "fmt"

// Node is the contract every loadable node module implements.
//
// The host treats all nodes identically through this two-method interface:
// Define is called once at registration to obtain the immutable definition,
// Run is called once per activation with a fresh ExecutionContext.
//
// Run reports its outcome through the context (Success or Fail). A node
// that returns without reporting is treated as an implicit failure.
type Node interface {
	// Define returns the node's definition. Called once at registration;
	// the returned definition is validated and then never mutated.
	Define() Definition

	// Run executes one activation. Inputs, outputs, gated host calls and
	// the result all flow through ctx, which does not outlive the call.
	Run(ctx *ExecutionContext)
}

// Definition is the immutable descriptor of a node: its identity, typed
// pins and declared permission set.
//
// A Definition is created once when a node module is registered and shared
// by reference across every board and run that uses the node. No component
// mutates it after registration, which is what lets concurrent runs share
// it without locking.
type Definition struct {
	// Name uniquely identifies the node within the registry.
	Name string `yaml:"name" json:"name"`

	// FriendlyName is the display name shown by editors.
	FriendlyName string `yaml:"friendly_name,omitempty" json:"friendly_name,omitempty"`

	// Description explains what the node does.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Category groups nodes in editor palettes ("control", "network", ...).
	Category string `yaml:"category,omitempty" json:"category,omitempty"`

	// Pins is the ordered pin list.
	Pins []Pin `yaml:"pins" json:"pins"`

	// Permissions names the host capabilities the node may use.
	// Fixed at definition time; the sole input to every authorization
	// decision for this node. Cannot be escalated at run time.
	Permissions []string `yaml:"permissions,omitempty" json:"permissions,omitempty"`

	// ErrorPin optionally names an exec output fired when the node fails,
	// giving boards a dedicated error path. When empty, a failure halts
	// the branch: no exec-out edge fires.
	ErrorPin string `yaml:"error_pin,omitempty" json:"error_pin,omitempty"`

	// JoinExec marks a node that waits until every reachable exec-in edge
	// has fired before activating (join semantics for parallel or
	// branched flows). Ordinary nodes activate on each exec-in firing.
	JoinExec bool `yaml:"join_exec,omitempty" json:"join_exec,omitempty"`
}

// Pin returns the pin with the given id.
func (d *Definition) Pin(id string) (Pin, bool) {
	for _, p := range d.Pins {
		if p.ID == id {
			return p, true
		}
	}
	return Pin{}, false
}

// Inputs returns the data input pins in declaration order.
func (d *Definition) Inputs() []Pin {
	return d.pins(Input, false)
}

// Outputs returns the data output pins in declaration order.
func (d *Definition) Outputs() []Pin {
	return d.pins(Output, false)
}

// ExecInputs returns the exec input pins in declaration order.
func (d *Definition) ExecInputs() []Pin {
	return d.pins(Input, true)
}

// ExecOutputs returns the exec output pins in declaration order.
func (d *Definition) ExecOutputs() []Pin {
	return d.pins(Output, true)
}

func (d *Definition) pins(dir Direction, exec bool) []Pin {
	var out []Pin
	for _, p := range d.Pins {
		if p.Direction == dir && p.IsExec() == exec {
			out = append(out, p)
		}
	}
	return out
}

// PermissionSet returns the node's declared permissions as a set.
// The returned set is a copy; callers may not grow a node's grants.
func (d *Definition) PermissionSet() PermissionSet {
	return NewPermissionSet(d.Permissions...)
}

// validate checks the definition's structural invariants.
// Violations are registration-time errors; the node is not added to the
// registry and no board can reference it.
func (d *Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("definition has empty name")
	}
	seen := make(map[string]bool, len(d.Pins))
	for _, p := range d.Pins {
		if err := p.validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate pin id %q", p.ID)
		}
		seen[p.ID] = true
	}
	for _, perm := range d.Permissions {
		if perm == "" {
			return fmt.Errorf("empty permission name")
		}
	}
	if d.ErrorPin != "" {
		p, ok := d.Pin(d.ErrorPin)
		if !ok {
			return fmt.Errorf("error pin %q is not declared", d.ErrorPin)
		}
		if !p.IsExec() || p.Direction != Output {
			return fmt.Errorf("error pin %q must be an exec output", d.ErrorPin)
		}
	}
	return nil
}

// Status is the outcome of one node activation.
type Status string

const (
	// StatusSuccess indicates the node completed and its outputs are valid.
	StatusSuccess Status = "success"

	// StatusFail indicates the node reported failure; its outputs are
	// discarded and only a declared error pin may fire.
	StatusFail Status = "fail"
)

// Result is the terminal outcome of a node activation.
type Result struct {
	// Status is success or fail.
	Status Status `yaml:"status" json:"status"`

	// Message optionally explains a failure.
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool {
	return r.Status == StatusFail
}

// NodeFunc adapts a plain function into a Node.
// The definition is captured once; Run delegates to fn.
//
// Example:
//
//	node := boardflow.NodeFunc(def, func(ctx *boardflow.ExecutionContext) {
//	    ctx.Success()
//	})
func NodeFunc(def Definition, fn func(ctx *ExecutionContext)) Node {
	return &funcNode{def: def, fn: fn}
}

type funcNode struct {
	def Definition
	fn  func(ctx *ExecutionContext)
}

func (n *funcNode) Define() Definition        { return n.def }
func (n *funcNode) Run(ctx *ExecutionContext) { n.fn(ctx) }
