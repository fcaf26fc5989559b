package boardflow

// boundInstance is a board instance resolved against the registry:
// the shared definition, the node module, and canonicalized overrides.
type boundInstance struct {
	id        string
	def       *Definition
	node      Node
	overrides map[string]any
}

// CompiledBoard is an immutable, executable board produced by Compile.
//
// It is safe for concurrent use: many runs, of this and other boards,
// may execute in parallel against the same CompiledBoard. All mutable
// run state lives inside Run.
type CompiledBoard struct {
	name      string
	terminal  string
	instances map[string]*boundInstance
	order     []string
	entries   []string

	execEdges []Edge
	execOut   map[string]map[string][]int // instance -> exec-out pin -> edge indices
	execIn    map[string][]int            // instance -> incoming exec edge indices
	dataOut   map[string]map[string][]Endpoint

	// reachable holds instances reachable from the entries over exec
	// edges; reachableExecIn narrows execIn to edges whose source is
	// reachable, which is the dependency set joins wait on.
	reachable       map[string]bool
	reachableExecIn map[string][]int
}

// Name returns the board name.
func (cb *CompiledBoard) Name() string {
	return cb.name
}

// EntryPoints returns the instances a run starts from.
func (cb *CompiledBoard) EntryPoints() []string {
	out := make([]string, len(cb.entries))
	copy(out, cb.entries)
	return out
}

// Terminal returns the designated terminal instance id, or "".
func (cb *CompiledBoard) Terminal() string {
	return cb.terminal
}

// InstanceIDs returns all instance ids in declaration order.
func (cb *CompiledBoard) InstanceIDs() []string {
	out := make([]string, len(cb.order))
	copy(out, cb.order)
	return out
}

// HasInstance reports whether the board contains the instance.
func (cb *CompiledBoard) HasInstance(id string) bool {
	_, ok := cb.instances[id]
	return ok
}

// Definition returns the shared definition backing an instance.
func (cb *CompiledBoard) Definition(id string) (*Definition, bool) {
	bi, ok := cb.instances[id]
	if !ok {
		return nil, false
	}
	return bi.def, true
}

// Reachable reports whether the instance is reachable from the entry
// points over exec edges. Unreachable instances never activate.
func (cb *CompiledBoard) Reachable(id string) bool {
	return cb.reachable[id]
}

// computeReachability walks exec edges from the entries once, at compile
// time. The result feeds join bookkeeping: a join waits only on exec-in
// edges whose source can actually fire in some run.
func (cb *CompiledBoard) computeReachability() {
	cb.reachable = make(map[string]bool, len(cb.instances))

	queue := append([]string(nil), cb.entries...)
	for _, id := range cb.entries {
		cb.reachable[id] = true
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edgeIdxs := range cb.execOut[current] {
			for _, idx := range edgeIdxs {
				target := cb.execEdges[idx].To.Instance
				if !cb.reachable[target] {
					cb.reachable[target] = true
					queue = append(queue, target)
				}
			}
		}
	}

	cb.reachableExecIn = make(map[string][]int, len(cb.execIn))
	for id, idxs := range cb.execIn {
		for _, idx := range idxs {
			if cb.reachable[cb.execEdges[idx].From.Instance] {
				cb.reachableExecIn[id] = append(cb.reachableExecIn[id], idx)
			}
		}
	}
}
