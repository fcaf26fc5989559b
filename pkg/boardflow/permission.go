package boardflow

import "sort"

// Capability names recognized by this host. The set is host-defined and
// versioned independently of node code: adding a capability never breaks
// nodes that do not request it.
const (
	// CapabilityHTTP gates outbound HTTP requests.
	CapabilityHTTP = "http"
)

// PermissionSet is an immutable-by-convention set of capability names
// declared by a node definition. It is copied into every ExecutionContext
// so a node's grants can never leak into a sibling activation.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from capability names.
// Empty names are ignored; duplicates collapse.
func NewPermissionSet(names ...string) PermissionSet {
	s := make(PermissionSet, len(names))
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Has reports whether the capability is a member of the set.
func (s PermissionSet) Has(capability string) bool {
	_, ok := s[capability]
	return ok
}

// Names returns the capability names in sorted order.
func (s PermissionSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Authorize is the capability gate: true iff capability is a member of
// perms. It is a pure function of its two inputs - no global state, no
// side effects, no caching across calls.
//
// Every host-exposed sensitive function calls Authorize with the current
// activation's permission set before performing any observable effect.
// On a false return the host function performs nothing and surfaces
// ErrPermissionDenied, which the node handles like any other value.
func Authorize(perms PermissionSet, capability string) bool {
	return perms.Has(capability)
}
