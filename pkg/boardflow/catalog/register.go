package catalog

import "github.com/boardflow/boardflow/pkg/boardflow"

// RegisterAll registers every catalog node with the registry.
// Stops at the first registration error.
func RegisterAll(reg *boardflow.NodeRegistry) error {
	nodes := []boardflow.Node{
		Branch{},
		HTTPRequest{},
		LogMessage{},
		StringConcat{},
		IntegerAdd{},
		IntegerCompare{},
	}
	for _, n := range nodes {
		if _, err := reg.Register(n); err != nil {
			return err
		}
	}
	return nil
}
