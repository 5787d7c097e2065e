package ipgraph

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a function that creates a new node instance.
// Factories are registered via RegisterNodeType and called by NewNode.
type Factory func() Node

// Registry state - protected by mutex for thread-safe access.
var (
	nodeRegistryMu sync.RWMutex
	nodeFactories  = make(map[string]Factory)
)

// RegisterNodeType registers a node factory under a type name. The builtin
// node kinds register themselves during package initialization; embedders
// register custom kinds the same way:
//
//	func init() {
//	    ipgraph.RegisterNodeType("Grade", func() ipgraph.Node {
//	        return NewGradeNode()
//	    })
//	}
//
// RegisterNodeType panics if factory is nil or the name is already
// registered, so duplicate registrations are caught during program
// initialization rather than silently overwriting node kinds.
func RegisterNodeType(name string, factory Factory) {
	nodeRegistryMu.Lock()
	defer nodeRegistryMu.Unlock()

	if factory == nil {
		panic("ipgraph: RegisterNodeType factory is nil")
	}
	if _, dup := nodeFactories[name]; dup {
		panic("ipgraph: RegisterNodeType called twice for " + name)
	}
	nodeFactories[name] = factory
}

// NewNode creates a node instance by its registered type name.
func NewNode(name string) (Node, error) {
	nodeRegistryMu.RLock()
	factory, ok := nodeFactories[name]
	nodeRegistryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("ipgraph: unknown node type %q (registered: %v)",
			name, NodeTypes())
	}
	return factory(), nil
}

// NodeTypes returns the sorted list of registered node type names.
func NodeTypes() []string {
	nodeRegistryMu.RLock()
	defer nodeRegistryMu.RUnlock()

	names := make([]string, 0, len(nodeFactories))
	for name := range nodeFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
