package typesys

import (
	"sync"

	"github.com/benbjohnson/immutable"
)

// Edge declares that Source is a direct subtype of Target.
type Edge struct {
	Source ClassName
	Target ClassName
}

// Environment is the immutable class hierarchy a caller hands to every
// operation in this package: the class nodes, the declared direct-subtype
// edges, and sigma, each class's own declared members.
//
// An Environment is never mutated after construction and may be shared
// freely between goroutines. Validity (acyclicity, completeness, ...) is not
// a construction invariant: callers may build an invalid Environment and
// must gate on IsValidGraph before trusting evidence results.
type Environment struct {
	nodes   []ClassName
	nodeSet map[string]struct{}
	edges   []Edge
	sigma   *immutable.Map[string, Specification]

	// read-through caches, see spec on memoisation: lower/upper sets and
	// resolved specifications are pure in the Environment, so they are
	// computed once. Guarded so concurrent callers stay safe.
	mu        sync.Mutex
	lowerSets map[uint64][]ClassName
	upperSets map[uint64][]ClassName
	resolved  map[string]Specification
}

// NewEnvironment builds an Environment from the hierarchy's nodes, declared
// edges, and per-class declared members. The inputs are copied; the caller
// keeps ownership of its slices and map.
func NewEnvironment(nodes []ClassName, edges []Edge, sigma map[string]Specification) *Environment {
	nodeSet := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		nodeSet[n.Name] = struct{}{}
	}
	sigmaMap := immutable.NewMap[string, Specification](nil)
	for name, spec := range sigma {
		sigmaMap = sigmaMap.Set(name, spec)
	}
	return &Environment{
		nodes:     append([]ClassName(nil), nodes...),
		nodeSet:   nodeSet,
		edges:     append([]Edge(nil), edges...),
		sigma:     sigmaMap,
		lowerSets: make(map[uint64][]ClassName),
		upperSets: make(map[uint64][]ClassName),
		resolved:  make(map[string]Specification),
	}
}

// Nodes returns the class nodes. Callers must not modify the slice.
func (env *Environment) Nodes() []ClassName {
	return env.nodes
}

// Edges returns the declared edges. Callers must not modify the slice.
func (env *Environment) Edges() []Edge {
	return env.edges
}

// HasNode reports whether c is a node of the hierarchy.
func (env *Environment) HasNode(c ClassName) bool {
	_, ok := env.nodeSet[c.Name]
	return ok
}

// Declared returns the class's own declared specification, without any
// inherited members. GetSpecifications resolves the full one.
func (env *Environment) Declared(name string) (Specification, bool) {
	return env.sigma.Get(name)
}

func (env *Environment) memoLowerSet(t Type, compute func() []ClassName) []ClassName {
	env.mu.Lock()
	cached, ok := env.lowerSets[t.Hash()]
	env.mu.Unlock()
	if ok {
		return cached
	}
	result := compute()
	env.mu.Lock()
	env.lowerSets[t.Hash()] = result
	env.mu.Unlock()
	return result
}

func (env *Environment) memoUpperSet(t Type, compute func() []ClassName) []ClassName {
	env.mu.Lock()
	cached, ok := env.upperSets[t.Hash()]
	env.mu.Unlock()
	if ok {
		return cached
	}
	result := compute()
	env.mu.Lock()
	env.upperSets[t.Hash()] = result
	env.mu.Unlock()
	return result
}

func (env *Environment) memoResolved(name string, compute func() Specification) Specification {
	env.mu.Lock()
	cached, ok := env.resolved[name]
	env.mu.Unlock()
	if ok {
		return cached
	}
	result := compute()
	env.mu.Lock()
	env.resolved[name] = result
	env.mu.Unlock()
	return result
}
