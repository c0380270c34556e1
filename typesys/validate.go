package typesys

import (
	"github.com/cottand/grace/internal/log"
	"github.com/cottand/grace/util"
)

var validateLogger = log.DefaultLogger.With("section", "validate")

// The validity propositions below are pure predicates: no repair, no
// diagnostics. A caller wanting to localise a failure re-runs the individual
// propositions.

// MinimalSpecification checks that s does not widen beyond what inheritance
// implies: it must be a (gradual) subtype-spec of every direct parent's
// resolved specification.
func MinimalSpecification(env *Environment, c ClassName, s Specification) bool {
	for _, parent := range ParentSpecifications(env, c) {
		if !IsGradualSubtypeSpec(env, s, parent) {
			return false
		}
	}
	return true
}

// IncludesNode checks that every member c declares appears unchanged in s.
func IncludesNode(env *Environment, c ClassName, s Specification) bool {
	declared, ok := env.Declared(c.Name)
	if !ok {
		return false
	}
	for _, sig := range declared.Signatures() {
		found, ok := s.Get(sig.Var)
		if !ok || !TypeEqual(found.Type, sig.Type) {
			return false
		}
	}
	return true
}

// ExistsAllSignatures checks completeness: the member names of s are exactly
// the class's own names plus the inherited ones, with no extras and no
// omissions beyond the documented conflict-drop policy.
func ExistsAllSignatures(env *Environment, c ClassName, s Specification) bool {
	declared, _ := env.Declared(c.Name)
	expected := declared.Names()
	for varName := range Inherited(env, c) {
		expected.Add(varName)
	}
	given := s.Names()
	if given.Len() != expected.Len() {
		return false
	}
	for name := range given.All() {
		if !expected.Contains(name) {
			return false
		}
	}
	return true
}

// NoOverloading checks that no two signatures of s share a member name.
func NoOverloading(s Specification) bool {
	return s.Names().Len() == s.Len()
}

// Acyclic checks that the declared edges form a DAG, by DFS with a
// recursion-stack set: reaching a node already on the stack is a back edge.
func Acyclic(env *Environment) bool {
	visited := util.NewEmptySet[ClassName]()
	stack := util.NewEmptySet[ClassName]()

	adjacency := make(map[ClassName][]ClassName, len(env.nodes))
	for _, edge := range env.edges {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
	}

	var dfs func(node ClassName) bool
	dfs = func(node ClassName) bool {
		visited.Add(node)
		stack.Add(node)
		for _, neighbour := range adjacency[node] {
			if !visited.Contains(neighbour) {
				if !dfs(neighbour) {
					return false
				}
			} else if stack.Contains(neighbour) {
				return false
			}
		}
		stack.Remove(node)
		return true
	}

	for _, node := range env.nodes {
		if !visited.Contains(node) {
			if !dfs(node) {
				return false
			}
		}
	}
	return true
}

// IsValidType checks that every class a type mentions is a node of the
// hierarchy. Top, Bottom and Unknown are always valid.
func IsValidType(env *Environment, t Type) bool {
	switch t := t.(type) {
	case ClassName:
		return env.HasNode(t)
	case FuncType:
		for _, d := range t.Domain {
			if !IsValidType(env, d) {
				return false
			}
		}
		return IsValidType(env, t.Codomain)
	case Top, Bottom, Unknown:
		return true
	default:
		return false
	}
}

// IsValidSignatures checks that every node has a declared specification and
// that every type those specifications mention resolves.
func IsValidSignatures(env *Environment) bool {
	for _, node := range env.nodes {
		declared, ok := env.Declared(node.Name)
		if !ok {
			return false
		}
		for _, sig := range declared.Signatures() {
			if !IsValidType(env, sig.Type) {
				return false
			}
		}
	}
	return true
}

// IsValidEdge checks that the edge is declared and both endpoints are nodes.
func IsValidEdge(env *Environment, t1, t2 ClassName) bool {
	if !env.HasNode(t1) || !env.HasNode(t2) {
		return false
	}
	return IsDirectSubtype(env, t1, t2)
}

// IsValidNode checks the per-node propositions against the node's resolved
// specification: minimality, inclusion, completeness and no-overloading.
func IsValidNode(env *Environment, c ClassName) bool {
	if !env.HasNode(c) {
		return false
	}
	s := GetSpecifications(env, c)
	return MinimalSpecification(env, c, s) &&
		IncludesNode(env, c, s) &&
		ExistsAllSignatures(env, c, s) &&
		NoOverloading(s)
}

// IsValidGraph certifies the whole Environment: declared specifications
// resolve, every node passes its propositions, every edge is well formed,
// and the hierarchy is acyclic.
func IsValidGraph(env *Environment) bool {
	if !IsValidSignatures(env) {
		return false
	}
	for _, node := range env.nodes {
		if !IsValidNode(env, node) {
			validateLogger.Debug("node failed validation", "class", node.Name)
			return false
		}
	}
	for _, edge := range env.edges {
		if !IsValidEdge(env, edge.Source, edge.Target) {
			return false
		}
	}
	return Acyclic(env)
}
