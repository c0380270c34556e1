package typesys

import (
	"github.com/cottand/grace/util"
)

// visitedPairs holds the pairs on the current recursion stack, guarding the
// subtype checks against malformed, cyclic hierarchies: re-entering a pair
// already on the stack means a cycle, and that branch answers false. Pairs
// are unmarked on exit, so independent branches of the same query (a domain
// and a codomain both needing the same class pair) each get a full answer.
// The set is local to one call chain and must never be shared between
// concurrent calls.
type visitedPairs = map[util.Pair[uint64, uint64]]bool

func pushPair(visited visitedPairs, t1, t2 Type) (util.Pair[uint64, uint64], bool) {
	key := util.NewPair(t1.Hash(), t2.Hash())
	if visited[key] {
		return key, false
	}
	visited[key] = true
	return key, true
}

// IsDirectSubtype reports whether an Edge(t1, t2) is declared.
func IsDirectSubtype(env *Environment, t1, t2 ClassName) bool {
	for _, edge := range env.edges {
		if edge.Source == t1 && edge.Target == t2 {
			return true
		}
	}
	return false
}

// IsSubtype is the static subtyping relation: the reflexive-transitive
// closure of the declared edges, with Top above and Bottom below everything,
// and function types related contravariantly on domains and covariantly on
// the codomain. Unknown is unrelated to everything here.
func IsSubtype(env *Environment, t1, t2 Type) bool {
	return isSubtype(env, t1, t2, make(visitedPairs))
}

func isSubtype(env *Environment, t1, t2 Type, visited visitedPairs) bool {
	key, ok := pushPair(visited, t1, t2)
	if !ok {
		return false
	}
	defer delete(visited, key)
	if TypeEqual(t1, t2) {
		return true
	}
	if _, isTop := t2.(Top); isTop {
		return true
	}
	if _, isBottom := t1.(Bottom); isBottom {
		return true
	}
	f1, ok1 := t1.(FuncType)
	f2, ok2 := t2.(FuncType)
	if ok1 && ok2 {
		return isSubtypeFunc(env, f1, f2, visited, isSubtype)
	}
	c1, ok1 := t1.(ClassName)
	_, ok2 = t2.(ClassName)
	if ok1 && ok2 {
		for _, edge := range env.edges {
			if edge.Source == c1 && isSubtype(env, edge.Target, t2, visited) {
				return true
			}
		}
	}
	return false
}

// relation is one of isSubtype or isGradualSubtype: the function rule is the
// same for both, recursing through whichever relation is being decided.
type relation func(env *Environment, t1, t2 Type, visited visitedPairs) bool

func isSubtypeFunc(env *Environment, f1, f2 FuncType, visited visitedPairs, rel relation) bool {
	if len(f1.Domain) != len(f2.Domain) {
		return false
	}
	for i := range f1.Domain {
		// domains flip
		if !rel(env, f2.Domain[i], f1.Domain[i], visited) {
			return false
		}
	}
	return rel(env, f1.Codomain, f2.Codomain, visited)
}

// IsGradualSubtype extends IsSubtype with the consistency rule: Unknown is
// both a subtype and a supertype of everything, including through function
// components.
func IsGradualSubtype(env *Environment, t1, t2 Type) bool {
	return isGradualSubtype(env, t1, t2, make(visitedPairs))
}

func isGradualSubtype(env *Environment, t1, t2 Type, visited visitedPairs) bool {
	key, ok := pushPair(visited, t1, t2)
	if !ok {
		return false
	}
	defer delete(visited, key)
	if TypeEqual(t1, t2) {
		return true
	}
	if _, isTop := t2.(Top); isTop {
		return true
	}
	if _, isBottom := t1.(Bottom); isBottom {
		return true
	}
	if _, unknown := t2.(Unknown); unknown {
		return true
	}
	if _, unknown := t1.(Unknown); unknown {
		return true
	}
	f1, ok1 := t1.(FuncType)
	f2, ok2 := t2.(FuncType)
	if ok1 && ok2 {
		return isSubtypeFunc(env, f1, f2, visited, isGradualSubtype)
	}
	c1, ok1 := t1.(ClassName)
	c2, ok2 := t2.(ClassName)
	if ok1 && ok2 {
		// the static closure decides concrete class pairs; it tracks its
		// own stack so this pair does not block itself across relations
		return isSubtype(env, c1, c2, make(visitedPairs))
	}
	return false
}

// IsSubtypeSpec is width subtyping over specifications under the static
// relation: s <: sp iff every member of sp is present in s at a subtype.
// Extra members in s are permitted.
func IsSubtypeSpec(env *Environment, s, sp Specification) bool {
	return isSubtypeSpecBy(env, s, sp, IsSubtype)
}

// IsGradualSubtypeSpec is IsSubtypeSpec under the gradual relation.
func IsGradualSubtypeSpec(env *Environment, s, sp Specification) bool {
	return isSubtypeSpecBy(env, s, sp, IsGradualSubtype)
}

func isSubtypeSpecBy(env *Environment, s, sp Specification, rel func(*Environment, Type, Type) bool) bool {
	for _, sigP := range sp.Signatures() {
		sig, ok := s.Get(sigP.Var)
		if !ok {
			return false
		}
		if !rel(env, sig.Type, sigP.Type) {
			return false
		}
	}
	return true
}
