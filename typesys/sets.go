package typesys

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/cottand/grace/internal/log"
)

var latticeLogger = log.DefaultLogger.With("section", "lattice")

// LowerSet returns every class node that is a static subtype of t,
// reflexively. Results are memoised in the Environment.
func LowerSet(env *Environment, t Type) []ClassName {
	return env.memoLowerSet(t, func() []ClassName {
		var lower []ClassName
		for _, n := range env.nodes {
			if IsSubtype(env, n, t) {
				lower = append(lower, n)
			}
		}
		return lower
	})
}

// UpperSet returns every class node that is a static supertype of t,
// reflexively. Results are memoised in the Environment.
func UpperSet(env *Environment, t Type) []ClassName {
	return env.memoUpperSet(t, func() []ClassName {
		var upper []ClassName
		for _, n := range env.nodes {
			if IsSubtype(env, t, n) {
				upper = append(upper, n)
			}
		}
		return upper
	})
}

// Meet returns the greatest lower bounds of t1 and t2: the maximal elements
// of the intersection of their lower sets. Under multiple inheritance the
// result can hold several incomparable candidates, so it is a set.
func Meet(env *Environment, t1, t2 Type) *set.Set[ClassName] {
	lower1 := set.From(LowerSet(env, t1))
	common := set.New[ClassName](lower1.Size())
	for _, n := range LowerSet(env, t2) {
		if lower1.Contains(n) {
			common.Insert(n)
		}
	}

	meetSet := set.New[ClassName](common.Size())
	for candidate := range common.Items() {
		if !dominatedBelow(env, candidate, common) {
			meetSet.Insert(candidate)
		}
	}
	if meetSet.Size() > 1 {
		latticeLogger.Debug("ambiguous meet", "t1", t1.String(), "t2", t2.String(), "candidates", meetSet.Size())
	}
	return meetSet
}

// dominatedBelow reports whether candidate sits strictly below another
// element of common, which disqualifies it from being maximal.
func dominatedBelow(env *Environment, candidate ClassName, common *set.Set[ClassName]) bool {
	for other := range common.Items() {
		if other != candidate && IsSubtype(env, candidate, other) {
			return true
		}
	}
	return false
}

// MeetUnique returns the meet only when it is a single element.
func MeetUnique(env *Environment, t1, t2 Type) (ClassName, bool) {
	meetSet := Meet(env, t1, t2)
	if meetSet.Size() != 1 {
		return ClassName{}, false
	}
	return meetSet.Slice()[0], true
}

// Join returns the least upper bounds of t1 and t2: the minimal elements of
// the intersection of their upper sets.
func Join(env *Environment, t1, t2 Type) *set.Set[ClassName] {
	upper1 := set.From(UpperSet(env, t1))
	common := set.New[ClassName](upper1.Size())
	for _, n := range UpperSet(env, t2) {
		if upper1.Contains(n) {
			common.Insert(n)
		}
	}

	joinSet := set.New[ClassName](common.Size())
	for candidate := range common.Items() {
		if !dominatedAbove(env, candidate, common) {
			joinSet.Insert(candidate)
		}
	}
	if joinSet.Size() > 1 {
		latticeLogger.Debug("ambiguous join", "t1", t1.String(), "t2", t2.String(), "candidates", joinSet.Size())
	}
	return joinSet
}

func dominatedAbove(env *Environment, candidate ClassName, common *set.Set[ClassName]) bool {
	for other := range common.Items() {
		if other != candidate && IsSubtype(env, other, candidate) {
			return true
		}
	}
	return false
}

// JoinUnique returns the join only when it is a single element.
func JoinUnique(env *Environment, t1, t2 Type) (ClassName, bool) {
	joinSet := Join(env, t1, t2)
	if joinSet.Size() != 1 {
		return ClassName{}, false
	}
	return joinSet.Slice()[0], true
}
