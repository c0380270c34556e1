package evidence

import (
	"github.com/pkg/errors"

	"github.com/cottand/grace/typesys"
	"github.com/cottand/grace/util"
)

// meetBounds computes the greatest lower bounds of two interval bounds.
// Extremes absorb, Unknown is neutral, class pairs go through the static
// lattice (so the result may hold several incomparable candidates, or none),
// and function types recurse structurally with the dual operator on domains.
//
// A function arity mismatch is the one fatal condition: it means the
// Environment itself is ill-typed, not that the types are gradually
// incompatible, so it surfaces as an error rather than an empty set.
func meetBounds(env *typesys.Environment, t1, t2 typesys.Type) ([]typesys.Type, error) {
	if typesys.TypeEqual(t1, t2) {
		return []typesys.Type{t1}, nil
	}
	if isUnknown(t1) {
		return []typesys.Type{t2}, nil
	}
	if isUnknown(t2) {
		return []typesys.Type{t1}, nil
	}
	if isTop(t1) {
		return []typesys.Type{t2}, nil
	}
	if isTop(t2) {
		return []typesys.Type{t1}, nil
	}
	if isBottom(t1) || isBottom(t2) {
		return []typesys.Type{typesys.Bottom{}}, nil
	}
	c1, ok1 := t1.(typesys.ClassName)
	c2, ok2 := t2.(typesys.ClassName)
	if ok1 && ok2 {
		var bounds []typesys.Type
		for candidate := range typesys.Meet(env, c1, c2).Items() {
			bounds = append(bounds, candidate)
		}
		return bounds, nil
	}
	f1, ok1 := t1.(typesys.FuncType)
	f2, ok2 := t2.(typesys.FuncType)
	if ok1 && ok2 {
		return combineFuncBounds(env, f1, f2, joinBounds, meetBounds)
	}
	// a class against a function type shares no lower bound
	return nil, nil
}

// joinBounds is the dual: least upper bounds.
func joinBounds(env *typesys.Environment, t1, t2 typesys.Type) ([]typesys.Type, error) {
	if typesys.TypeEqual(t1, t2) {
		return []typesys.Type{t1}, nil
	}
	if isUnknown(t1) {
		return []typesys.Type{t2}, nil
	}
	if isUnknown(t2) {
		return []typesys.Type{t1}, nil
	}
	if isBottom(t1) {
		return []typesys.Type{t2}, nil
	}
	if isBottom(t2) {
		return []typesys.Type{t1}, nil
	}
	if isTop(t1) || isTop(t2) {
		return []typesys.Type{typesys.Top{}}, nil
	}
	c1, ok1 := t1.(typesys.ClassName)
	c2, ok2 := t2.(typesys.ClassName)
	if ok1 && ok2 {
		var bounds []typesys.Type
		for candidate := range typesys.Join(env, c1, c2).Items() {
			bounds = append(bounds, candidate)
		}
		return bounds, nil
	}
	f1, ok1 := t1.(typesys.FuncType)
	f2, ok2 := t2.(typesys.FuncType)
	if ok1 && ok2 {
		return combineFuncBounds(env, f1, f2, meetBounds, joinBounds)
	}
	return nil, nil
}

type boundsOp func(env *typesys.Environment, t1, t2 typesys.Type) ([]typesys.Type, error)

// combineFuncBounds combines two function types bound-wise: domainOp on each
// argument (the flipped operator, because domains are contravariant) and
// codomainOp on the codomain, then the Cartesian product of all choices.
func combineFuncBounds(env *typesys.Environment, f1, f2 typesys.FuncType, domainOp, codomainOp boundsOp) ([]typesys.Type, error) {
	if len(f1.Domain) != len(f2.Domain) {
		return nil, errors.Errorf("function arity mismatch: %s against %s", f1, f2)
	}
	choices := make([][]typesys.Type, 0, len(f1.Domain)+1)
	for i := range f1.Domain {
		domain, err := domainOp(env, f1.Domain[i], f2.Domain[i])
		if err != nil {
			return nil, err
		}
		choices = append(choices, domain)
	}
	codomain, err := codomainOp(env, f1.Codomain, f2.Codomain)
	if err != nil {
		return nil, err
	}
	choices = append(choices, codomain)

	var bounds []typesys.Type
	for combo := range util.Cartesian(choices) {
		domain := append([]typesys.Type(nil), combo[:len(combo)-1]...)
		bounds = append(bounds, typesys.FuncType{Domain: domain, Codomain: combo[len(combo)-1]})
	}
	return bounds, nil
}

func isUnknown(t typesys.Type) bool {
	_, ok := t.(typesys.Unknown)
	return ok
}

func isTop(t typesys.Type) bool {
	_, ok := t.(typesys.Top)
	return ok
}

func isBottom(t typesys.Type) bool {
	_, ok := t.(typesys.Bottom)
	return ok
}
