package evidence

import (
	"github.com/cottand/grace/internal/log"
	"github.com/cottand/grace/typesys"
	"github.com/cottand/grace/util"
)

var logger = log.DefaultLogger.With("section", "evidence")

// Lift wraps a gradual type in the tightest interval containing it without
// losing information: Unknown spans the whole lattice, a function type
// flips its domain bounds because domains are contravariant, and any other
// type is its own exact bound.
func Lift(t typesys.Type) Interval {
	switch t := t.(type) {
	case typesys.Unknown:
		return NewInterval(typesys.Bottom{}, typesys.Top{})
	case typesys.FuncType:
		lowerDomain := make([]typesys.Type, len(t.Domain))
		upperDomain := make([]typesys.Type, len(t.Domain))
		for i, d := range t.Domain {
			lifted := Lift(d)
			lowerDomain[i] = lifted.Upper
			upperDomain[i] = lifted.Lower
		}
		codomain := Lift(t.Codomain)
		return NewInterval(
			typesys.FuncType{Domain: lowerDomain, Codomain: codomain.Lower},
			typesys.FuncType{Domain: upperDomain, Codomain: codomain.Upper},
		)
	default:
		return NewInterval(t, t)
	}
}

// interiorTypes computes the two-sided consistency witness between t1 and
// t2: an interval for each side, oriented positionally. The ok result is
// false when the types are gradually incompatible, which is a normal
// outcome, not an error.
func interiorTypes(env *typesys.Environment, t1, t2 typesys.Type) (left, right Interval, ok bool) {
	f1, isFunc1 := t1.(typesys.FuncType)
	f2, isFunc2 := t2.(typesys.FuncType)
	unknown1 := isUnknown(t1)
	unknown2 := isUnknown(t2)

	switch {
	case isFunc1 && isFunc2:
		return interiorFuncs(env, f1, f2)

	case unknown1 && unknown2:
		return Lift(typesys.Unknown{}), Lift(typesys.Unknown{}), true

	case isFunc1 && unknown2:
		// the unknown side could be any function of the same arity
		return NewInterval(f1, unknownFunc(len(f1.Domain))), Lift(typesys.Unknown{}), true

	case unknown1 && isFunc2:
		return Lift(typesys.Unknown{}), NewInterval(unknownFunc(len(f2.Domain)), f2), true

	case unknown2:
		// t1 concrete: anything from t1 up to the unknown horizon
		return Lift(t1), NewInterval(t1, typesys.Top{}), true

	case unknown1:
		return NewInterval(typesys.Bottom{}, t2), Lift(t2), true

	default:
		// both concrete: defined only when one side is below the other
		if typesys.IsGradualSubtype(env, t1, t2) {
			return Lift(t1), NewInterval(t1, t2), true
		}
		if typesys.IsGradualSubtype(env, t2, t1) {
			return NewInterval(t2, t1), Lift(t2), true
		}
		return Interval{}, Interval{}, false
	}
}

func interiorFuncs(env *typesys.Environment, f1, f2 typesys.FuncType) (left, right Interval, ok bool) {
	if len(f1.Domain) != len(f2.Domain) {
		return Interval{}, Interval{}, false
	}
	// domains recurse contravariantly: the f2 side comes first
	domainLeft := make([]Interval, len(f1.Domain))
	domainRight := make([]Interval, len(f1.Domain))
	for i := range f1.Domain {
		dl, dr, ok := interiorTypes(env, f2.Domain[i], f1.Domain[i])
		if !ok {
			return Interval{}, Interval{}, false
		}
		domainLeft[i] = dl
		domainRight[i] = dr
	}
	codomainLeft, codomainRight, ok := interiorTypes(env, f1.Codomain, f2.Codomain)
	if !ok {
		return Interval{}, Interval{}, false
	}

	left = NewInterval(
		typesys.FuncType{Domain: mapIntervals(domainRight, upperOf), Codomain: codomainLeft.Lower},
		typesys.FuncType{Domain: mapIntervals(domainLeft, lowerOf), Codomain: codomainLeft.Upper},
	)
	right = NewInterval(
		typesys.FuncType{Domain: mapIntervals(domainRight, lowerOf), Codomain: codomainRight.Lower},
		typesys.FuncType{Domain: mapIntervals(domainLeft, upperOf), Codomain: codomainRight.Upper},
	)
	return left, right, true
}

func mapIntervals(intervals []Interval, bound func(Interval) typesys.Type) []typesys.Type {
	mapped := make([]typesys.Type, len(intervals))
	for i, interval := range intervals {
		mapped[i] = bound(interval)
	}
	return mapped
}

func lowerOf(i Interval) typesys.Type { return i.Lower }
func upperOf(i Interval) typesys.Type { return i.Upper }

func unknownFunc(arity int) typesys.FuncType {
	domain := make([]typesys.Type, arity)
	for i := range domain {
		domain[i] = typesys.Unknown{}
	}
	return typesys.FuncType{Domain: domain, Codomain: typesys.Unknown{}}
}

// interiorIntervals narrows two member bounds against each other: candidate
// new uppers for the first interval are the meets of the uppers, candidate
// new lowers for the second are the joins of the lowers.
func interiorIntervals(env *typesys.Environment, i1, i2 Interval) ([]util.Pair[Interval, Interval], error) {
	uppers, err := meetBounds(env, i1.Upper, i2.Upper)
	if err != nil {
		return nil, err
	}
	lowers, err := joinBounds(env, i1.Lower, i2.Lower)
	if err != nil {
		return nil, err
	}
	var pairs []util.Pair[Interval, Interval]
	for _, upper := range uppers {
		for _, lower := range lowers {
			pairs = append(pairs, util.NewPair(
				NewInterval(i1.Lower, upper),
				NewInterval(lower, i2.Upper),
			))
		}
	}
	return pairs, nil
}

// interiorSpecs lifts interiorIntervals to evidence specifications, matched
// by member name. Members only the left side bounds pass through on the
// left. A shared member with no interior makes the whole interior empty.
func interiorSpecs(env *typesys.Environment, s1, s2 Specification) ([]util.Pair[Specification, Specification], error) {
	if s2.Len() == 0 {
		return []util.Pair[Specification, Specification]{util.NewPair(s1, NewSpecification())}, nil
	}

	var shared []string
	for _, sig := range s1.Signatures() {
		if _, ok := s2.Get(sig.Var); ok {
			shared = append(shared, sig.Var)
		}
	}

	choices := make([][]util.Pair[Interval, Interval], len(shared))
	for i, varName := range shared {
		sig1, _ := s1.Get(varName)
		sig2, _ := s2.Get(varName)
		pairs, err := interiorIntervals(env, sig1.Interval, sig2.Interval)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, nil
		}
		choices[i] = pairs
	}

	var result []util.Pair[Specification, Specification]
	for combo := range util.Cartesian(choices) {
		var sigs1, sigs2 []Signature
		for i, varName := range shared {
			sigs1 = append(sigs1, Signature{Var: varName, Interval: combo[i].Fst})
			sigs2 = append(sigs2, Signature{Var: varName, Interval: combo[i].Snd})
		}
		for _, sig := range s1.Signatures() {
			if _, ok := s2.Get(sig.Var); !ok {
				sigs1 = append(sigs1, sig)
			}
		}
		result = append(result, util.NewPair(NewSpecification(sigs1...), NewSpecification(sigs2...)))
	}
	return result, nil
}

// InteriorClassSpecification computes the greatest common evidence between
// two resolved class specifications: per shared member the two-sided
// interior of the projected types, per one-sided member its exact lift. The
// result is always a Complete set; empty means the specifications are
// gradually incompatible.
func InteriorClassSpecification(env *typesys.Environment, s1, s2 typesys.Specification) Complete {
	var left, right []Signature

	seen := util.NewEmptySet[string]()
	for _, sig := range append(append([]typesys.Signature(nil), s1.Signatures()...), s2.Signatures()...) {
		if seen.Contains(sig.Var) {
			continue
		}
		seen.Add(sig.Var)

		t1, ok1 := typesys.Proj(sig.Var, s1)
		t2, ok2 := typesys.Proj(sig.Var, s2)
		switch {
		case ok1 && ok2:
			i1, i2, ok := interiorTypes(env, t1, t2)
			if !ok {
				logger.Debug("no interior for shared member",
					"member", sig.Var, "t1", t1.String(), "t2", t2.String())
				return NewComplete()
			}
			left = append(left, Signature{Var: sig.Var, Interval: i1})
			right = append(right, Signature{Var: sig.Var, Interval: i2})
		case ok1:
			left = append(left, Signature{Var: sig.Var, Interval: Lift(t1)})
		case ok2:
			right = append(right, Signature{Var: sig.Var, Interval: Lift(t2)})
		}
	}

	return NewComplete(Evidence{
		Left:  NewSpecification(left...),
		Right: NewSpecification(right...),
	})
}
