package typesys

import (
	"github.com/cottand/grace/internal/log"
	"github.com/cottand/grace/util"
)

var resolveLogger = log.DefaultLogger.With("section", "resolve")

// Proj projects a specification onto a member name.
func Proj(varName string, s Specification) (Type, bool) {
	sig, ok := s.Get(varName)
	if !ok {
		return nil, false
	}
	return sig.Type, true
}

// ProjMany projects every specification in ss onto varName, skipping the
// ones that do not declare it.
func ProjMany(varName string, ss []Specification) []Type {
	var projected []Type
	for _, s := range ss {
		if t, ok := Proj(varName, s); ok {
			projected = append(projected, t)
		}
	}
	return projected
}

// ParentSpecifications returns the resolved specification of every direct
// parent of c, in edge order.
func ParentSpecifications(env *Environment, c ClassName) []Specification {
	return parentSpecifications(env, c, util.NewEmptySet[string]())
}

func parentSpecifications(env *Environment, c ClassName, resolving util.MSet[string]) []Specification {
	if !env.HasNode(c) {
		return nil
	}
	var parents []Specification
	for _, edge := range env.edges {
		if edge.Source == c {
			parents = append(parents, resolveSpecifications(env, edge.Target, resolving))
		}
	}
	return parents
}

// Undeclared returns the member names c inherits but does not declare
// itself: names present in at least one direct parent's resolved
// specification and absent from sigma[c].
func Undeclared(env *Environment, c ClassName) []string {
	return undeclared(env, c, util.NewEmptySet[string]())
}

func undeclared(env *Environment, c ClassName, resolving util.MSet[string]) []string {
	declared, _ := env.Declared(c.Name)
	own := declared.Names()

	seen := util.NewEmptySet[string]()
	var names []string
	for _, parent := range parentSpecifications(env, c, resolving) {
		for _, sig := range parent.Signatures() {
			if own.Contains(sig.Var) || seen.Contains(sig.Var) {
				continue
			}
			seen.Add(sig.Var)
			names = append(names, sig.Var)
		}
	}
	return names
}

// Inherited returns the inherited members of c with their resolved types.
// A member projected from several parents gets the unique meet of the
// projections; when no unique meet exists (or function arities disagree)
// the member is dropped. That omission is deliberate, inherited from the
// system's inheritance policy, and it is logged so a hierarchy author can
// see it happen.
func Inherited(env *Environment, c ClassName) map[string]Type {
	return inherited(env, c, util.NewEmptySet[string]())
}

func inherited(env *Environment, c ClassName, resolving util.MSet[string]) map[string]Type {
	parents := parentSpecifications(env, c, resolving)
	inheritedVars := make(map[string]Type)

	for _, varName := range undeclared(env, c, resolving) {
		projected := ProjMany(varName, parents)
		if len(projected) == 0 {
			continue
		}
		current := projected[0]
		ok := true
		for _, other := range projected[1:] {
			current, ok = inheritMeet(env, current, other)
			if !ok {
				break
			}
		}
		if !ok {
			resolveLogger.Warn("dropping inherited member with no unique meet",
				"class", c.Name, "member", varName)
			continue
		}
		inheritedVars[varName] = current
	}
	return inheritedVars
}

// inheritMeet combines two parents' types for the same inherited member.
// Unknown absorbs: imprecision in any parent makes the member imprecise.
// Class pairs need a unique lattice meet; function types combine argument
// wise, domains through the dual join. Anything else is a conflict.
func inheritMeet(env *Environment, t1, t2 Type) (Type, bool) {
	if TypeEqual(t1, t2) {
		return t1, true
	}
	if isUnknown(t1) || isUnknown(t2) {
		return Unknown{}, true
	}
	if _, isTop := t1.(Top); isTop {
		return t2, true
	}
	if _, isTop := t2.(Top); isTop {
		return t1, true
	}
	if _, isBottom := t1.(Bottom); isBottom {
		return Bottom{}, true
	}
	if _, isBottom := t2.(Bottom); isBottom {
		return Bottom{}, true
	}
	c1, ok1 := t1.(ClassName)
	c2, ok2 := t2.(ClassName)
	if ok1 && ok2 {
		return MeetUnique(env, c1, c2)
	}
	f1, ok1 := t1.(FuncType)
	f2, ok2 := t2.(FuncType)
	if ok1 && ok2 {
		return inheritMeetFunc(env, f1, f2)
	}
	return nil, false
}

func inheritMeetFunc(env *Environment, f1, f2 FuncType) (Type, bool) {
	if len(f1.Domain) != len(f2.Domain) {
		return nil, false
	}
	domain := make([]Type, len(f1.Domain))
	for i := range f1.Domain {
		d, ok := inheritJoin(env, f1.Domain[i], f2.Domain[i])
		if !ok {
			return nil, false
		}
		domain[i] = d
	}
	codomain, ok := inheritMeet(env, f1.Codomain, f2.Codomain)
	if !ok {
		return nil, false
	}
	return FuncType{Domain: domain, Codomain: codomain}, true
}

// inheritJoin is the dual of inheritMeet, used for contravariant domains.
func inheritJoin(env *Environment, t1, t2 Type) (Type, bool) {
	if TypeEqual(t1, t2) {
		return t1, true
	}
	if isUnknown(t1) || isUnknown(t2) {
		return Unknown{}, true
	}
	if _, isBottom := t1.(Bottom); isBottom {
		return t2, true
	}
	if _, isBottom := t2.(Bottom); isBottom {
		return t1, true
	}
	if _, isTop := t1.(Top); isTop {
		return Top{}, true
	}
	if _, isTop := t2.(Top); isTop {
		return Top{}, true
	}
	c1, ok1 := t1.(ClassName)
	c2, ok2 := t2.(ClassName)
	if ok1 && ok2 {
		return JoinUnique(env, c1, c2)
	}
	f1, ok1 := t1.(FuncType)
	f2, ok2 := t2.(FuncType)
	if ok1 && ok2 {
		return inheritJoinFunc(env, f1, f2)
	}
	return nil, false
}

func inheritJoinFunc(env *Environment, f1, f2 FuncType) (Type, bool) {
	if len(f1.Domain) != len(f2.Domain) {
		return nil, false
	}
	domain := make([]Type, len(f1.Domain))
	for i := range f1.Domain {
		d, ok := inheritMeet(env, f1.Domain[i], f2.Domain[i])
		if !ok {
			return nil, false
		}
		domain[i] = d
	}
	codomain, ok := inheritJoin(env, f1.Codomain, f2.Codomain)
	if !ok {
		return nil, false
	}
	return FuncType{Domain: domain, Codomain: codomain}, true
}

func isUnknown(t Type) bool {
	_, ok := t.(Unknown)
	return ok
}

// GetSpecifications resolves the full specification of c: its own declared
// members plus everything inherited. Results are memoised per Environment.
func GetSpecifications(env *Environment, c ClassName) Specification {
	return env.memoResolved(c.Name, func() Specification {
		return resolveSpecifications(env, c, util.NewEmptySet[string]())
	})
}

// resolveSpecifications threads the set of class names currently being
// resolved: a cyclic hierarchy would otherwise recurse forever through its
// parents. On a revisit the class contributes its declared members only;
// the validator separately rejects the cycle.
func resolveSpecifications(env *Environment, c ClassName, resolving util.MSet[string]) Specification {
	declared, _ := env.Declared(c.Name)
	if resolving.Contains(c.Name) {
		return declared
	}
	resolving.Add(c.Name)
	defer resolving.Remove(c.Name)

	combined := append([]Signature(nil), declared.Signatures()...)
	inheritedVars := inherited(env, c, resolving)
	for _, varName := range undeclared(env, c, resolving) {
		if t, ok := inheritedVars[varName]; ok {
			combined = append(combined, Signature{Var: varName, Type: t})
		}
	}
	return NewSpecification(combined...)
}
