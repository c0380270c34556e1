package evidence

import (
	"github.com/cottand/grace/typesys"
	"github.com/cottand/grace/util"
)

// meetIntervals meets two bounds for the same member pointwise, keeping
// only internally consistent results.
func meetIntervals(env *typesys.Environment, sig1, sig2 Signature) ([]Signature, error) {
	lowers, err := meetBounds(env, sig1.Interval.Lower, sig2.Interval.Lower)
	if err != nil {
		return nil, err
	}
	uppers, err := meetBounds(env, sig1.Interval.Upper, sig2.Interval.Upper)
	if err != nil {
		return nil, err
	}
	var sigs []Signature
	for _, lower := range lowers {
		for _, upper := range uppers {
			if typesys.IsGradualSubtype(env, lower, upper) {
				sigs = append(sigs, Signature{Var: sig1.Var, Interval: NewInterval(lower, upper)})
			}
		}
	}
	return sigs, nil
}

// joinIntervals joins lowers and meets uppers, per the evidence join.
func joinIntervals(env *typesys.Environment, sig1, sig2 Signature) ([]Signature, error) {
	lowers, err := joinBounds(env, sig1.Interval.Lower, sig2.Interval.Lower)
	if err != nil {
		return nil, err
	}
	uppers, err := meetBounds(env, sig1.Interval.Upper, sig2.Interval.Upper)
	if err != nil {
		return nil, err
	}
	var sigs []Signature
	for _, lower := range lowers {
		for _, upper := range uppers {
			if typesys.IsGradualSubtype(env, lower, upper) {
				sigs = append(sigs, Signature{Var: sig1.Var, Interval: NewInterval(lower, upper)})
			}
		}
	}
	return sigs, nil
}

type intervalOp func(env *typesys.Environment, sig1, sig2 Signature) ([]Signature, error)

// combineSpecs lifts an interval operator to specifications: matched member
// names go through op, one-sided members pass through unchanged, and the
// result is the Cartesian product of all per-member choices.
func combineSpecs(env *typesys.Environment, s1, s2 Specification, op intervalOp) ([]Specification, error) {
	names := util.NewEmptySet[string]()
	var order []string
	for _, sig := range append(append([]Signature(nil), s1.Signatures()...), s2.Signatures()...) {
		if !names.Contains(sig.Var) {
			names.Add(sig.Var)
			order = append(order, sig.Var)
		}
	}

	choices := make([][]Signature, len(order))
	for i, varName := range order {
		sig1, ok1 := s1.Get(varName)
		sig2, ok2 := s2.Get(varName)
		switch {
		case ok1 && ok2:
			combined, err := op(env, sig1, sig2)
			if err != nil {
				return nil, err
			}
			choices[i] = combined
		case ok1:
			choices[i] = []Signature{sig1}
		default:
			choices[i] = []Signature{sig2}
		}
	}

	var specs []Specification
	for combo := range util.Cartesian(choices) {
		specs = append(specs, NewSpecification(combo...))
	}
	return specs, nil
}

// meetEvidences meets two witnesses for the same comparison.
func meetEvidences(env *typesys.Environment, e1, e2 Evidence) ([]Evidence, error) {
	lefts, err := combineSpecs(env, e1.Left, e2.Left, meetIntervals)
	if err != nil {
		return nil, err
	}
	rights, err := combineSpecs(env, e1.Right, e2.Right, meetIntervals)
	if err != nil {
		return nil, err
	}
	var evidences []Evidence
	for _, left := range lefts {
		for _, right := range rights {
			if IsSubtypeSpec(env, left, right) {
				evidences = append(evidences, Evidence{Left: left, Right: right})
			}
		}
	}
	return evidences, nil
}

// joinEvidences is the dual, with the consistency filter reversed.
func joinEvidences(env *typesys.Environment, e1, e2 Evidence) ([]Evidence, error) {
	lefts, err := combineSpecs(env, e1.Left, e2.Left, joinIntervals)
	if err != nil {
		return nil, err
	}
	rights, err := combineSpecs(env, e1.Right, e2.Right, joinIntervals)
	if err != nil {
		return nil, err
	}
	var evidences []Evidence
	for _, left := range lefts {
		for _, right := range rights {
			if IsSubtypeSpec(env, right, left) {
				evidences = append(evidences, Evidence{Left: left, Right: right})
			}
		}
	}
	return evidences, nil
}

// MeetComplete meets every pairing of witnesses from the two sets, unioning
// all consistent results. An empty result means no common evidence exists.
func MeetComplete(env *typesys.Environment, c1, c2 Complete) (Complete, error) {
	return combineComplete(env, c1, c2, meetEvidences)
}

// JoinComplete joins every pairing of witnesses from the two sets.
func JoinComplete(env *typesys.Environment, c1, c2 Complete) (Complete, error) {
	return combineComplete(env, c1, c2, joinEvidences)
}

type evidenceOp func(env *typesys.Environment, e1, e2 Evidence) ([]Evidence, error)

func combineComplete(env *typesys.Environment, c1, c2 Complete, op evidenceOp) (Complete, error) {
	result := NewComplete()
	for _, e1 := range c1.Slice() {
		for _, e2 := range c2.Slice() {
			combined, err := op(env, e1, e2)
			if err != nil {
				return Complete{}, err
			}
			for _, ev := range combined {
				result.evidences.Insert(ev)
			}
		}
	}
	return result, nil
}

// precisionMeetIntervals computes candidate tightenings of two bounds for
// the same member: joined lowers against met uppers. It narrows the range
// both intervals describe, which is what transitivity needs for its middle.
func precisionMeetIntervals(env *typesys.Environment, i1, i2 Interval) ([]Interval, error) {
	lowers, err := joinBounds(env, i1.Lower, i2.Lower)
	if err != nil {
		return nil, err
	}
	uppers, err := meetBounds(env, i1.Upper, i2.Upper)
	if err != nil {
		return nil, err
	}
	var intervals []Interval
	for _, lower := range lowers {
		for _, upper := range uppers {
			if typesys.IsGradualSubtype(env, lower, upper) {
				intervals = append(intervals, NewInterval(lower, upper))
			}
		}
	}
	return intervals, nil
}

// precisionMeetSpecs is precisionMeetIntervals lifted to specifications,
// restricted to the member names both sides bound.
func precisionMeetSpecs(env *typesys.Environment, s1, s2 Specification) ([]Specification, error) {
	var shared []string
	for _, sig := range s1.Signatures() {
		if _, ok := s2.Get(sig.Var); ok {
			shared = append(shared, sig.Var)
		}
	}

	choices := make([][]Signature, len(shared))
	for i, varName := range shared {
		sig1, _ := s1.Get(varName)
		sig2, _ := s2.Get(varName)
		intervals, err := precisionMeetIntervals(env, sig1.Interval, sig2.Interval)
		if err != nil {
			return nil, err
		}
		sigs := make([]Signature, len(intervals))
		for j, interval := range intervals {
			sigs[j] = Signature{Var: varName, Interval: interval}
		}
		choices[i] = sigs
	}

	var specs []Specification
	for combo := range util.Cartesian(choices) {
		specs = append(specs, NewSpecification(combo...))
	}
	return specs, nil
}
