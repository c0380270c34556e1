package evidence

import (
	"github.com/cottand/grace/typesys"
)

// transitivityEvidences composes a witness for A~B with a witness for B~C
// into witnesses for A~C. Candidate middle specifications come from the
// precision meet of e1's right side and e2's left side; each middle is then
// re-interiored against the outer sides and the outer halves recombined.
// Several incomparable middles can exist, hence the set result.
func transitivityEvidences(env *typesys.Environment, e1, e2 Evidence) ([]Evidence, error) {
	middles, err := precisionMeetSpecs(env, e1.Right, e2.Left)
	if err != nil {
		return nil, err
	}

	var evidences []Evidence
	for _, middle := range middles {
		leftPairs, err := interiorSpecs(env, e1.Left, middle)
		if err != nil {
			return nil, err
		}
		rightPairs, err := interiorSpecs(env, middle, e2.Right)
		if err != nil {
			return nil, err
		}
		for _, lp := range leftPairs {
			for _, rp := range rightPairs {
				evidences = append(evidences, Evidence{Left: lp.Fst, Right: rp.Snd})
			}
		}
	}
	return evidences, nil
}

// TransitivityComplete chains every pairing of witnesses from the two sets.
// An empty result means the two judgements cannot be soundly composed.
func TransitivityComplete(env *typesys.Environment, c1, c2 Complete) (Complete, error) {
	return combineComplete(env, c1, c2, transitivityEvidences)
}
