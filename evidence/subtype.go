package evidence

import (
	"github.com/cottand/grace/typesys"
)

// IsSubtypeInterval orders intervals pointwise under the gradual relation.
func IsSubtypeInterval(env *typesys.Environment, i1, i2 Interval) bool {
	return typesys.IsGradualSubtype(env, i1.Lower, i2.Lower) &&
		typesys.IsGradualSubtype(env, i1.Upper, i2.Upper)
}

// IsSubtypeSpec is width subtyping over evidence specifications: every
// member bound of s2 must be matched by an interval-subtype bound in s1.
func IsSubtypeSpec(env *typesys.Environment, s1, s2 Specification) bool {
	for _, sig2 := range s2.Signatures() {
		sig1, ok := s1.Get(sig2.Var)
		if !ok {
			return false
		}
		if !IsSubtypeInterval(env, sig1.Interval, sig2.Interval) {
			return false
		}
	}
	return true
}
