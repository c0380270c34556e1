package typesys

import (
	"slices"
	"strings"

	"github.com/cottand/grace/util"
)

// Signature is one named member of a class.
type Signature struct {
	Var  string
	Type Type
}

func (s Signature) Hash() uint64 {
	const prime uint64 = 104729
	return util.HashString(s.Var)*prime ^ s.Type.Hash()
}

func (s Signature) String() string {
	return s.Var + ": " + s.Type.String()
}

// Specification is the set of named members of a class. Signatures are kept
// sorted by member name so that hashing and printing are deterministic.
// Duplicate member names are representable: NoOverloading rejects them, it
// does not prevent them.
type Specification struct {
	signatures []Signature
}

func NewSpecification(signatures ...Signature) Specification {
	sigs := slices.Clone(signatures)
	slices.SortStableFunc(sigs, func(a, b Signature) int {
		return strings.Compare(a.Var, b.Var)
	})
	return Specification{signatures: sigs}
}

// Signatures returns the members in name order. Callers must not modify it.
func (s Specification) Signatures() []Signature {
	return s.signatures
}

func (s Specification) Len() int {
	return len(s.signatures)
}

// Get returns the first signature named varName.
func (s Specification) Get(varName string) (Signature, bool) {
	for _, sig := range s.signatures {
		if sig.Var == varName {
			return sig, true
		}
	}
	return Signature{}, false
}

// Names returns the set of member names of s.
func (s Specification) Names() util.MSet[string] {
	names := util.NewEmptySet[string]()
	for _, sig := range s.signatures {
		names.Add(sig.Var)
	}
	return names
}

func (s Specification) Hash() uint64 {
	const prime uint64 = 15487469
	var hash uint64 = 7841
	for _, sig := range s.signatures {
		hash = hash*prime ^ sig.Hash()
	}
	return hash
}

func (s Specification) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	for i, sig := range s.signatures {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(sig.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// SpecEqual compares two specifications for structural equality.
func SpecEqual(s1, s2 Specification) bool {
	return s1.Hash() == s2.Hash()
}
