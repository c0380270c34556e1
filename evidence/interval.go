// Package evidence implements the evidence algebra over the gradual type
// lattice: bounded witnesses that justify a gradual subtyping judgement
// between two class specifications, and the meet, join, interior and
// transitivity operators that combine them.
package evidence

import (
	"slices"
	"strings"

	set "github.com/hashicorp/go-set/v3"

	"github.com/cottand/grace/typesys"
	"github.com/cottand/grace/util"
)

// Interval is the known range within which a member's true, unknown-erased
// type lies. Construction is deliberately permissive: operators that produce
// intervals from lattice results filter by Lower <: Upper themselves.
type Interval struct {
	Lower typesys.Type
	Upper typesys.Type
}

func NewInterval(lower, upper typesys.Type) Interval {
	return Interval{Lower: lower, Upper: upper}
}

func (i Interval) Hash() uint64 {
	const prime uint64 = 10007
	return i.Lower.Hash()*prime ^ i.Upper.Hash()
}

func (i Interval) String() string {
	return "[" + i.Lower.String() + ", " + i.Upper.String() + "]"
}

// Signature bounds one named member.
type Signature struct {
	Var      string
	Interval Interval
}

func (s Signature) Hash() uint64 {
	const prime uint64 = 104729
	return util.HashString(s.Var)*prime ^ s.Interval.Hash()
}

func (s Signature) String() string {
	return s.Var + ": " + s.Interval.String()
}

// Specification is a set of member bounds, at most one per member name.
// Signatures are kept sorted by name for deterministic hashing.
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

// Signatures returns the member bounds in name order. Read-only.
func (s Specification) Signatures() []Signature {
	return s.signatures
}

func (s Specification) Len() int {
	return len(s.signatures)
}

func (s Specification) Get(varName string) (Signature, bool) {
	for _, sig := range s.signatures {
		if sig.Var == varName {
			return sig, true
		}
	}
	return Signature{}, false
}

func (s Specification) Hash() uint64 {
	const prime uint64 = 15487469
	var hash uint64 = 28657
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

// Evidence bounds the two sides of one gradual-subtype comparison: Left for
// the left-hand specification, Right for the right-hand one.
type Evidence struct {
	Left  Specification
	Right Specification
}

func (e Evidence) Hash() uint64 {
	const prime uint64 = 433494437
	return e.Left.Hash()*prime ^ e.Right.Hash()
}

func (e Evidence) String() string {
	return "⟨" + e.Left.String() + ", " + e.Right.String() + "⟩"
}

// Complete is the set of all valid Evidence witnesses for one comparison.
// The operators are not confluent to a single answer, so results are sets;
// the empty set means no evidence exists.
type Complete struct {
	evidences *set.HashSet[Evidence, uint64]
}

func NewComplete(evidences ...Evidence) Complete {
	evs := set.NewHashSet[Evidence, uint64](len(evidences))
	for _, ev := range evidences {
		evs.Insert(ev)
	}
	return Complete{evidences: evs}
}

func (c Complete) Size() int {
	if c.evidences == nil {
		return 0
	}
	return c.evidences.Size()
}

// IsEmpty reports that no valid evidence exists. This is the normal encoding
// of incompatibility, not an error.
func (c Complete) IsEmpty() bool {
	return c.Size() == 0
}

func (c Complete) Contains(e Evidence) bool {
	return c.evidences != nil && c.evidences.Contains(e)
}

// Slice returns the evidences ordered by hash, for deterministic iteration.
func (c Complete) Slice() []Evidence {
	if c.evidences == nil {
		return nil
	}
	evs := c.evidences.Slice()
	slices.SortFunc(evs, util.ComparingHashable)
	return evs
}

func (c Complete) Equal(other Complete) bool {
	if c.Size() != other.Size() {
		return false
	}
	for _, ev := range c.Slice() {
		if !other.Contains(ev) {
			return false
		}
	}
	return true
}

func (c Complete) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	for i, ev := range c.Slice() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ev.String())
	}
	sb.WriteString("}")
	return sb.String()
}
