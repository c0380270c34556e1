// Package typesys implements the static and gradual type lattice over a
// class hierarchy: the type sum, the environment holding the hierarchy,
// subtyping, meet/join, specification resolution and validation.
package typesys

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Type is the closed sum of types in the hierarchy. The gradual layer is the
// same sum: Unknown is a Type, and the static operators simply never relate
// it to anything, while the gradual ones relate it to everything.
type Type interface {
	fmt.Stringer
	Hash() uint64
	isType()
}

// Top is the supertype of every type.
type Top struct{}

// Bottom is the subtype of every type.
type Bottom struct{}

// Unknown is the gradual "dynamic" marker: both sub- and supertype of
// everything under the gradual relation, unrelated under the static one.
type Unknown struct{}

// ClassName is a node in the hierarchy, identified by name.
type ClassName struct {
	Name string
}

// FuncType is a function type. Domains are ordered and contravariant.
type FuncType struct {
	Domain   []Type
	Codomain Type
}

func (Top) isType()       {}
func (Bottom) isType()    {}
func (Unknown) isType()   {}
func (ClassName) isType() {}
func (FuncType) isType()  {}

func (Top) String() string     { return "⊤" }
func (Bottom) String() string  { return "⊥" }
func (Unknown) String() string { return "?" }

func (c ClassName) String() string { return c.Name }

func (f FuncType) String() string {
	sb := &strings.Builder{}
	sb.WriteString("(")
	for i, d := range f.Domain {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.String())
	}
	sb.WriteString(") → ")
	sb.WriteString(f.Codomain.String())
	return sb.String()
}

func (Top) Hash() uint64     { return 15485863 }
func (Bottom) Hash() uint64  { return 32452843 }
func (Unknown) Hash() uint64 { return 49979687 }

func (c ClassName) Hash() uint64 {
	const prime uint64 = 1299709
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.Name))
	return prime ^ h.Sum64()
}

func (f FuncType) Hash() uint64 {
	const prime1 uint64 = 433
	const prime2 uint64 = 9973
	hash := prime2
	for _, d := range f.Domain {
		hash = hash*prime1 ^ d.Hash()
	}
	return hash*prime1 + f.Codomain.Hash()
}

// TypeEqual compares two types for structural equality.
// As in every other entity here, equality is hash equality.
func TypeEqual(t1, t2 Type) bool {
	return t1.Hash() == t2.Hash()
}

// NewFunc is a convenience constructor for function types.
func NewFunc(codomain Type, domain ...Type) FuncType {
	return FuncType{Domain: domain, Codomain: codomain}
}
