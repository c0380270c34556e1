package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/grace/typesys"
)

func TestLift(t *testing.T) {
	testCases := []struct {
		name     string
		t1       typesys.Type
		expected Interval
	}{
		{name: "class is exact", t1: clsB, expected: interval(clsB, clsB)},
		{name: "top is exact", t1: top, expected: interval(top, top)},
		{name: "unknown spans the lattice", t1: unknown, expected: interval(bottom, top)},
		{
			name: "function flips its domain bounds",
			t1:   typesys.NewFunc(clsB, unknown),
			expected: interval(
				typesys.NewFunc(clsB, top),
				typesys.NewFunc(clsB, bottom),
			),
		},
		{
			name:     "concrete function is exact",
			t1:       typesys.NewFunc(clsB, clsA),
			expected: interval(typesys.NewFunc(clsB, clsA), typesys.NewFunc(clsB, clsA)),
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			lifted := Lift(testCase.t1)
			assert.True(t, typesys.TypeEqual(testCase.expected.Lower, lifted.Lower),
				"lower: want %s, got %s", testCase.expected.Lower, lifted.Lower)
			assert.True(t, typesys.TypeEqual(testCase.expected.Upper, lifted.Upper),
				"upper: want %s, got %s", testCase.expected.Upper, lifted.Upper)
		})
	}
}

func TestInteriorTypes(t *testing.T) {
	env := sixClassEnv()

	testCases := []struct {
		name        string
		t1, t2      typesys.Type
		ok          bool
		left, right Interval
	}{
		{
			name: "subclass against superclass",
			t1:   clsB, t2: clsA,
			ok:   true,
			left: interval(clsB, clsB), right: interval(clsB, clsA),
		},
		{
			name: "superclass against subclass",
			t1:   clsA, t2: clsB,
			ok:   true,
			left: interval(clsB, clsA), right: interval(clsB, clsB),
		},
		{
			name: "unrelated siblings have no interior",
			t1:   clsB, t2: clsC,
			ok: false,
		},
		{
			name: "unknown against unknown",
			t1:   unknown, t2: unknown,
			ok:   true,
			left: interval(bottom, top), right: interval(bottom, top),
		},
		{
			name: "concrete against unknown",
			t1:   clsB, t2: unknown,
			ok:   true,
			left: interval(clsB, clsB), right: interval(clsB, top),
		},
		{
			name: "unknown against concrete",
			t1:   unknown, t2: clsB,
			ok:   true,
			left: interval(bottom, clsB), right: interval(clsB, clsB),
		},
		{
			name: "function against unknown",
			t1:   typesys.NewFunc(clsB, clsA), t2: unknown,
			ok: true,
			left: interval(
				typesys.NewFunc(clsB, clsA),
				typesys.NewFunc(unknown, unknown),
			),
			right: interval(bottom, top),
		},
		{
			name: "unknown against function",
			t1:   unknown, t2: typesys.NewFunc(clsB, clsA),
			ok:   true,
			left: interval(bottom, top),
			right: interval(
				typesys.NewFunc(unknown, unknown),
				typesys.NewFunc(clsB, clsA),
			),
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			left, right, ok := interiorTypes(env, testCase.t1, testCase.t2)
			require.Equal(t, testCase.ok, ok)
			if !testCase.ok {
				return
			}
			assert.True(t, typesys.TypeEqual(testCase.left.Lower, left.Lower), "left lower: got %s", left)
			assert.True(t, typesys.TypeEqual(testCase.left.Upper, left.Upper), "left upper: got %s", left)
			assert.True(t, typesys.TypeEqual(testCase.right.Lower, right.Lower), "right lower: got %s", right)
			assert.True(t, typesys.TypeEqual(testCase.right.Upper, right.Upper), "right upper: got %s", right)
		})
	}
}

func TestInteriorFunctionTypes(t *testing.T) {
	env := sixClassEnv()

	// (A)→B against (B)→A: contravariant domains, covariant codomains
	f1 := typesys.NewFunc(clsB, clsA)
	f2 := typesys.NewFunc(clsA, clsB)
	fBB := typesys.NewFunc(clsB, clsB)
	left, right, ok := interiorTypes(env, f1, f2)
	require.True(t, ok)
	assert.True(t, typesys.TypeEqual(f1, left.Lower), "got %s", left)
	assert.True(t, typesys.TypeEqual(fBB, left.Upper), "got %s", left)
	assert.True(t, typesys.TypeEqual(fBB, right.Lower), "got %s", right)
	assert.True(t, typesys.TypeEqual(f2, right.Upper), "got %s", right)

	// mismatched arities never have an interior
	_, _, ok = interiorTypes(env, typesys.NewFunc(clsB, clsB), typesys.NewFunc(clsB, clsB, clsB))
	assert.False(t, ok)
}

func TestInteriorClassSpecification(t *testing.T) {
	env := sixClassEnv()

	specA := typesys.GetSpecifications(env, clsA)
	specB := typesys.GetSpecifications(env, clsB)

	c := InteriorClassSpecification(env, specB, specA)
	expected := NewComplete(Evidence{
		Left:  NewSpecification(boundVar("x", clsB, clsB)),
		Right: NewSpecification(),
	})
	assert.True(t, c.Equal(expected), "got %s", c)
}

func TestInteriorClassSpecificationImprecise(t *testing.T) {
	env := sixClassEnv()

	specB := typesys.GetSpecifications(env, clsB)
	specD := typesys.GetSpecifications(env, clsD)

	c := InteriorClassSpecification(env, specD, specB)
	expected := NewComplete(Evidence{
		Left: NewSpecification(
			boundVar("x", bottom, clsB),
			boundVar("y", clsA, clsA),
			boundVar("z", bottom, top),
		),
		Right: NewSpecification(boundVar("x", clsB, clsB)),
	})
	assert.True(t, c.Equal(expected), "got %s", c)
}

func TestInteriorClassSpecificationIncompatible(t *testing.T) {
	env := sixClassEnv()

	// B and C declare x at incomparable class types: no witness exists
	specB := typesys.GetSpecifications(env, clsB)
	specC := typesys.GetSpecifications(env, clsC)

	c := InteriorClassSpecification(env, specB, specC)
	assert.True(t, c.IsEmpty(), "got %s", c)
}
