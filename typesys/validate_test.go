package typesys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidGraph(t *testing.T) {
	assert.True(t, IsValidGraph(diamondEnv()))
	assert.True(t, IsValidGraph(sixClassEnv()))
}

func TestAcyclic(t *testing.T) {
	assert.True(t, Acyclic(diamondEnv()))
	assert.True(t, Acyclic(sixClassEnv()))
	assert.False(t, Acyclic(cyclicEnv()))
}

func TestCyclicGraphIsInvalid(t *testing.T) {
	assert.False(t, IsValidGraph(cyclicEnv()))
}

func TestNoOverloading(t *testing.T) {
	ok := NewSpecification(
		Signature{Var: "x", Type: clsA},
		Signature{Var: "y", Type: clsB},
	)
	assert.True(t, NoOverloading(ok))

	overloaded := Specification{signatures: []Signature{
		{Var: "x", Type: clsA},
		{Var: "x", Type: clsB},
	}}
	assert.False(t, NoOverloading(overloaded))
}

func TestIncludesNode(t *testing.T) {
	env := diamondEnv()

	resolved := GetSpecifications(env, clsB)
	assert.True(t, IncludesNode(env, clsB, resolved))

	// dropping a declared member breaks inclusion
	partial := NewSpecification(Signature{Var: "x", Type: clsA})
	assert.False(t, IncludesNode(env, clsB, partial))

	// changing a declared member's type breaks inclusion too
	changed := NewSpecification(
		Signature{Var: "x", Type: clsB},
		Signature{Var: "y", Type: NewFunc(clsB, clsA)},
	)
	assert.False(t, IncludesNode(env, clsB, changed))
}

func TestExistsAllSignatures(t *testing.T) {
	env := diamondEnv()

	resolved := GetSpecifications(env, clsD)
	assert.True(t, ExistsAllSignatures(env, clsD, resolved))

	missing := NewSpecification(Signature{Var: "x", Type: clsA})
	assert.False(t, ExistsAllSignatures(env, clsD, missing),
		"inherited y is required")

	extra := NewSpecification(
		Signature{Var: "x", Type: clsA},
		Signature{Var: "y", Type: NewFunc(clsB, clsA)},
		Signature{Var: "w", Type: clsA},
	)
	assert.False(t, ExistsAllSignatures(env, clsD, extra),
		"w is neither declared nor inherited")
}

func TestMinimalSpecification(t *testing.T) {
	env := diamondEnv()

	resolved := GetSpecifications(env, clsD)
	assert.True(t, MinimalSpecification(env, clsD, resolved))

	// widening x beyond the parents' A is not minimal
	widened := NewSpecification(
		Signature{Var: "x", Type: Top{}},
		Signature{Var: "y", Type: NewFunc(clsB, clsA)},
	)
	assert.False(t, MinimalSpecification(env, clsD, widened))
}

func TestIsValidType(t *testing.T) {
	env := diamondEnv()
	stranger := ClassName{Name: "Stranger"}

	testCases := []struct {
		name     string
		t1       Type
		expected bool
	}{
		{name: "declared class", t1: clsA, expected: true},
		{name: "undeclared class", t1: stranger, expected: false},
		{name: "top", t1: Top{}, expected: true},
		{name: "bottom", t1: Bottom{}, expected: true},
		{name: "unknown", t1: Unknown{}, expected: true},
		{name: "function over declared classes", t1: NewFunc(clsB, clsA, Unknown{}), expected: true},
		{name: "function with undeclared domain", t1: NewFunc(clsB, stranger), expected: false},
		{name: "function with undeclared codomain", t1: NewFunc(stranger, clsA), expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, IsValidType(env, testCase.t1))
		})
	}
}

func TestIsValidSignatures(t *testing.T) {
	assert.True(t, IsValidSignatures(sixClassEnv()))

	// a signature naming a class outside the hierarchy fails
	env := NewEnvironment(
		[]ClassName{clsA},
		nil,
		map[string]Specification{
			"A": NewSpecification(Signature{Var: "x", Type: ClassName{Name: "Stranger"}}),
		},
	)
	assert.False(t, IsValidSignatures(env))
	assert.False(t, IsValidGraph(env))
}

func TestIsValidEdge(t *testing.T) {
	env := diamondEnv()

	assert.True(t, IsValidEdge(env, clsB, clsA))
	assert.False(t, IsValidEdge(env, clsA, clsB), "edges are directed")
	assert.False(t, IsValidEdge(env, clsB, ClassName{Name: "Stranger"}))
}

func TestIsValidNode(t *testing.T) {
	env := sixClassEnv()
	for _, node := range env.Nodes() {
		assert.True(t, IsValidNode(env, node), "node %s", node)
	}
	assert.False(t, IsValidNode(env, ClassName{Name: "Stranger"}))
}
