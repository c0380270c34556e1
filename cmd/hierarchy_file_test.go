package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/grace/typesys"
)

const diamondYaml = `
classes:
  A:
    members:
      x: A
  B:
    extends: [A]
    members:
      x: A
      y: {fn: {domain: [A], codomain: B}}
  C:
    extends: [A]
    members:
      x: A
  D:
    extends: [B, C]
    members:
      x: "?"
`

func TestDecodeHierarchy(t *testing.T) {
	env, err := DecodeHierarchy([]byte(diamondYaml))
	require.NoError(t, err)

	assert.Len(t, env.Nodes(), 4)
	assert.Len(t, env.Edges(), 4)
	assert.True(t, typesys.IsValidGraph(env))

	declared, ok := env.Declared("B")
	require.True(t, ok)
	y, ok := typesys.Proj("y", declared)
	require.True(t, ok)
	assert.True(t, typesys.TypeEqual(
		typesys.NewFunc(typesys.ClassName{Name: "B"}, typesys.ClassName{Name: "A"}), y))

	declared, ok = env.Declared("D")
	require.True(t, ok)
	x, ok := typesys.Proj("x", declared)
	require.True(t, ok)
	assert.True(t, typesys.TypeEqual(typesys.Unknown{}, x))
}

func TestDecodeHierarchyDeterministicOrder(t *testing.T) {
	env, err := DecodeHierarchy([]byte(diamondYaml))
	require.NoError(t, err)

	names := make([]string, 0, len(env.Nodes()))
	for _, node := range env.Nodes() {
		names = append(names, node.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)
}

func TestDecodeHierarchyScalars(t *testing.T) {
	env, err := DecodeHierarchy([]byte(`
classes:
  A:
    members:
      t: top
      b: bottom
      u: unknown
`))
	require.NoError(t, err)
	declared, ok := env.Declared("A")
	require.True(t, ok)

	expect := map[string]typesys.Type{
		"t": typesys.Top{},
		"b": typesys.Bottom{},
		"u": typesys.Unknown{},
	}
	for varName, expected := range expect {
		got, ok := typesys.Proj(varName, declared)
		require.True(t, ok, varName)
		assert.True(t, typesys.TypeEqual(expected, got), varName)
	}
}

func TestDecodeHierarchyErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "no classes", yaml: `classes: {}`},
		{name: "not yaml", yaml: `{{nope`},
		{name: "function without codomain", yaml: `
classes:
  A:
    members:
      f: {fn: {domain: [A]}}
`},
		{name: "sequence as a type", yaml: `
classes:
  A:
    members:
      x: [A, B]
`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := DecodeHierarchy([]byte(testCase.yaml))
			assert.Error(t, err)
		})
	}
}
