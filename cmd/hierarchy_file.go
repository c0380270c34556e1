package cmd

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cottand/grace/typesys"
)

// The hierarchy file format: one entry per class, each with the classes it
// extends and its own declared members. Types are structured nodes rather
// than a string grammar:
//
//	classes:
//	  Point:
//	    members:
//	      clone: {fn: {domain: [], codomain: Point}}
//	      x: Num
//	  Num: {}
//	  Any: {}
//	  Dyn:
//	    extends: [Point]
//	    members:
//	      x: unknown
//
// A scalar is "top", "bottom", "unknown" (or "?"), or a class name.

type hierarchyFile struct {
	Classes map[string]classEntry `yaml:"classes"`
}

type classEntry struct {
	Extends []string            `yaml:"extends"`
	Members map[string]typeNode `yaml:"members"`
}

type typeNode struct {
	t typesys.Type
}

type funcNode struct {
	Fn struct {
		Domain   []typeNode `yaml:"domain"`
		Codomain typeNode   `yaml:"codomain"`
	} `yaml:"fn"`
}

func (n *typeNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Value {
		case "top":
			n.t = typesys.Top{}
		case "bottom":
			n.t = typesys.Bottom{}
		case "unknown", "?":
			n.t = typesys.Unknown{}
		case "":
			return errors.Errorf("line %d: empty type", value.Line)
		default:
			n.t = typesys.ClassName{Name: value.Value}
		}
		return nil
	case yaml.MappingNode:
		var fn funcNode
		if err := value.Decode(&fn); err != nil {
			return err
		}
		if fn.Fn.Codomain.t == nil {
			return errors.Errorf("line %d: function type needs a codomain", value.Line)
		}
		domain := make([]typesys.Type, len(fn.Fn.Domain))
		for i, d := range fn.Fn.Domain {
			domain[i] = d.t
		}
		n.t = typesys.FuncType{Domain: domain, Codomain: fn.Fn.Codomain.t}
		return nil
	default:
		return errors.Errorf("line %d: cannot read a type from this node", value.Line)
	}
}

// DecodeHierarchy builds an Environment from a YAML hierarchy file. The
// result is not validated; callers gate on typesys.IsValidGraph.
func DecodeHierarchy(file []byte) (*typesys.Environment, error) {
	var decoded hierarchyFile
	if err := yaml.Unmarshal(file, &decoded); err != nil {
		return nil, err
	}
	if len(decoded.Classes) == 0 {
		return nil, errors.New("hierarchy declares no classes")
	}

	var nodes []typesys.ClassName
	var edges []typesys.Edge
	sigma := make(map[string]typesys.Specification, len(decoded.Classes))
	for name, entry := range decoded.Classes {
		nodes = append(nodes, typesys.ClassName{Name: name})
		for _, parent := range entry.Extends {
			edges = append(edges, typesys.Edge{
				Source: typesys.ClassName{Name: name},
				Target: typesys.ClassName{Name: parent},
			})
		}
		var sigs []typesys.Signature
		for varName, node := range entry.Members {
			sigs = append(sigs, typesys.Signature{Var: varName, Type: node.t})
		}
		sigma[name] = typesys.NewSpecification(sigs...)
	}
	// map iteration order would leak into node and edge order otherwise
	slices.SortFunc(nodes, func(a, b typesys.ClassName) int {
		return strings.Compare(a.Name, b.Name)
	})
	slices.SortFunc(edges, func(a, b typesys.Edge) int {
		if c := strings.Compare(a.Source.Name, b.Source.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Target.Name, b.Target.Name)
	})
	return typesys.NewEnvironment(nodes, edges, sigma), nil
}
