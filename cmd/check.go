// Package cmd holds the CLI surface. The core library never does I/O; these
// commands are the external collaborator that builds an Environment from a
// hierarchy file and decides which queries to run.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cottand/grace/evidence"
	"github.com/cottand/grace/internal/log"
	"github.com/cottand/grace/typesys"
)

var logger = log.DefaultLogger.With("section", "cmd")

var CheckCmd = &cobra.Command{
	Use:          "check hierarchy.yaml",
	Short:        "Validate a class hierarchy and optionally compute evidence",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	evidencePair *[]string
	showSpecs    *bool
)

func init() {
	evidencePair = CheckCmd.Flags().StringSliceP("evidence", "e", nil, "two class names to compute interior evidence between")
	showSpecs = CheckCmd.Flags().BoolP("specs", "s", false, "print each class's resolved specification")
}

func runCheck(cobraCmd *cobra.Command, args []string) error {
	file, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	env, err := DecodeHierarchy(file)
	if err != nil {
		return errors.Wrapf(err, "decoding %s", args[0])
	}

	if !typesys.IsValidGraph(env) {
		for _, node := range env.Nodes() {
			if !typesys.IsValidNode(env, node) {
				logger.Warn("invalid node", slog.String("class", node.Name))
			}
		}
		if !typesys.Acyclic(env) {
			logger.Warn("hierarchy contains a cycle")
		}
		return errors.Errorf("%s: hierarchy is not valid", args[0])
	}
	fmt.Printf("%s: hierarchy valid (%d classes, %d edges)\n", args[0], len(env.Nodes()), len(env.Edges()))

	if *showSpecs {
		for _, node := range env.Nodes() {
			fmt.Printf("  %s: %s\n", node.Name, typesys.GetSpecifications(env, node))
		}
	}

	if len(*evidencePair) > 0 {
		if len(*evidencePair) != 2 {
			return errors.Errorf("--evidence wants exactly two class names, got %d", len(*evidencePair))
		}
		return checkEvidence(env, (*evidencePair)[0], (*evidencePair)[1])
	}
	return nil
}

func checkEvidence(env *typesys.Environment, name1, name2 string) error {
	c1 := typesys.ClassName{Name: name1}
	c2 := typesys.ClassName{Name: name2}
	for _, c := range []typesys.ClassName{c1, c2} {
		if !env.HasNode(c) {
			return errors.Errorf("no such class: %s", c.Name)
		}
	}
	complete := evidence.InteriorClassSpecification(env,
		typesys.GetSpecifications(env, c1),
		typesys.GetSpecifications(env, c2),
	)
	if complete.IsEmpty() {
		fmt.Printf("%s ~ %s: no evidence (gradually incompatible)\n", name1, name2)
		return nil
	}
	fmt.Printf("%s ~ %s: %s\n", name1, name2, complete)
	return nil
}
