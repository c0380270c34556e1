package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cottand/grace/cmd"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "grace [subcommand]",
	Short:        "grace\n evidence-based gradual typing for class hierarchies",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
}
