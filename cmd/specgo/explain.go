package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"specgo.dev/go/spec"
)

func newExplainCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <spec-name> <value-file>",
		Short: "print the conformance problems for a value, if any",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = mkRunE(c, runExplain)
	return cmd
}

func runExplain(c *Command, args []string) error {
	v, err := loadValue(args[1])
	if err != nil {
		return err
	}
	problems := spec.ExplainData(args[0], v)
	if len(problems) == 0 {
		fmt.Fprintln(c.OutOrStdout(), "ok")
		return nil
	}
	fmt.Fprintln(c.OutOrStdout(), spec.FormatExplain(problems, v))
	return fmt.Errorf("specgo: %d problem(s)", len(problems))
}
