package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"specgo.dev/go/spec"
)

func newValidateCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spec-name> <value-file>",
		Short: "report whether a value conforms to a registered spec",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = mkRunE(c, runValidate)
	return cmd
}

func runValidate(c *Command, args []string) error {
	v, err := loadValue(args[1])
	if err != nil {
		return err
	}
	if spec.Valid(args[0], v) {
		fmt.Fprintln(c.OutOrStdout(), "ok")
		return nil
	}
	return fmt.Errorf("specgo: %s does not conform to %s", args[1], args[0])
}
