package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"specgo.dev/go/internal/specconfig"
	"specgo.dev/go/internal/specdebug"
)

// Command wraps a *cobra.Command with the state shared by every
// subcommand's RunE: the specconfig file loaded from --config, if any.
type Command struct {
	*cobra.Command
	root *cobra.Command

	configPath string
}

type runFunction func(cmd *Command, args []string) error

// mkRunE adapts a runFunction to cobra's RunE signature, applying the
// --config file (if given) before f runs.
func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		if err := specdebug.Init(); err != nil {
			return err
		}
		if c.configPath != "" {
			file, err := specconfig.Load(c.configPath)
			if err != nil {
				return err
			}
			if err := file.Apply(); err != nil {
				return err
			}
		}
		return f(c, args)
	}
}

func (c *Command) Stderr() io.Writer {
	if c.Command == nil {
		return os.Stderr
	}
	return c.Command.ErrOrStderr()
}

func printError(c *Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(c.Stderr(), err)
}

// newRootCmd builds the top-level specgo command and wires its
// subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "specgo",
		Short: "validate, explain, and generate values against registered specs",

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	c := &Command{Command: root, root: root}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a specconfig YAML file of registry aliases")

	for _, sub := range []*cobra.Command{
		newValidateCmd(c),
		newExplainCmd(c),
		newGenCmd(c),
	} {
		root.AddCommand(sub)
	}

	return root
}
