package main

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"specgo.dev/go/spec"
)

func newGenCmd(c *Command) *cobra.Command {
	var n int
	var checkRoundTrip bool

	cmd := &cobra.Command{
		Use:   "gen <spec-name>",
		Short: "generate example values conforming to a registered spec",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().IntVar(&n, "n", 10, "number of examples to generate")
	cmd.Flags().BoolVar(&checkRoundTrip, "check-round-trip", false, "verify unform(conform(v)) == v for each example")
	cmd.RunE = mkRunE(c, func(c *Command, args []string) error {
		return runGen(c, args[0], n, checkRoundTrip)
	})
	return cmd
}

func runGen(c *Command, name string, n int, checkRoundTrip bool) error {
	results, err := spec.Exercise(name, n, nil)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	out := c.OutOrStdout()
	p.Fprintf(out, "generated %d example(s) for %s\n", len(results), name)
	for i, r := range results {
		fmt.Fprintf(out, "%d: %# v\n", i, pretty.Formatter(r.Value))
		if !checkRoundTrip {
			continue
		}
		back := spec.Unform(name, r.Conformed)
		if diff := cmp.Diff(r.Value, back); diff != "" {
			return fmt.Errorf("specgo: round trip mismatch for example %d (-want +got):\n%s", i, diff)
		}
	}
	return nil
}
