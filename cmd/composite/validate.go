package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezachrisen/composite/connective"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <connective>",
		Short: "Check a logical connective and list the rules it references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connective.Validate(args[0]); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "valid")
			if names := connective.Names(args[0]); len(names) > 0 {
				fmt.Fprintf(out, "rules: %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
}
