package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the interpreter and chordpro script are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := app.newGenerator()
			out := cmd.OutOrStdout()

			var errs []error

			fmt.Fprintf(out, "== interpreter ==\n%s\n", gen.Interpreter())
			if version, err := gen.Probe(cmd.Context()); err != nil {
				fmt.Fprintf(out, "not usable: %v\n\n", err)
				errs = append(errs, err)
			} else if version == "" {
				fmt.Fprintln(out, "ok (no version output)")
				fmt.Fprintln(out)
			} else {
				fmt.Fprintln(out, version)
				fmt.Fprintln(out)
			}

			fmt.Fprintln(out, "== script ==")
			if gen.ScriptPath() == "" {
				fmt.Fprintln(out, "not configured")
			} else {
				fmt.Fprintln(out, gen.ScriptPath())
			}
			if err := gen.CheckScript(); err != nil {
				fmt.Fprintf(out, "not usable: %v\n", err)
				errs = append(errs, err)
			} else {
				fmt.Fprintln(out, "ok")
			}

			if len(errs) > 0 {
				return fmt.Errorf("chordpro is not ready: %w", errors.Join(errs...))
			}
			return nil
		},
	}
}
