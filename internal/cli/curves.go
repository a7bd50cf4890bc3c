package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/sigil/internal/tui"
)

// AddCurvesCommand adds the curves command to the root command.
func AddCurvesCommand(parent *cobra.Command) {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "curves",
		Short: "List the enabled curves for an algorithm",
		Long: `Display the curves enabled for a signing algorithm.

Disabled curves are never listed; they cannot be selected for signing or
verification. When the service is unreachable the built-in curve table for
the algorithm is shown instead.

Examples:
  sigil curves                       # curves for the default algorithm
  sigil curves --algorithm RSA
  sigil curves --algorithm EdDSA -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCurves(cmd.Context(), cmd, cmd.OutOrStdout(), algorithm)
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "ECDSA", "algorithm id to list curves for")
	parent.AddCommand(cmd)
}

func runCurves(ctx context.Context, cmd *cobra.Command, w io.Writer, algorithmID string) error {
	output := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, output)

	svc, err := buildServices(ctx)
	if err != nil {
		return err
	}

	curves := svc.catalog.ListCurves(ctx, algorithmID)

	if output == OutputJSON {
		return out.JSON(curves)
	}
	if len(curves) == 0 {
		out.Warning("no enabled curves for algorithm " + algorithmID)
		return nil
	}
	tui.WriteCurveTable(w, curves)
	return nil
}
