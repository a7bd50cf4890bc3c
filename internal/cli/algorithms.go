package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/sigil/internal/tui"
)

// AddAlgorithmsCommand adds the algorithms command to the root command.
func AddAlgorithmsCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the available signing algorithms",
		Long: `Display the signing algorithms offered by the service's catalog.

When the service is unreachable the built-in algorithm table is shown
instead, with a warning.

Examples:
  sigil algorithms
  sigil algorithms --output json`,
		Aliases: []string{"algos"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAlgorithms(cmd.Context(), cmd, cmd.OutOrStdout())
		},
	}
	parent.AddCommand(cmd)
}

func runAlgorithms(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	output := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, output)

	svc, err := buildServices(ctx)
	if err != nil {
		return err
	}

	algorithms := svc.catalog.ListAlgorithms(ctx)

	if output == OutputJSON {
		return out.JSON(algorithms)
	}
	tui.WriteAlgorithmTable(w, algorithms)
	return nil
}
