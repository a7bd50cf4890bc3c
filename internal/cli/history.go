package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/sigil/internal/errors"
	"github.com/mrz1836/sigil/internal/history"
	"github.com/mrz1836/sigil/internal/tui"
)

// AddHistoryCommand adds the history command and its subcommands.
func AddHistoryCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past sign and verify operations",
		Long: `Display locally recorded signing and verification operations,
newest first. Records hold fingerprints and public data only; private keys
are never recorded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addHistorySignCmd(cmd)
	addHistoryVerifyCmd(cmd)
	parent.AddCommand(cmd)
}

func addHistorySignCmd(parent *cobra.Command) {
	var limit int

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Show past signing operations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistorySign(cmd.Context(), cmd, cmd.OutOrStdout(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum records to show (default from config)")
	parent.AddCommand(cmd)
}

func addHistoryVerifyCmd(parent *cobra.Command) {
	var limit int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Show past verification operations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryVerify(cmd.Context(), cmd, cmd.OutOrStdout(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum records to show (default from config)")
	parent.AddCommand(cmd)
}

// historyStore builds the history store, honoring the config switch.
func historyStore(ctx context.Context) (*history.FileStore, int, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !cfg.History.Enabled {
		return nil, 0, errors.ErrHistoryDisabled
	}
	store, err := history.NewFileStore(cfg.History.Dir)
	if err != nil {
		return nil, 0, err
	}
	return store, cfg.History.Limit, nil
}

func runHistorySign(ctx context.Context, cmd *cobra.Command, w io.Writer, limit int) error {
	output := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, output)

	store, defaultLimit, err := historyStore(ctx)
	if err != nil {
		return reportError(cmd, out, err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	records, err := store.ListSigns(limit)
	if err != nil {
		return reportError(cmd, out, err)
	}

	if output == OutputJSON {
		return out.JSON(records)
	}
	if len(records) == 0 {
		out.Info("no signing history yet")
		return nil
	}

	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "WHEN", Width: 20},
		{Name: "CURVE", Width: 12},
		{Name: "DIGEST", Width: 8},
		{Name: "SIGNING ID", Width: 36},
	})
	table.WriteHeader()
	for _, record := range records {
		table.WriteRow(
			record.RecordedAt.Local().Format(time.DateTime),
			record.CurveName,
			record.Digest,
			record.SigningID,
		)
	}
	return nil
}

func runHistoryVerify(ctx context.Context, cmd *cobra.Command, w io.Writer, limit int) error {
	output := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, output)

	store, defaultLimit, err := historyStore(ctx)
	if err != nil {
		return reportError(cmd, out, err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	records, err := store.ListVerifies(limit)
	if err != nil {
		return reportError(cmd, out, err)
	}

	if output == OutputJSON {
		return out.JSON(records)
	}
	if len(records) == 0 {
		out.Info("no verification history yet")
		return nil
	}

	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "WHEN", Width: 20},
		{Name: "VALID", Width: 5},
		{Name: "CURVE", Width: 12},
		{Name: "DIGEST", Width: 8},
	})
	table.WriteHeader()
	for _, record := range records {
		valid := "no"
		if record.IsValid {
			valid = "yes"
		}
		table.WriteRow(
			record.RecordedAt.Local().Format(time.DateTime),
			valid,
			record.CurveName,
			record.Digest,
		)
	}
	return nil
}
