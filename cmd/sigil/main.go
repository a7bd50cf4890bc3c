// Package main provides the entry point for the sigil CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/sigil/internal/cli"
	"github.com/mrz1836/sigil/internal/signal"
)

// Build information set via ldflags.
var (
	version = "" //nolint:gochecknoglobals // Set at build time
	commit  = "" //nolint:gochecknoglobals // Set at build time
	date    = "" //nolint:gochecknoglobals // Set at build time
)

func main() {
	handler := signal.NewHandler(context.Background())

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()
	handler.Stop()
	os.Exit(cli.ExitCodeForError(err))
}
