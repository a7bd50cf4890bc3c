package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/mrz1836/sigil/internal/errors"
	"github.com/mrz1836/sigil/internal/tui"
)

// reportError prints err through the command's output (styled text or a JSON
// error object) and silences cobra's own error printing so the message is
// not duplicated. The returned error keeps the original chain for exit code
// mapping and is additionally marked with ErrJSONErrorOutput.
func reportError(cmd *cobra.Command, out tui.Output, err error) error {
	if err == nil {
		return nil
	}
	out.Error(err)
	cmd.SilenceErrors = true
	return stderrors.Join(errors.ErrJSONErrorOutput, err)
}
