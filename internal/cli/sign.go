package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/sigil/internal/domain"
	"github.com/mrz1836/sigil/internal/errors"
	"github.com/mrz1836/sigil/internal/signing"
	"github.com/mrz1836/sigil/internal/tui"
)

// signFlags holds the flags for the sign command.
type signFlags struct {
	inPath    string
	text      string
	keyPath   string
	algorithm string
	curve     string
}

// AddSignCommand adds the sign command to the root command.
func AddSignCommand(parent *cobra.Command) {
	flags := &signFlags{}

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a document",
		Long: `Sign a document with a private key.

The document is digested locally with the hash matching the chosen curve,
and only the digest's decimal fingerprint is sent to the service together
with the key material.

Examples:
  sigil sign --in contract.pdf --key ec.pem --curve secp256k1
  sigil sign --text "hello" --key ec.pem              # default curve
  cat doc.bin | sigil sign --in - --key - < ec.pem    # both from stdin is an error
  sigil sign --in doc.bin --key ec.pem --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSign(cmd.Context(), cmd, flags, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.inPath, "in", "", "path to the document file (- for stdin)")
	cmd.Flags().StringVar(&flags.text, "text", "", "literal document text")
	cmd.Flags().StringVar(&flags.keyPath, "key", "", "path to the PEM private key (- for stdin)")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "ECDSA", "signing algorithm id")
	cmd.Flags().StringVar(&flags.curve, "curve", "", "curve name (default: first enabled curve)")
	_ = cmd.MarkFlagRequired("key")

	parent.AddCommand(cmd)
}

func runSign(ctx context.Context, cmd *cobra.Command, flags *signFlags, stdin io.Reader, stdout io.Writer) error {
	logger := GetLogger()
	output := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(stdout, output)

	if flags.inPath == "-" && flags.keyPath == "-" {
		return errors.NewExitCode2Error(
			errors.Wrap(errors.ErrValidation, "--in - and --key - cannot both read stdin"))
	}

	document, err := readDocument(flags.inPath, flags.text, stdin)
	if err != nil {
		return err
	}
	key, err := readKeyMaterial(flags.keyPath, stdin)
	if err != nil {
		return err
	}

	svc, err := buildServices(ctx)
	if err != nil {
		return err
	}

	curve, err := resolveCurve(ctx, svc, flags.algorithm, flags.curve)
	if err != nil {
		return reportError(cmd, out, errors.NewExitCode2Error(err))
	}

	result, err := svc.signer.Sign(ctx, signing.SignInput{
		Document:   document,
		PrivateKey: key,
		Curve:      curve,
	})
	if err != nil {
		logger.Debug().Err(err).Msg("signing failed")
		return reportError(cmd, out, err)
	}

	if output == OutputJSON {
		return out.JSON(result)
	}
	out.Success("document signed")
	tui.WriteSignResult(stdout, result)
	return nil
}

// resolveCurve picks the curve to operate on. An explicit curve name is
// looked up under the algorithm; otherwise the resolver walks the catalog
// and settles on the algorithm's first enabled curve.
func resolveCurve(ctx context.Context, svc *services, algorithmID, curveName string) (domain.Curve, error) {
	if curveName != "" {
		return svc.catalog.FindCurve(ctx, algorithmID, curveName)
	}

	snapshot := svc.resolver.SelectAlgorithm(ctx, algorithmID)
	if !snapshot.CurveSelected {
		return domain.Curve{}, errors.Wrapf(errors.ErrNoCurveSelected,
			"algorithm %q has no enabled curves", algorithmID)
	}
	return snapshot.Curve, nil
}
