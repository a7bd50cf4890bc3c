package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/sigil/internal/errors"
	"github.com/mrz1836/sigil/internal/signing"
	"github.com/mrz1836/sigil/internal/tui"
)

// verifyFlags holds the flags for the verify command.
type verifyFlags struct {
	inPath    string
	text      string
	signature string
	sigPath   string
	pubPath   string
	algorithm string
	curve     string
}

// AddVerifyCommand adds the verify command to the root command.
func AddVerifyCommand(parent *cobra.Command) {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a document signature",
		Long: `Verify a signature against a document and public key.

The document is digested locally exactly as during signing; the fingerprint,
signature, and public key are submitted to the service. An invalid signature
is a completed verification, not an error: the command reports the outcome
and exits zero.

Examples:
  sigil verify --in contract.pdf --sig-file contract.sig --pubkey ec.pub --curve secp256k1
  sigil verify --text "hello" --signature "MEUCIQ..." --pubkey ec.pub --curve secp256k1
  sigil verify --in doc.bin --sig-file doc.sig --pubkey ec.pub --curve secp256k1 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd.Context(), cmd, flags, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.inPath, "in", "", "path to the document file (- for stdin)")
	cmd.Flags().StringVar(&flags.text, "text", "", "literal document text")
	cmd.Flags().StringVar(&flags.signature, "signature", "", "signature value")
	cmd.Flags().StringVar(&flags.sigPath, "sig-file", "", "path to a file holding the signature")
	cmd.Flags().StringVar(&flags.pubPath, "pubkey", "", "path to the PEM public key")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "ECDSA", "signing algorithm id")
	cmd.Flags().StringVar(&flags.curve, "curve", "", "curve name the signature was made under")
	cmd.MarkFlagsMutuallyExclusive("signature", "sig-file")
	_ = cmd.MarkFlagRequired("pubkey")
	_ = cmd.MarkFlagRequired("curve")

	parent.AddCommand(cmd)
}

func runVerify(ctx context.Context, cmd *cobra.Command, flags *verifyFlags, stdin io.Reader, stdout io.Writer) error {
	logger := GetLogger()
	output := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(stdout, output)

	document, err := readDocument(flags.inPath, flags.text, stdin)
	if err != nil {
		return err
	}

	signature, err := resolveSignature(flags.signature, flags.sigPath)
	if err != nil {
		return err
	}

	publicKey, err := readKeyMaterial(flags.pubPath, stdin)
	if err != nil {
		return err
	}

	svc, err := buildServices(ctx)
	if err != nil {
		return err
	}

	result, err := svc.signer.Verify(ctx, signing.VerifyInput{
		Document:    document,
		Signature:   signature,
		PublicKey:   publicKey,
		AlgorithmID: flags.algorithm,
		CurveName:   flags.curve,
	})
	if err != nil {
		logger.Debug().Err(err).Msg("verification failed")
		return reportError(cmd, out, err)
	}

	if output == OutputJSON {
		return out.JSON(result)
	}
	tui.WriteVerifyResult(stdout, result)
	return nil
}

// resolveSignature returns the signature from either the literal flag or a
// file. Exactly one source must be provided.
func resolveSignature(literal, path string) (string, error) {
	if literal != "" {
		return literal, nil
	}
	if path == "" {
		return "", errors.NewExitCode2Error(
			errors.Wrap(errors.ErrEmptyValue, "one of --signature or --sig-file is required"))
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the user's own flag
	if err != nil {
		return "", errors.Wrap(err, "failed to read signature file")
	}
	signature := strings.TrimSpace(string(data))
	if signature == "" {
		return "", errors.Wrap(errors.ErrEmptyValue, "signature file is empty")
	}
	return signature, nil
}
