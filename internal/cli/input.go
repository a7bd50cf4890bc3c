package cli

import (
	"io"
	"os"
	"strings"

	"github.com/mrz1836/sigil/internal/errors"
)

// readDocument resolves the document content from the --in / --text flags.
// Exactly one must be provided. A path of "-" reads stdin.
func readDocument(inPath, text string, stdin io.Reader) ([]byte, error) {
	switch {
	case inPath != "" && text != "":
		return nil, errors.NewExitCode2Error(
			errors.Wrap(errors.ErrValidation, "--in and --text are mutually exclusive"))
	case inPath == "" && text == "":
		return nil, errors.NewExitCode2Error(errors.ErrEmptyDocument)
	case text != "":
		return []byte(text), nil
	case inPath == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read document from stdin")
		}
		return data, nil
	default:
		data, err := os.ReadFile(inPath) //nolint:gosec // Path comes from the user's own flag
		if err != nil {
			return nil, errors.Wrap(err, "failed to read document file")
		}
		return data, nil
	}
}

// readKeyMaterial reads a PEM key from a file, or from stdin when the path
// is "-". The content is trimmed but otherwise passed through untouched.
func readKeyMaterial(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return "", errors.NewExitCode2Error(errors.Wrap(errors.ErrEmptyValue, "key path"))
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // Path comes from the user's own flag
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read key")
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", errors.Wrap(errors.ErrEmptyValue, "key file is empty")
	}
	return key, nil
}
