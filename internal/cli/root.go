package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/sigil/internal/config"
	"github.com/mrz1836/sigil/internal/errors"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands. Set
// during PersistentPreRunE; access via GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// This function MUST only be called after the root command's
// PersistentPreRunE has executed; before that it returns a zero-value logger
// that discards all output. Safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates the root command for the sigil CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sigil",
		Short: "sigil - document signing and verification client",
		Long: `Sigil signs documents and verifies signatures against a remote
cryptographic service.

The document itself never leaves your machine: sigil computes a digest
locally, chosen to match the selected curve, and submits only the digest's
decimal fingerprint. Algorithm and curve listings come from the service's
catalog and degrade to a built-in table when the service is unreachable.`,
		Version: formatVersion(info),
		// Run displays help when invoked without subcommands. This ensures
		// PersistentPreRunE still runs for flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if err := applyFlagOverrides(cfg, flags); err != nil {
				return err
			}

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet, cfg.Logging)
			globalLoggerMu.Unlock()

			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)

	AddSignCommand(cmd)
	AddVerifyCommand(cmd)
	AddAlgorithmsCommand(cmd)
	AddCurvesCommand(cmd)
	AddHistoryCommand(cmd)

	return cmd
}

// applyFlagOverrides layers per-invocation flag values over the loaded
// configuration. Flags are the highest-precedence layer.
func applyFlagOverrides(cfg *config.Config, flags *GlobalFlags) error {
	if flags.APIURL == "" && flags.Timeout == 0 {
		return nil
	}
	if flags.APIURL != "" {
		cfg.API.BaseURL = flags.APIURL
		// A URL override points every endpoint at the one service.
		cfg.API.CryptoBaseURL = ""
	}
	if flags.Timeout > 0 {
		cfg.API.Timeout = flags.Timeout
	}
	if err := config.Validate(cfg); err != nil {
		return errors.NewExitCode2Error(err)
	}
	return nil
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
