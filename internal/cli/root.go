// Package cli implements the ssss command-line surface: flag parsing,
// terminal prompting, and the glue between internal/gfshare and
// internal/output. It mirrors ssss.c's getopt-based flags (spec.md
// §6) as cobra/pflag flags on two single-purpose commands, plus a
// supplemental "ssss" binary that dispatches to either by subcommand
// (SPEC_FULL.md supplemented features). The ssss-split and
// ssss-combine binaries pick their command from argv[0] through
// ExecuteNamed, the way the original tool dispatches by executable
// name.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJoy/ssss/internal/config"
	"github.com/MrJoy/ssss/internal/output"
	"github.com/MrJoy/ssss/internal/securemem"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// BuildInfo carries version metadata injected at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// runtime holds the process-wide state initialized once per
// invocation: configuration, logger, and output formatter. It is
// threaded through explicitly rather than read from package globals
// in the command bodies; each command's RunE assembles it by calling
// newRuntime.
type runtime struct {
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
}

func newRuntime(cmd *cobra.Command, homeFlag, outputFlag string) (*runtime, error) {
	home := homeFlag
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	cfg, err := config.Load(config.Path(home))
	if err != nil {
		cfg = config.Defaults()
		cfg.Home = home
	}
	config.ApplyEnvironment(cfg, os.Getenv)

	if homeFlag != "" {
		cfg.Home = homeFlag
	}
	if strings.HasPrefix(cfg.Home, "~/") {
		if userHome, homeErr := os.UserHomeDir(); homeErr == nil {
			cfg.Home = filepath.Join(userHome, cfg.Home[2:])
		}
	}
	if outputFlag != "" && outputFlag != "auto" {
		cfg.Output.Format = outputFlag
	}

	logLevel := config.ParseLogLevel(cfg.Logging.Level)
	logger, err := config.NewLogger(logLevel, cfg.Logging.File)
	if err != nil {
		logger = config.NullLogger()
	}

	out := cmd.OutOrStdout()
	explicit := output.ParseFormat(cfg.Output.Format)
	formatter := output.NewFormatter(output.DetectFormat(out, explicit), out)

	return &runtime{cfg: cfg, logger: logger, formatter: formatter}, nil
}

func (rt *runtime) close() {
	if rt.logger != nil {
		_ = rt.logger.Close()
	}
}

// applyConfigDefaults fills in the split/combine flags shared by both
// commands (diffusion, hex, token, mlockall, quiet) from cfg whenever
// the corresponding flag was left at its default, i.e. wasn't given
// explicitly on the command line. cfg has already been through
// config.ApplyEnvironment, so this is where the precedence "flags
// override environment, which overrides the config file, which
// overrides built-in defaults" actually takes effect.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config, diffusion, hex *bool, token *string, mlockall, quiet *bool) {
	flags := cmd.Flags()
	if !flags.Changed("diffusion") {
		*diffusion = cfg.Security.Diffusion
	}
	if !flags.Changed("hex") {
		*hex = cfg.Output.Hex
	}
	if !flags.Changed("token") && *token == "" {
		*token = cfg.Security.DefaultToken
	}
	if !flags.Changed("mlockall") {
		*mlockall = cfg.Security.RequireMemoryLock
	}
	if !flags.Changed("quiet") {
		*quiet = cfg.Output.Quiet
	}
}

// Execute builds and runs the root "ssss" command, which dispatches to
// split or combine as explicit subcommands. It does not look at
// argv[0]; the name-based dispatch of ssss-split/ssss-combine is
// ExecuteNamed.
func Execute(info BuildInfo) error {
	_ = securemem.DropPrivileges()
	root := newRootCommand(info)
	if err := root.Execute(); err != nil {
		formatErr(root, err)
		return err
	}
	return nil
}

func newRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "ssss",
		Short:         "Split and combine secrets with Shamir's Secret Sharing Scheme",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       info.Version,
	}

	root.AddCommand(newSplitCommand())
	root.AddCommand(newCombineCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ssss version %s (%s, built %s)\n", info.Version, info.Commit, info.Date)
		},
	})

	return root
}

// ExecuteNamed runs the command appropriate to the executable's own
// name, per spec.md §6's argv[0] dispatch: "ssss-split" and
// "ssss-combine" each behave as if that subcommand had been invoked
// directly, with no "split"/"combine" word on the command line.
func ExecuteNamed(argv0 string, args []string) int {
	_ = securemem.DropPrivileges()

	var cmd *cobra.Command
	switch base := filepath.Base(argv0); {
	case strings.Contains(base, "combine"):
		cmd = newCombineCommand()
	default:
		cmd = newSplitCommand()
	}

	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		formatErr(cmd, err)
		return sigilerr.ExitCode(err)
	}
	return sigilerr.ExitSuccess
}

func formatErr(cmd *cobra.Command, err error) {
	if fmtErr := output.FormatError(cmd.ErrOrStderr(), err, output.FormatText); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v.\n", err)
	}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	return sigilerr.ExitCode(err)
}

// maybeLockAll implements -M: request that every page of the
// process's memory be locked, refusing to run if the lock can't be
// obtained (spec.md §6), unlike the default best-effort per-buffer
// locking in internal/securemem.
func maybeLockAll(enabled bool) error {
	if !enabled {
		return nil
	}
	ok, reason := securemem.LockAll()
	if !ok {
		return sigilerr.WithDetail(sigilerr.ErrUnknown, "mlockall", reason)
	}
	return nil
}
