package cli

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJoy/ssss/internal/entropy"
	"github.com/MrJoy/ssss/internal/gfshare"
	"github.com/MrJoy/ssss/internal/output"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

type splitFlags struct {
	threshold int
	number    int
	security  int
	token     string
	hex       bool
	diffusion bool
	mlockall  bool
	quiet     bool
	silent    bool
	recover   bool
	home      string
	format    string
}

func newSplitCommand() *cobra.Command {
	var f splitFlags

	cmd := &cobra.Command{
		Use:           "split",
		Short:         "Split a secret into shares",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSplit(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.threshold, "threshold", "t", 0, "number of shares needed to reconstruct the secret")
	flags.IntVarP(&f.number, "number", "n", 0, "total number of shares to generate")
	flags.IntVarP(&f.security, "security-level", "s", 0, "field degree in bits (0: derive from secret length)")
	flags.StringVarP(&f.token, "token", "w", "", "label prefix attached to every share")
	flags.BoolVarP(&f.hex, "hex", "x", false, "read/print the secret in hex rather than ASCII")
	flags.BoolVarP(&f.diffusion, "diffusion", "D", true, "apply the all-or-nothing diffusion transform (-D to disable)")
	flags.BoolVarP(&f.mlockall, "mlockall", "M", false, "require locking all process memory; abort if it fails")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress informational messages")
	flags.BoolVarP(&f.silent, "QUIET", "Q", false, "suppress informational messages and warnings")
	flags.BoolVarP(&f.recover, "recover", "r", false, "recovery mode: read the known secret, then reconstruct all shares from it plus threshold-1 provided shares")
	flags.StringVar(&f.home, "home", "", "ssss data directory (default: ~/.ssss)")
	flags.StringVarP(&f.format, "output", "o", "auto", "output format: text, json, auto")

	return cmd
}

func runSplit(cmd *cobra.Command, f splitFlags) error {
	rt, err := newRuntime(cmd, f.home, f.format)
	if err != nil {
		return err
	}
	defer rt.close()

	applyConfigDefaults(cmd, rt.cfg, &f.diffusion, &f.hex, &f.token, &f.mlockall, &f.quiet)
	if f.security == 0 && !cmd.Flags().Changed("security-level") && rt.cfg.Security.DefaultLevel != 0 {
		f.security = rt.cfg.Security.DefaultLevel
	}
	if f.silent {
		f.quiet = true
	}

	if err := maybeLockAll(f.mlockall); err != nil {
		return err
	}

	if f.recover {
		return runSplitRecover(cmd, rt, f)
	}

	if !f.quiet {
		level := "dynamic"
		if f.security != 0 {
			level = fmt.Sprintf("%d bit", f.security)
		}
		fmt.Fprintf(os.Stderr, "Generating shares using a (%d,%d) scheme with a %s security level.\n", f.threshold, f.number, level)
	}

	secret, err := readSecretLine(cmd.InOrStdin(), "Enter the secret: ", f.quiet)
	if err != nil {
		return err
	}

	src, err := entropySource()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	result, err := gfshare.Split(gfshare.SplitOptions{
		Threshold:     f.threshold,
		Shares:        f.number,
		SecurityLevel: f.security,
		Hex:           f.hex,
		Diffusion:     f.diffusion,
		Token:         f.token,
		Logger:        rt.logger,
	}, secret, src)
	if err != nil {
		return err
	}

	if !f.silent {
		output.WarnAll(warningStrings(result.Warnings))
	}

	report := output.NewSplitReport(f.threshold, result)
	return output.RenderSplit(rt.formatter, report, !f.silent)
}

// runSplitRecover implements ssss-split's -r flag (spec.md §6): read
// the known secret, then the threshold-1 shares that accompany it, and
// re-emit all N shares of the scheme via gfshare.Recover — identical
// semantics to ssss-combine -r, offered on the split binary too since
// the reference tool exposes recovery from whichever entry point the
// operator already has open.
func runSplitRecover(cmd *cobra.Command, rt *runtime, f splitFlags) error {
	secret, err := readSecretLine(cmd.InOrStdin(), "Enter the known secret: ", f.quiet)
	if err != nil {
		return err
	}

	if !f.quiet {
		fmt.Fprintf(os.Stderr, "Enter %d shares separated by newlines:\n", f.threshold-1)
	}
	lines, err := readShareLines(cmd.InOrStdin(), f.threshold-1, f.quiet)
	if err != nil {
		return err
	}

	result, err := gfshare.Recover(gfshare.RecoverOptions{
		Threshold: f.threshold,
		Shares:    f.number,
		Hex:       f.hex,
		Diffusion: f.diffusion,
		Token:     f.token,
		Logger:    rt.logger,
	}, secret, lines)
	if err != nil {
		return err
	}

	if !f.silent {
		output.WarnAll(warningStrings(result.Warnings))
	}

	report := output.NewSplitReport(f.threshold, result)
	return output.RenderRecover(rt.formatter, report, !f.silent)
}

func warningStrings(ws []gfshare.Warning) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w)
	}
	return out
}

func entropySource() (*entropy.Source, error) {
	src, err := entropy.Open(rand.Reader)
	if err != nil {
		return nil, sigilerr.ErrEntropyOpen
	}
	return src, nil
}
