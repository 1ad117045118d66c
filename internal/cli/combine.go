package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJoy/ssss/internal/gfshare"
	"github.com/MrJoy/ssss/internal/output"
)

type combineFlags struct {
	threshold int
	number    int
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

func newCombineCommand() *cobra.Command {
	var f combineFlags

	cmd := &cobra.Command{
		Use:           "combine",
		Short:         "Combine shares to recover a secret",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCombine(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.threshold, "threshold", "t", 0, "number of shares required")
	flags.IntVarP(&f.number, "number", "n", 0, "total shares to re-emit in recovery mode")
	flags.StringVarP(&f.token, "token", "w", "", "label prefix attached to re-emitted shares (recovery mode)")
	flags.BoolVarP(&f.hex, "hex", "x", false, "read/print the secret in hex rather than ASCII")
	flags.BoolVarP(&f.diffusion, "diffusion", "D", true, "undo the all-or-nothing diffusion transform (-D to disable)")
	flags.BoolVarP(&f.mlockall, "mlockall", "M", false, "require locking all process memory; abort if it fails")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress informational messages")
	flags.BoolVarP(&f.silent, "QUIET", "Q", false, "suppress informational messages and warnings")
	flags.BoolVarP(&f.recover, "recover", "r", false, "recovery mode: regenerate all shares from the secret plus threshold-1 shares")
	flags.StringVar(&f.home, "home", "", "ssss data directory (default: ~/.ssss)")
	flags.StringVarP(&f.format, "output", "o", "auto", "output format: text, json, auto")

	return cmd
}

func runCombine(cmd *cobra.Command, f combineFlags) error {
	rt, err := newRuntime(cmd, f.home, f.format)
	if err != nil {
		return err
	}
	defer rt.close()

	applyConfigDefaults(cmd, rt.cfg, &f.diffusion, &f.hex, &f.token, &f.mlockall, &f.quiet)
	if f.silent {
		f.quiet = true
	}

	if err := maybeLockAll(f.mlockall); err != nil {
		return err
	}

	if f.recover {
		return runRecover(cmd, rt, f)
	}

	if !f.quiet {
		fmt.Fprintf(os.Stderr, "Enter %d shares separated by newlines:\n", f.threshold)
	}

	lines, err := readShareLines(cmd.InOrStdin(), f.threshold, f.quiet)
	if err != nil {
		return err
	}

	secret, warnings, err := gfshare.Combine(gfshare.CombineOptions{
		Threshold: f.threshold,
		Hex:       f.hex,
		Diffusion: f.diffusion,
		Logger:    rt.logger,
	}, lines)
	if err != nil {
		return err
	}

	if !f.silent {
		output.WarnAll(warningStrings(warnings))
	}

	if !f.quiet {
		fmt.Fprint(os.Stderr, "Resulting secret: ")
	}
	return output.RenderCombine(rt.formatter, secret, warningStrings(warnings))
}

func runRecover(cmd *cobra.Command, rt *runtime, f combineFlags) error {
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
