package output

import (
	"github.com/MrJoy/ssss/internal/gfshare"
)

// SplitReport is the JSON shape of a completed split, and the data a
// text render walks over line by line.
type SplitReport struct {
	SecurityLevel int      `json:"security_level"`
	Threshold     int      `json:"threshold"`
	Shares        []string `json:"shares"`
	Warnings      []string `json:"warnings,omitempty"`
}

// NewSplitReport builds a SplitReport from a gfshare.Result.
func NewSplitReport(threshold int, result *gfshare.Result) SplitReport {
	lines := make([]string, len(result.Shares))
	for i, s := range result.Shares {
		lines[i] = s.Text
	}
	warnings := make([]string, len(result.Warnings))
	for i, w := range result.Warnings {
		warnings[i] = string(w)
	}
	return SplitReport{
		SecurityLevel: result.SecurityLevel,
		Threshold:     threshold,
		Shares:        lines,
		Warnings:      warnings,
	}
}

// RenderSplit writes a split result through f: one share per line in
// text mode (so scripts can pipe it straight into a file), or the
// full structured report in JSON mode. When renderQR is set and f's
// writer is a terminal, each share is additionally rendered as a
// scannable QR code (SPEC_FULL.md supplemented features) — skipped in
// JSON mode and whenever output isn't a TTY, so piped or redirected
// output never gets QR noise mixed in.
func RenderSplit(f *Formatter, report SplitReport, renderQR bool) error {
	if f.IsJSON() {
		return f.Print(report)
	}
	for _, line := range report.Shares {
		if err := f.Println(line); err != nil {
			return err
		}
		if renderQR {
			if err := RenderQR(f.Writer(), line, DefaultQRConfig()); err != nil {
				return err
			}
		}
	}
	return nil
}

// CombineReport is the JSON shape of a completed combine; recovery
// output is rendered from a SplitReport (RenderRecover).
type CombineReport struct {
	Secret   string   `json:"secret,omitempty"`
	Shares   []string `json:"shares,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// RenderCombine writes a recovered secret through f.
func RenderCombine(f *Formatter, secret string, warnings []string) error {
	if f.IsJSON() {
		return f.Print(CombineReport{Secret: secret, Warnings: warnings})
	}
	return f.Println(secret)
}

// RenderRecover writes a regenerated share set through f.
func RenderRecover(f *Formatter, report SplitReport, renderQR bool) error {
	return RenderSplit(f, report, renderQR)
}

// WarnAll prints every warning to stderr via Warn, in share-generation
// order, so -Q (quiet) can still be layered on top by the caller
// choosing not to call this at all.
func WarnAll(warnings []string) {
	for _, w := range warnings {
		Warn(w)
	}
}
