// Package gfshare implements C9 (share generation) and C10 (share
// combination and recovery) from spec.md §4.9-4.10: the orchestration
// layer that drives internal/gf, internal/diffusion, and
// internal/entropy through the split and combine pipelines. It holds
// no I/O of its own — callers (internal/cli) own prompting and echo
// control — so every function here takes already-read strings and
// returns structured results or a *errors.SSSSError.
package gfshare

import (
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	sanitize "github.com/mrz1836/go-sanitize"

	"github.com/MrJoy/ssss/internal/config"
	"github.com/MrJoy/ssss/internal/diffusion"
	"github.com/MrJoy/ssss/internal/entropy"
	"github.com/MrJoy/ssss/internal/gf"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// MaxTokenLen is the longest share label token accepted, matching
// ssss.c's MAXTOKENLEN.
const MaxTokenLen = 128

// SplitOptions configures one share-generation run.
type SplitOptions struct {
	Threshold     int    // K: shares required to reconstruct
	Shares        int    // N: shares to generate
	SecurityLevel int    // field degree in bits; 0 selects a level dynamically from secret length
	Hex           bool   // secret is given (and shares printed) as hex rather than text
	Diffusion     bool   // apply the all-or-nothing transform to the secret
	Token         string // optional label prefix for every share

	// Logger receives operational debug events (field degree chosen,
	// share counts, warnings raised). It never sees secret material. A
	// nil Logger is valid and simply discards everything.
	Logger *config.Logger
}

// Share is one generated share, already formatted as
// "[token-]index-payload" the way spec.md §4.9 and §6 describe.
type Share struct {
	Index   int
	Payload string
	Text    string
}

// Warning mirrors gf.Warning for orchestration-level non-fatal
// conditions (spec.md §7): diffusion skipped because the field is too
// small, or the codec padded/flagged the secret on import.
type Warning string

// Result is the outcome of a successful Split.
type Result struct {
	SecurityLevel int
	Shares        []Share
	Warnings      []Warning
}

// Validate checks opts against the constraints ssss-split enforces
// before ever touching the secret or entropy source (spec.md §6).
func (o SplitOptions) Validate() error {
	if o.Threshold < 2 {
		return sigilerr.WithDetail(sigilerr.ErrInvalidSyntax, "reason", "invalid threshold value")
	}
	if o.Shares < o.Threshold {
		return sigilerr.WithDetail(sigilerr.ErrInvalidSyntax, "reason", "number of shares smaller than threshold")
	}
	if o.SecurityLevel != 0 && !gf.Valid(o.SecurityLevel) {
		return sigilerr.WithDetail(sigilerr.ErrInvalidSecurityLevel, "reason", "invalid security level")
	}
	if len(o.Token) > MaxTokenLen {
		return sigilerr.WithDetail(sigilerr.ErrInvalidSyntax, "reason", "token too long")
	}
	return nil
}

// Split runs the full share-generation pipeline over secret (already
// read from the terminal by the caller, with echo handled there): it
// derives the field degree if opts.SecurityLevel is 0, imports the
// secret as the constant coefficient, optionally diffuses it, draws
// the remaining K-1 coefficients from src, and evaluates the
// polynomial at x=1..N to produce N shares.
//
// Every coefficient is zeroed before Split returns, on both the
// success and error paths.
func Split(opts SplitOptions, secret string, src *entropy.Source) (*Result, error) {
	opts.Token = sanitizeToken(opts.Token)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	level := opts.SecurityLevel
	if level == 0 {
		if opts.Hex {
			level = 4 * ((len(secret) + 1) &^ 1)
		} else {
			level = 8 * len(secret)
		}
		if !gf.Valid(level) {
			return nil, sigilerr.WithDetail(sigilerr.ErrInvalidSecurityLevel, "reason", "security level invalid (secret too long?)")
		}
	}
	opts.Logger.Debug("split: security level selected",
		slog.Int("level", level), slog.Int("threshold", opts.Threshold), slog.Int("shares", opts.Shares))

	p, err := gf.New(level)
	if err != nil {
		return nil, err
	}

	coeff := make([]*big.Int, opts.Threshold)
	for i := range coeff {
		coeff[i] = new(big.Int)
	}
	defer zeroCoefficients(coeff)

	var warnings []Warning
	warn, err := p.Import(coeff[0], secret, opts.Hex)
	if err != nil {
		return nil, err
	}
	if warn != gf.WarnNone {
		warnings = append(warnings, Warning(warn))
	}

	if opts.Diffusion {
		if diffusion.Applicable(level) {
			coeff[0].Set(diffusion.Encode(coeff[0], level))
		} else {
			warnings = append(warnings, Warning("security level too small for the diffusion layer"))
		}
	}

	for i := 1; i < opts.Threshold; i++ {
		buf, err := src.ReadSecure(level / 8)
		if err != nil {
			return nil, err
		}
		coeff[i].SetBytes(buf.Bytes())
		buf.Release()
	}

	fmtLen := digitWidth(opts.Shares)
	shares := make([]Share, opts.Shares)
	for i := 0; i < opts.Shares; i++ {
		x := big.NewInt(int64(i + 1))
		y := p.Horner(opts.Threshold, x, coeff)

		var payload strings.Builder
		if _, err := p.Print(&payload, y, true); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSuffix(payload.String(), "\n")
		shares[i] = Share{
			Index:   i + 1,
			Payload: trimmed,
			Text:    formatShare(opts.Token, i+1, fmtLen, trimmed),
		}
	}

	for _, w := range warnings {
		opts.Logger.Debug("split: warning raised", slog.String("warning", string(w)))
	}
	opts.Logger.Debug("split: shares generated", slog.Int("count", opts.Shares))

	return &Result{SecurityLevel: level, Shares: shares, Warnings: warnings}, nil
}

// sanitizeToken strips copy-paste artifacts (newlines, control bytes)
// from a -w/--token value before it's folded into every share label,
// the same role go-sanitize's SingleLine plays for config strings in
// internal/config/env.go.
func sanitizeToken(token string) string {
	return sanitize.SingleLine(strings.TrimSpace(token))
}

// formatShare renders one share line per spec.md §4.9:
// "[token-]%0*d-%s".
func formatShare(token string, index, width int, payload string) string {
	var b strings.Builder
	if token != "" {
		b.WriteString(token)
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, "%0*d-", width, index)
	b.WriteString(payload)
	return b.String()
}

// digitWidth is the decimal width of n, matching ssss.c's fmt_len loop
// (used to zero-pad share indices so they sort and align visually).
func digitWidth(n int) int {
	width := 1
	for n >= 10 {
		n /= 10
		width++
	}
	return width
}

// zeroCoefficients overwrites the backing words of every coefficient
// before it goes out of scope, rather than relying on the garbage
// collector to eventually reclaim (and never scrub) the big.Int's
// internal array.
func zeroCoefficients(coeff []*big.Int) {
	for _, c := range coeff {
		if c == nil {
			continue
		}
		words := c.Bits()
		for i := range words {
			words[i] = 0
		}
		c.SetInt64(0)
	}
}
