package gfshare

import (
	"log/slog"
	"math/big"
	"strconv"
	"strings"

	"github.com/MrJoy/ssss/internal/config"
	"github.com/MrJoy/ssss/internal/diffusion"
	"github.com/MrJoy/ssss/internal/gf"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// ParsedShare is one share line after label parsing, before it has
// been imported into a field element (spec.md §4.10).
type ParsedShare struct {
	Token   string
	Index   int
	Payload string
}

// ParseShare splits a raw share line into its token (if any), decimal
// index, and hex payload. A share line is "[token-]index-payload".
// Parsing works from the right: the last '-' always separates the
// payload, and the '-' before that (if any) separates the token from
// the index, so a token may itself contain dashes (spec.md §6).
func ParseShare(line string) (ParsedShare, error) {
	line = strings.TrimRight(line, "\r\n")

	last := strings.LastIndexByte(line, '-')
	if last < 0 {
		return ParsedShare{}, sigilerr.ErrInvalidSyntax
	}

	head := line[:last]
	payload := line[last+1:]

	var token, idxStr string
	if second := strings.LastIndexByte(head, '-'); second >= 0 {
		token = head[:second]
		idxStr = head[second+1:]
	} else {
		idxStr = head
	}

	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx == 0 {
		return ParsedShare{}, sigilerr.ErrInvalidShare
	}

	return ParsedShare{Token: token, Index: idx, Payload: payload}, nil
}

// CombineOptions configures one secret-reconstruction run.
type CombineOptions struct {
	Threshold int  // K: number of shares supplied
	Hex       bool // print the recovered secret as hex rather than text
	Diffusion bool // undo the all-or-nothing transform

	// Logger receives operational debug events (field degree detected,
	// share count, warnings raised). It never sees secret material. A
	// nil Logger is valid and simply discards everything.
	Logger *config.Logger
}

// Combine reconstructs the secret from exactly opts.Threshold share
// lines, per spec.md §4.10. Every share must decode to the same field
// degree (4 bits per hex digit of payload); a shared x-value
// (the same index used twice) surfaces as ErrInconsistent from the
// underlying Gaussian elimination.
func Combine(opts CombineOptions, lines []string) (string, []Warning, error) {
	if opts.Threshold < 2 {
		return "", nil, sigilerr.WithDetail(sigilerr.ErrInvalidSyntax, "reason", "invalid threshold value")
	}
	if len(lines) != opts.Threshold {
		return "", nil, sigilerr.WithDetail(sigilerr.ErrShareIO, "reason", "wrong number of shares")
	}

	level := 0
	p := (*gf.Params)(nil)
	mx := (*gf.Matrix)(nil)
	b := make([]*big.Int, opts.Threshold)

	for i, line := range lines {
		share, err := ParseShare(line)
		if err != nil {
			return "", nil, err
		}

		shareLevel := 4 * len(share.Payload)
		if level == 0 {
			level = shareLevel
			if !gf.Valid(level) {
				return "", nil, sigilerr.WithDetail(sigilerr.ErrIllegalShareLength, "length", strconv.Itoa(len(share.Payload)))
			}
			var err error
			p, err = gf.New(level)
			if err != nil {
				return "", nil, err
			}
			mx = gf.NewMatrix(opts.Threshold)
			opts.Logger.Debug("combine: security level detected",
				slog.Int("level", level), slog.Int("threshold", opts.Threshold))
		} else if shareLevel != level {
			return "", nil, sigilerr.ErrShareLevelMismatch
		}

		x := big.NewInt(int64(share.Index))

		mx.At(opts.Threshold-1, i).SetInt64(1)
		for row := opts.Threshold - 2; row >= 0; row-- {
			p.Mul(mx.At(row, i), mx.At(row+1, i), x)
		}

		y := new(big.Int)
		if _, err := p.Import(y, share.Payload, true); err != nil {
			return "", nil, err
		}

		xk := new(big.Int)
		p.Mul(xk, x, mx.At(0, i))
		p.Add(y, y, xk)
		b[i] = y
	}

	secret, err := p.Solve(mx, b, false)
	if err != nil {
		return "", nil, err
	}

	var warnings []Warning
	if opts.Diffusion {
		if diffusion.Applicable(level) {
			secret.Set(diffusion.Decode(secret, level))
		} else {
			warnings = append(warnings, Warning("security level too small for the diffusion layer"))
		}
	}

	var out strings.Builder
	warn, err := p.Print(&out, secret, opts.Hex)
	if err != nil {
		return "", nil, err
	}
	if warn != gf.WarnNone {
		warnings = append(warnings, Warning(warn))
	}

	zeroCoefficients(b)

	for _, w := range warnings {
		opts.Logger.Debug("combine: warning raised", slog.String("warning", string(w)))
	}

	return strings.TrimSuffix(out.String(), "\n"), warnings, nil
}

// RecoverOptions configures regenerating a full share set from a
// known secret and opts.Threshold-1 of the original shares, per
// spec.md §4.8/§4.10's recovery mode: the secret is injected as a
// virtual share at x=0, the coefficient vector is recovered via back
// substitution, and HornerR re-evaluates every requested share.
type RecoverOptions struct {
	Threshold int
	Shares    int
	Hex       bool
	Diffusion bool
	Token     string

	// Logger receives operational debug events (field degree detected,
	// share count, warnings raised). It never sees secret material. A
	// nil Logger is valid and simply discards everything.
	Logger *config.Logger
}

// Recover reconstructs the full coefficient vector from the known
// secret plus Threshold-1 existing shares, then re-emits Shares
// shares, including ones that were lost.
func Recover(opts RecoverOptions, secret string, lines []string) (*Result, error) {
	opts.Token = sanitizeToken(opts.Token)
	if opts.Threshold < 2 {
		return nil, sigilerr.WithDetail(sigilerr.ErrInvalidSyntax, "reason", "invalid threshold value")
	}
	if len(lines) != opts.Threshold-1 {
		return nil, sigilerr.WithDetail(sigilerr.ErrShareIO, "reason", "wrong number of shares")
	}

	level := 0
	var p *gf.Params
	mx := gf.NewMatrix(opts.Threshold)
	b := make([]*big.Int, opts.Threshold)

	for i, line := range lines {
		share, err := ParseShare(line)
		if err != nil {
			return nil, err
		}

		shareLevel := 4 * len(share.Payload)
		if level == 0 {
			level = shareLevel
			if !gf.Valid(level) {
				return nil, sigilerr.WithDetail(sigilerr.ErrIllegalShareLength, "length", strconv.Itoa(len(share.Payload)))
			}
			p, err = gf.New(level)
			if err != nil {
				return nil, err
			}
			opts.Logger.Debug("recover: security level detected",
				slog.Int("level", level), slog.Int("threshold", opts.Threshold), slog.Int("shares", opts.Shares))
		} else if shareLevel != level {
			return nil, sigilerr.ErrShareLevelMismatch
		}

		x := big.NewInt(int64(share.Index))
		mx.At(opts.Threshold-1, i).SetInt64(1)
		for row := opts.Threshold - 2; row >= 0; row-- {
			p.Mul(mx.At(row, i), mx.At(row+1, i), x)
		}

		y := new(big.Int)
		if _, err := p.Import(y, share.Payload, true); err != nil {
			return nil, err
		}
		xk := new(big.Int)
		p.Mul(xk, x, mx.At(0, i))
		p.Add(y, y, xk)
		b[i] = y
	}

	last := opts.Threshold - 1
	mx.At(opts.Threshold-1, last).SetInt64(1)
	for row := opts.Threshold - 2; row >= 0; row-- {
		mx.At(row, last).SetInt64(0)
	}

	known := new(big.Int)
	warn, err := p.Import(known, secret, opts.Hex)
	if err != nil {
		return nil, err
	}
	var warnings []Warning
	if warn != gf.WarnNone {
		warnings = append(warnings, Warning(warn))
	}
	if opts.Diffusion {
		if diffusion.Applicable(level) {
			known.Set(diffusion.Encode(known, level))
		} else {
			warnings = append(warnings, Warning("security level too small for the diffusion layer"))
		}
	}
	b[last] = known

	if _, err := p.Solve(mx, b, true); err != nil {
		return nil, err
	}
	// b is now the coefficient vector in descending-degree order
	// (b[0] highest degree, b[Threshold-1] the secret) — exactly the
	// form HornerR expects.
	defer zeroCoefficients(b)

	fmtLen := digitWidth(opts.Shares)
	shares := make([]Share, opts.Shares)
	for i := 0; i < opts.Shares; i++ {
		x := big.NewInt(int64(i + 1))
		y := p.HornerR(opts.Threshold, x, b)

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
		opts.Logger.Debug("recover: warning raised", slog.String("warning", string(w)))
	}
	opts.Logger.Debug("recover: shares regenerated", slog.Int("count", opts.Shares))

	return &Result{SecurityLevel: level, Shares: shares, Warnings: warnings}, nil
}
