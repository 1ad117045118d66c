package gf

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MrJoy/ssss/internal/securemem"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// Warning identifies one of the non-fatal conditions Codec can raise.
// Warnings never abort an operation (spec.md §7).
type Warning string

// Warning kinds.
const (
	WarnNone         Warning = ""
	WarnShortPadding Warning = "input string too short, adding null padding on the left"
	WarnBinaryData   Warning = "binary data detected, use hex mode instead"
)

// Import parses s into x according to the field degree m and hex
// flag, per spec.md §4.5. The byte value 32 (space) is treated as
// printable in text mode — see SPEC_FULL.md / DESIGN.md Open Question
// (b): this implementation follows the later reference behavior.
func (p *Params) Import(x *big.Int, s string, hex bool) (Warning, error) {
	if hex {
		return p.importHex(x, s)
	}
	return p.importText(x, s)
}

func (p *Params) importHex(x *big.Int, s string) (Warning, error) {
	maxDigits := p.M / 4
	if len(s) > maxDigits {
		return WarnNone, sigilerr.ErrInputTooLong
	}

	warn := WarnNone
	if len(s) < maxDigits {
		warn = WarnShortPadding
		s = strings.Repeat("0", maxDigits-len(s)) + s
	}

	v, ok := new(big.Int).SetString(s, 16)
	if !ok || v.Sign() < 0 {
		return WarnNone, sigilerr.ErrInvalidSyntax
	}
	x.Set(v)
	return warn, nil
}

func (p *Params) importText(x *big.Int, s string) (Warning, error) {
	maxBytes := p.M / 8
	if len(s) > maxBytes {
		return WarnNone, sigilerr.ErrInputTooLong
	}

	warn := WarnNone
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] >= 127 {
			warn = WarnBinaryData
			break
		}
	}

	x.SetBytes([]byte(s))
	return warn, nil
}

// Print renders x to w per spec.md §4.5 and returns any warning that
// was raised. The byte buffer backing the text-mode export is zeroed
// before release via a securemem.Buffer, since x may still hold the
// (possibly diffused) secret.
func (p *Params) Print(w io.Writer, x *big.Int, hex bool) (Warning, error) {
	if hex {
		return WarnNone, p.printHex(w, x)
	}
	return p.printText(w, x)
}

func (p *Params) printHex(w io.Writer, x *big.Int) error {
	digits := p.M / 4
	hexStr := x.Text(16)
	if len(hexStr) < digits {
		hexStr = strings.Repeat("0", digits-len(hexStr)) + hexStr
	}
	_, err := fmt.Fprintln(w, hexStr)
	return err
}

func (p *Params) printText(w io.Writer, x *big.Int) (Warning, error) {
	raw := x.Bytes()
	buf := securemem.FromBytes(raw)
	securemem.ZeroBytes(raw)
	defer buf.Release()

	data := buf.Bytes()
	out := make([]byte, len(data))
	warn := WarnNone
	for i, c := range data {
		if c > 32 && c < 127 {
			out[i] = c
		} else {
			out[i] = '.'
			warn = WarnBinaryData
		}
	}

	if _, err := w.Write(out); err != nil {
		return warn, err
	}
	_, err := fmt.Fprintln(w)
	return warn, err
}
