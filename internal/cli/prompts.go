package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/MrJoy/ssss/internal/securemem"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// readLine reads a single line from in, stripping the trailing
// newline the way ssss.c's fgets + strcspn does.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", sigilerr.ErrSecretIO
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecretLine reads the secret with terminal echo disabled when
// stdin is a TTY, mirroring ssss.c's tcsetattr(echo_off)/tcsetattr(echo_orig)
// bracket around the single fgets call in split().
func readSecretLine(in io.Reader, prompt string, quiet bool) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: Fd() is a small fd number
		if !quiet {
			fmt.Fprint(os.Stderr, prompt)
		}
		raw, err := term.ReadPassword(int(f.Fd())) //nolint:gosec // G115: Fd() is a small fd number
		defer securemem.ZeroBytes(raw)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", sigilerr.WithCause(sigilerr.ErrSecretIO, err)
		}
		return string(raw), nil
	}

	if !quiet {
		fmt.Fprint(os.Stderr, prompt)
	}
	// Byte-at-a-time so nothing past the newline is consumed from in.
	var line []byte
	c := make([]byte, 1)
	for {
		n, err := in.Read(c)
		if n == 1 && c[0] == '\n' {
			return strings.TrimRight(string(line), "\r"), nil
		}
		line = append(line, c[:n]...)
		if err != nil && len(line) == 0 {
			return "", sigilerr.ErrSecretIO
		}
		if err != nil {
			return strings.TrimRight(string(line), "\r"), nil
		}
	}
}

// readShareLines reads exactly n share lines from in, echoed normally
// (shares aren't secret on their own below the threshold, and ssss.c
// never disables echo for combine()).
func readShareLines(in io.Reader, n int, quiet bool) ([]string, error) {
	reader := bufio.NewReader(in)
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if !quiet {
			fmt.Fprintf(os.Stderr, "Share [%d/%d]: ", i+1, n)
		}
		line, err := readLine(reader)
		if err != nil {
			return nil, sigilerr.ErrShareIO
		}
		lines = append(lines, line)
	}
	return lines, nil
}
