package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitThenCombineEndToEnd(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())

	splitCmd := newSplitCommand()
	splitCmd.SetArgs([]string{"-t", "3", "-n", "5", "-q", "-o", "text"})
	splitCmd.SetIn(strings.NewReader("correct horse battery staple\n"))
	var splitOut bytes.Buffer
	splitCmd.SetOut(&splitOut)

	require.NoError(t, splitCmd.Execute())

	lines := strings.Split(strings.TrimSpace(splitOut.String()), "\n")
	require.Len(t, lines, 5)

	combineCmd := newCombineCommand()
	combineCmd.SetArgs([]string{"-t", "3", "-q", "-o", "text"})
	combineCmd.SetIn(strings.NewReader(strings.Join(lines[:3], "\n") + "\n"))
	var combineOut bytes.Buffer
	combineCmd.SetOut(&combineOut)

	require.NoError(t, combineCmd.Execute())
	assert.Equal(t, "correct horse battery staple\n", combineOut.String())
}

// captureStderr redirects the process's real stderr for the duration of fn,
// since split/combine write prompts and warnings directly to os.Stderr
// (matching ssss.c's fprintf(stderr, ...) rather than cobra's ErrOrStderr).
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestSplitQuietSuppressesPromptsButNotWarnings(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())

	cmd := newSplitCommand()
	cmd.SetArgs([]string{"-t", "2", "-n", "3", "-s", "32", "-q", "-o", "text"})
	cmd.SetIn(strings.NewReader("hi\n"))
	cmd.SetOut(&bytes.Buffer{})

	errOut := captureStderr(t, func() {
		require.NoError(t, cmd.Execute())
	})

	assert.NotContains(t, errOut, "Enter the secret")
	assert.NotContains(t, errOut, "Generating shares")
	assert.Contains(t, errOut, "too small for the diffusion layer")
}

func TestSplitQUIETSuppressesWarnings(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())

	cmd := newSplitCommand()
	cmd.SetArgs([]string{"-t", "2", "-n", "3", "-s", "32", "-Q", "-o", "text"})
	cmd.SetIn(strings.NewReader("hi\n"))
	cmd.SetOut(&bytes.Buffer{})

	errOut := captureStderr(t, func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Empty(t, errOut)
}

func TestSplitEnvQuietAppliesWhenFlagNotGiven(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())
	t.Setenv("SSSS_QUIET", "true")

	cmd := newSplitCommand()
	cmd.SetArgs([]string{"-t", "2", "-n", "3", "-s", "32", "-o", "text"})
	cmd.SetIn(strings.NewReader("hi\n"))
	cmd.SetOut(&bytes.Buffer{})

	errOut := captureStderr(t, func() {
		require.NoError(t, cmd.Execute())
	})

	assert.NotContains(t, errOut, "Enter the secret")
	assert.NotContains(t, errOut, "Generating shares")
}

func TestSplitFlagOverridesEnvQuiet(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())
	t.Setenv("SSSS_QUIET", "true")

	cmd := newSplitCommand()
	cmd.SetArgs([]string{"-t", "2", "-n", "3", "-s", "32", "--quiet=false", "-o", "text"})
	cmd.SetIn(strings.NewReader("hi\n"))
	cmd.SetOut(&bytes.Buffer{})

	errOut := captureStderr(t, func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Contains(t, errOut, "Generating shares")
}

func TestSplitEnvTokenAppliesWhenFlagNotGiven(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())
	t.Setenv("SSSS_TOKEN", "envtoken")

	cmd := newSplitCommand()
	cmd.SetArgs([]string{"-t", "2", "-n", "2", "-q", "-o", "text"})
	cmd.SetIn(strings.NewReader("x\n"))
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "envtoken-")
}

func TestCombineEnvHexAppliesWhenFlagNotGiven(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())

	splitCmd := newSplitCommand()
	splitCmd.SetArgs([]string{"-t", "2", "-n", "2", "-x", "-q", "-o", "text"})
	splitCmd.SetIn(strings.NewReader("ab\n"))
	var splitOut bytes.Buffer
	splitCmd.SetOut(&splitOut)
	require.NoError(t, splitCmd.Execute())
	lines := strings.Split(strings.TrimSpace(splitOut.String()), "\n")
	require.Len(t, lines, 2)

	t.Setenv("SSSS_HEX", "true")
	combineCmd := newCombineCommand()
	combineCmd.SetArgs([]string{"-t", "2", "-q", "-o", "text"})
	combineCmd.SetIn(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	var combineOut bytes.Buffer
	combineCmd.SetOut(&combineOut)
	require.NoError(t, combineCmd.Execute())
	assert.Equal(t, "ab\n", combineOut.String())
}

func TestSplitRecoverFlagRegeneratesAllShares(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())

	splitCmd := newSplitCommand()
	splitCmd.SetArgs([]string{"-t", "3", "-n", "4", "-q", "-o", "text"})
	splitCmd.SetIn(strings.NewReader("secretval\n"))
	var splitOut bytes.Buffer
	splitCmd.SetOut(&splitOut)
	require.NoError(t, splitCmd.Execute())

	lines := strings.Split(strings.TrimSpace(splitOut.String()), "\n")
	require.Len(t, lines, 4)

	recoverCmd := newSplitCommand()
	recoverCmd.SetArgs([]string{"-t", "3", "-n", "4", "-r", "-q", "-o", "text"})
	recoverCmd.SetIn(strings.NewReader("secretval\n" + strings.Join(lines[:2], "\n") + "\n"))
	var recoverOut bytes.Buffer
	recoverCmd.SetOut(&recoverOut)

	require.NoError(t, recoverCmd.Execute())
	recovered := strings.Split(strings.TrimSpace(recoverOut.String()), "\n")
	assert.Equal(t, lines, recovered)
}

func TestSplitRejectsInvalidThreshold(t *testing.T) {
	t.Setenv("SSSS_HOME", t.TempDir())

	cmd := newSplitCommand()
	cmd.SetArgs([]string{"-t", "1", "-n", "5", "-q"})
	cmd.SetIn(strings.NewReader("secret\n"))
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
}
