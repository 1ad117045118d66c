package gfshare_test

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJoy/ssss/internal/config"
	"github.com/MrJoy/ssss/internal/entropy"
	"github.com/MrJoy/ssss/internal/gfshare"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

func newSource(t *testing.T) *entropy.Source {
	t.Helper()
	src, err := entropy.Open(rand.Reader)
	require.NoError(t, err)
	return src
}

func TestSplitThenCombineRecoversSecret(t *testing.T) {
	t.Parallel()
	src := newSource(t)

	result, err := gfshare.Split(gfshare.SplitOptions{
		Threshold: 3,
		Shares:    5,
		Hex:       false,
	}, "hello", src)
	require.NoError(t, err)
	require.Len(t, result.Shares, 5)

	lines := []string{
		result.Shares[0].Text,
		result.Shares[2].Text,
		result.Shares[4].Text,
	}

	secret, warnings, err := gfshare.Combine(gfshare.CombineOptions{Threshold: 3}, lines)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "hello", secret)
}

func TestSplitThenCombineWithDiffusion(t *testing.T) {
	t.Parallel()
	src := newSource(t)

	result, err := gfshare.Split(gfshare.SplitOptions{
		Threshold: 2,
		Shares:    3,
		Hex:       true,
		Diffusion: true,
	}, "cafebabecafebabe", src)
	require.NoError(t, err)

	secret, _, err := gfshare.Combine(gfshare.CombineOptions{
		Threshold: 2,
		Hex:       true,
		Diffusion: true,
	}, []string{result.Shares[0].Text, result.Shares[1].Text})
	require.NoError(t, err)
	assert.Equal(t, "cafebabecafebabe", secret)
}

func TestSplitWithToken(t *testing.T) {
	t.Parallel()
	src := newSource(t)

	result, err := gfshare.Split(gfshare.SplitOptions{
		Threshold: 2,
		Shares:    2,
		Token:     "mytoken",
	}, "x", src)
	require.NoError(t, err)
	assert.Contains(t, result.Shares[0].Text, "mytoken-")
}

func TestCombineDuplicateShareIsInconsistent(t *testing.T) {
	t.Parallel()
	src := newSource(t)

	result, err := gfshare.Split(gfshare.SplitOptions{Threshold: 2, Shares: 2}, "x", src)
	require.NoError(t, err)

	_, _, err = gfshare.Combine(gfshare.CombineOptions{Threshold: 2}, []string{
		result.Shares[0].Text,
		result.Shares[0].Text,
	})
	require.ErrorIs(t, err, sigilerr.ErrInconsistent)
}

func TestSplitRejectsLowThreshold(t *testing.T) {
	t.Parallel()
	src := newSource(t)
	_, err := gfshare.Split(gfshare.SplitOptions{Threshold: 1, Shares: 5}, "x", src)
	require.Error(t, err)
}

func TestSplitRejectsFewerSharesThanThreshold(t *testing.T) {
	t.Parallel()
	src := newSource(t)
	_, err := gfshare.Split(gfshare.SplitOptions{Threshold: 3, Shares: 2}, "x", src)
	require.Error(t, err)
}

func TestParseShareWithAndWithoutToken(t *testing.T) {
	t.Parallel()

	share, err := gfshare.ParseShare("tok-03-abcd")
	require.NoError(t, err)
	assert.Equal(t, "tok", share.Token)
	assert.Equal(t, 3, share.Index)
	assert.Equal(t, "abcd", share.Payload)

	share, err = gfshare.ParseShare("03-abcd")
	require.NoError(t, err)
	assert.Equal(t, "", share.Token)
	assert.Equal(t, 3, share.Index)
	assert.Equal(t, "abcd", share.Payload)
}

func TestParseShareTokenContainingDashes(t *testing.T) {
	t.Parallel()

	share, err := gfshare.ParseShare("my-token-3-deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "my-token", share.Token)
	assert.Equal(t, 3, share.Index)
	assert.Equal(t, "deadbeef", share.Payload)
}

func TestParseShareRejectsMissingDash(t *testing.T) {
	t.Parallel()
	_, err := gfshare.ParseShare("nodash")
	require.Error(t, err)
}

func TestRecoverRegeneratesLostShare(t *testing.T) {
	t.Parallel()
	src := newSource(t)

	result, err := gfshare.Split(gfshare.SplitOptions{Threshold: 3, Shares: 4}, "secretval", src)
	require.NoError(t, err)

	recovered, err := gfshare.Recover(gfshare.RecoverOptions{
		Threshold: 3,
		Shares:    4,
	}, "secretval", []string{result.Shares[0].Text, result.Shares[1].Text})
	require.NoError(t, err)
	require.Len(t, recovered.Shares, 4)

	for i, original := range result.Shares {
		assert.Equal(t, original.Payload, recovered.Shares[i].Payload, "share %d should match original", i+1)
	}
}

func TestCombineRejectsShareLevelMismatch(t *testing.T) {
	t.Parallel()
	_, _, err := gfshare.Combine(gfshare.CombineOptions{Threshold: 2}, []string{
		"01-ab",
		"02-abcd",
	})
	require.ErrorIs(t, err, sigilerr.ErrShareLevelMismatch)
}

func TestSplitLogsSecurityLevelAndShareCount(t *testing.T) {
	t.Parallel()
	src := newSource(t)

	logPath := filepath.Join(t.TempDir(), "ssss.log")
	logger, err := config.NewLogger(config.LogLevelDebug, logPath)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	_, err = gfshare.Split(gfshare.SplitOptions{
		Threshold: 2,
		Shares:    3,
		Logger:    logger,
	}, "hello", src)
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "split: security level selected")
	assert.Contains(t, string(contents), "split: shares generated")
}

func TestCombineWithNilLoggerDoesNotPanic(t *testing.T) {
	t.Parallel()
	src := newSource(t)

	result, err := gfshare.Split(gfshare.SplitOptions{Threshold: 2, Shares: 2}, "x", src)
	require.NoError(t, err)

	_, _, err = gfshare.Combine(gfshare.CombineOptions{Threshold: 2, Logger: nil}, []string{
		result.Shares[0].Text,
		result.Shares[1].Text,
	})
	require.NoError(t, err)
}
