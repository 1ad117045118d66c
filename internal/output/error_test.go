package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJoy/ssss/internal/output"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

type plainError string

func (e plainError) Error() string { return string(e) }

func TestFormatErrorTextMatchesFatalFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	err := sigilerr.WithSuggestion(sigilerr.ErrInvalidShare, "check the share format")
	require.NoError(t, output.FormatError(&buf, err, output.FormatText))

	out := buf.String()
	assert.Contains(t, out, "FATAL: invalid share.\n")
	assert.Contains(t, out, "Perhaps check the share format.\n")
}

func TestFormatErrorTextPlainError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, output.FormatError(&buf, plainError("boom"), output.FormatText))
	assert.Equal(t, "FATAL: boom.\n", buf.String())
}
