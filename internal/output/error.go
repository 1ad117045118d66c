package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// FormatError formats an error for display.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}
	if format == FormatJSON {
		return formatErrorJSON(w, err)
	}
	return formatErrorText(w, err)
}

func formatErrorJSON(w io.Writer, err error) error {
	var se *sigilerr.SSSSError
	detail := ErrorDetail{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		ExitCode: sigilerr.ExitGeneral,
	}
	if errors.As(err, &se) {
		detail = ErrorDetail{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: se.Suggestion,
			ExitCode:   se.ExitCode,
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ErrorOutput{Error: detail})
}

// formatErrorText renders err as spec.md §6/§7's literal fatal-message
// format: "FATAL: <msg>.", bell-prefixed when w is a TTY. Details and a
// remediation suggestion, when present, follow on their own lines the
// way ssss.c's fatal() appends a "Perhaps..." remediation hint.
func formatErrorText(w io.Writer, err error) error {
	bell := ""
	if f, ok := w.(*os.File); ok {
		bell = bellPrefix(f)
	}

	var sb strings.Builder

	var se *sigilerr.SSSSError
	if errors.As(err, &se) {
		fmt.Fprintf(&sb, "%sFATAL: %s.\n", bell, se.Message)
		keys := make([]string, 0, len(se.Details))
		for k := range se.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, se.Details[k])
		}
		if se.Suggestion != "" {
			fmt.Fprintf(&sb, "Perhaps %s.\n", se.Suggestion)
		}
	} else {
		fmt.Fprintf(&sb, "%sFATAL: %s.\n", bell, err.Error())
	}

	_, writeErr := w.Write([]byte(sb.String()))
	return writeErr
}

// FormatSuccess formats a success message.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		output := map[string]string{"status": "success", "message": message}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
