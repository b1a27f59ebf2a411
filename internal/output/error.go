package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// ErrorOutput is the JSON envelope for a failed command.
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

// FormatError writes err for display in the given format.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}
	if format == FormatJSON {
		return writeJSON(w, ErrorOutput{Error: errorDetail(err)})
	}
	return formatErrorText(w, err)
}

func errorDetail(err error) ErrorDetail {
	var we *walleterr.WalletError
	if errors.As(err, &we) {
		return ErrorDetail{
			Code:       we.Code,
			Message:    we.Message,
			Details:    we.Details,
			Suggestion: we.Suggestion,
			ExitCode:   we.ExitCode,
		}
	}
	return ErrorDetail{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		ExitCode: walleterr.ExitGeneral,
	}
}

func formatErrorText(w io.Writer, err error) error {
	var sb strings.Builder

	var we *walleterr.WalletError
	if !errors.As(err, &we) {
		fmt.Fprintf(&sb, "Error: %s\n", err.Error())
		_, writeErr := io.WriteString(w, sb.String())
		return writeErr
	}

	msg := we.Message
	if we.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, we.Cause)
	}
	fmt.Fprintf(&sb, "Error: %s\n", msg)

	if len(we.Details) > 0 {
		keys := make([]string, 0, len(we.Details))
		for k := range we.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, we.Details[k])
		}
	}

	if we.Suggestion != "" {
		fmt.Fprintf(&sb, "\nSuggestion: %s\n", we.Suggestion)
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}

// FormatSuccess writes a success message.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, map[string]string{"status": "success", "message": message})
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
