// Package output provides output formatting for the xrbwallet CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

// Output format constants.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatAuto Format = "auto"
)

// Formatter writes command results in text or JSON.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a formatter. FormatAuto is resolved against w.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{
		format: DetectFormat(w, format),
		writer: w,
	}
}

// Format returns the resolved output format.
func (f *Formatter) Format() Format {
	return f.format
}

// Writer returns the output writer.
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// IsJSON returns true if the formatter outputs JSON.
func (f *Formatter) IsJSON() bool {
	return f.format == FormatJSON
}

// Print writes v as indented JSON, or as a line of text.
func (f *Formatter) Print(v any) error {
	if f.format == FormatJSON {
		return writeJSON(f.writer, v)
	}
	return f.printText(v)
}

// Result writes data as JSON, or calls text to render it for humans.
func (f *Formatter) Result(data any, text func(w io.Writer) error) error {
	if f.format == FormatJSON {
		return writeJSON(f.writer, data)
	}
	return text(f.writer)
}

// Printf writes formatted text output.
func (f *Formatter) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(f.writer, format, args...)
	return err
}

// Println writes a line of text output.
func (f *Formatter) Println(args ...any) error {
	_, err := fmt.Fprintln(f.writer, args...)
	return err
}

func (f *Formatter) printText(v any) error {
	switch val := v.(type) {
	case string:
		_, err := fmt.Fprintln(f.writer, val)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.writer, val.String())
		return err
	default:
		_, err := fmt.Fprintf(f.writer, "%v\n", val)
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// DetectFormat resolves FormatAuto: text for a terminal, JSON otherwise.
// An explicit format is returned unchanged.
func DetectFormat(w io.Writer, explicit Format) Format {
	if explicit != FormatAuto && explicit != "" {
		return explicit
	}
	if IsTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term.IsTerminal
}

// ParseFormat parses a format string. Unknown values map to FormatAuto.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatAuto
	}
}
