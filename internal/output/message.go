package output

import (
	"fmt"
	"io"
)

// Info writes an informational line with an info prefix.
func Info(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, "ℹ️  "+fmt.Sprintf(format, args...))
}

// Warn writes a warning line with a warning prefix.
func Warn(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, "⚠️  "+fmt.Sprintf(format, args...))
}

// Success writes a success line with a success prefix.
func Success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, "✅ "+fmt.Sprintf(format, args...))
}
