package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Prompt hooks, replaced in tests.
//
//nolint:gochecknoglobals // Overridable for tests
var (
	promptPasswordFn    = promptPassword
	promptNewPasswordFn = promptNewPassword
	promptConfirmFn     = promptConfirmation
	promptLineFn        = promptLine
)

//nolint:gochecknoglobals // Shared so buffered stdin is not lost between prompts
var stdinReader = bufio.NewReader(os.Stdin)

// promptPassword prompts for a password with hidden input. Piped input is
// read as a plain line. The caller must zero the returned bytes.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	fd := int(os.Stdin.Fd()) //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term
	if !term.IsTerminal(fd) {
		line, err := readLine(stdinReader)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		return []byte(line), nil
	}

	password, err := term.ReadPassword(fd)
	outln(os.Stderr) // Add newline after hidden input
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}

// promptNewPassword prompts for a new password with confirmation and
// enforces minLen. The caller must zero the returned bytes.
func promptNewPassword(minLen int) ([]byte, error) {
	password, err := promptPasswordFn("Enter encryption password: ")
	if err != nil {
		return nil, err
	}

	if len(password) < minLen {
		walletcrypto.Zero(password)
		return nil, walleterr.WithSuggestion(
			walleterr.ErrInvalidInput,
			fmt.Sprintf("password must be at least %d characters", minLen),
		)
	}

	confirm, err := promptPasswordFn("Confirm password: ")
	if err != nil {
		walletcrypto.Zero(password)
		return nil, err
	}
	defer walletcrypto.Zero(confirm)

	if string(password) != string(confirm) {
		walletcrypto.Zero(password)
		return nil, walleterr.WithSuggestion(walleterr.ErrInvalidInput, "passwords do not match")
	}

	return password, nil
}

// promptConfirmation asks a yes/no question, defaulting to no.
func promptConfirmation(question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	response, err := readLine(stdinReader)
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// promptLine reads one line of visible input.
func promptLine(prompt string) (string, error) {
	out(os.Stderr, "%s", prompt)

	line, err := readLine(stdinReader)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", walleterr.WithSuggestion(walleterr.ErrInvalidInput, "no input provided")
	}
	return line, nil
}

// readLine reads up to a newline. A final line without one is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
