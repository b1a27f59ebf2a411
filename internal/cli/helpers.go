package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/output"
	walletsvc "github.com/mrz1836/xrbwallet/internal/service/wallet"
	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
)

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...any) {
	fmt.Fprintln(w, args...)
}

// emit writes data as JSON in JSON mode and calls text otherwise.
func emit(cmd *cobra.Command, data any, text func(w io.Writer)) error {
	return output.NewFormatter(formatter.Format(), cmd.OutOrStdout()).Result(data, func(w io.Writer) error {
		text(w)
		return nil
	})
}

// unlocked is an opened wallet together with the password that opened
// it, kept so changes can be saved back.
type unlocked struct {
	svc      *walletsvc.Service
	session  *walletsvc.Session
	password []byte
}

// close wipes the seed and the password.
func (u *unlocked) close() {
	u.session.Close()
	walletcrypto.Zero(u.password)
}

// save persists the session under its name with the same password.
func (u *unlocked) save() error {
	return u.svc.SaveSession(u.session, u.password)
}

// openWallet checks that name exists, prompts for its password and opens
// it. The caller must close the result.
func openWallet(name string) (*unlocked, error) {
	svc, err := cmdCtx.Service()
	if err != nil {
		return nil, err
	}
	if err = svc.ValidateExists(name); err != nil {
		return nil, err
	}

	password, err := promptPasswordFn(fmt.Sprintf("Password for wallet '%s': ", name))
	if err != nil {
		return nil, err
	}

	sess, err := svc.Open(name, password)
	if err != nil {
		walletcrypto.Zero(password)
		return nil, err
	}
	return &unlocked{svc: svc, session: sess, password: password}, nil
}
