package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/fileutil"
	"github.com/mrz1836/xrbwallet/internal/output"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// qrPNGSize is the edge length in pixels of exported QR images.
const qrPNGSize = 256

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	accountLabel   string
	accountQR      bool
	accountQRPNG   string
	accountPrivate bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage wallet accounts",
	Long: `Accounts are numbered keys derived from the wallet seed. Position is the
account's place in the wallet's list; index is the derivation index.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var accountAddCmd = &cobra.Command{
	Use:   "add <wallet>",
	Short: "Derive and track the next account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountAdd,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var accountListCmd = &cobra.Command{
	Use:   "list <wallet>",
	Short: "List a wallet's accounts",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var accountShowCmd = &cobra.Command{
	Use:   "show <wallet> [position]",
	Short: "Show one account",
	Long: `Show an account's address and public key. Without a position the
selected account is shown.

--qr draws the address as a QR code when writing to a terminal, and
--qr-png writes it as an image. --private also prints the private key.

Example:
  xrbwallet account show main 1 --qr
  xrbwallet account show main --qr-png address.png`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAccountShow,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountShowCmd)

	accountAddCmd.Flags().StringVar(&accountLabel, "label", "", "label for the new account")
	accountShowCmd.Flags().BoolVar(&accountQR, "qr", false, "draw the address as a QR code")
	accountShowCmd.Flags().StringVar(&accountQRPNG, "qr-png", "", "write the address QR code to a PNG file")
	accountShowCmd.Flags().BoolVar(&accountPrivate, "private", false, "also print the private key")
}

// accountDetail is the output of account show.
type accountDetail struct {
	accountView

	PrivateKey string `json:"private_key,omitempty"`
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	u, err := openWallet(args[0])
	if err != nil {
		return err
	}
	defer u.close()

	acct, err := u.session.AddAccount(accountLabel)
	if err != nil {
		return err
	}
	defer acct.Wipe()

	if err = u.save(); err != nil {
		return err
	}

	view := newAccountView(len(u.session.Accounts())-1, accountLabel, acct)
	return emit(cmd, view, func(w io.Writer) {
		out(w, "Account %d added to wallet '%s'\n", view.Index, u.session.Name())
		out(w, "Address: %s\n", view.Address)
	})
}

func runAccountList(cmd *cobra.Command, args []string) error {
	u, err := openWallet(args[0])
	if err != nil {
		return err
	}
	defer u.close()

	accounts, err := accountViews(u.session)
	if err != nil {
		return err
	}

	return emit(cmd, map[string]any{"wallet": u.session.Name(), "accounts": accounts}, func(w io.Writer) {
		outln(w, accountTable(accounts, u.session.Selected()).String())
	})
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	u, err := openWallet(args[0])
	if err != nil {
		return err
	}
	defer u.close()

	if len(args) == 2 {
		pos, parseErr := strconv.Atoi(args[1])
		if parseErr != nil {
			return walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{"position": args[1]})
		}
		if err = u.session.Select(pos); err != nil {
			return err
		}
	}

	acct, err := u.session.SelectedAccount()
	if err != nil {
		return err
	}
	defer acct.Wipe()

	pos := u.session.Selected()
	detail := accountDetail{accountView: newAccountView(pos, u.session.Accounts()[pos].Label, acct)}
	if accountPrivate {
		detail.PrivateKey = acct.PrivateKey.String()
		output.Warn(cmd.ErrOrStderr(), "the private key controls this account; do not share it")
	}

	if accountQRPNG != "" {
		if err = writeQRPNG(accountQRPNG, acct.Address); err != nil {
			return err
		}
	}

	return emit(cmd, detail, func(w io.Writer) {
		displayAccountText(w, &detail)
		if accountQR {
			if qrErr := output.RenderQR(w, acct.Address, output.DefaultQRConfig()); qrErr != nil {
				logger.With("cli").Error("rendering QR code: %v", qrErr)
			}
		}
	})
}

func displayAccountText(w io.Writer, d *accountDetail) {
	out(w, "Position:   %d\n", d.Position)
	out(w, "Index:      %d\n", d.Index)
	if d.Label != "" {
		out(w, "Label:      %s\n", d.Label)
	}
	out(w, "Address:    %s\n", d.Address)
	out(w, "Public key: %s\n", d.PublicKey)
	if d.PrivateKey != "" {
		out(w, "Private:    %s\n", d.PrivateKey)
	}
}

// writeQRPNG writes addr as a PNG QR code to path.
func writeQRPNG(path, addr string) error {
	var buf bytes.Buffer
	if err := output.WriteQRPNG(&buf, addr, output.DefaultQRConfig().Level, qrPNGSize); err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: an address image is public
		return fmt.Errorf("writing QR image: %w", err)
	}
	return nil
}
