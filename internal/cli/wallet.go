package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/output"
	walletsvc "github.com/mrz1836/xrbwallet/internal/service/wallet"
	"github.com/mrz1836/xrbwallet/internal/wallet"
	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// showMnemonic reveals the seed phrase in wallet show.
	showMnemonic bool
	// deleteYes skips the delete confirmation.
	deleteYes bool
)

// walletCmd is the parent command for wallet operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
	Long:  `Create, restore, list, rename and delete password-encrypted wallets.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored wallets",
	Args:  cobra.NoArgs,
	RunE:  runWalletList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a wallet and its accounts",
	Long: `Unlock a wallet and show its accounts.

With --mnemonic the 24-word seed phrase and hex seed are printed as well.
Anyone who sees them can spend from every account.

Example:
  xrbwallet wallet show main
  xrbwallet wallet show main --mnemonic`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a wallet",
	Long: `Move a wallet to a new name. A wallet already stored under the new
name is replaced.`,
	Args: cobra.ExactArgs(2),
	RunE: runWalletRename,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a wallet",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalletDelete,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletPasswdCmd = &cobra.Command{
	Use:   "passwd <name>",
	Short: "Change a wallet password",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalletPasswd,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletListCmd, walletShowCmd, walletRenameCmd, walletDeleteCmd, walletPasswdCmd)

	walletShowCmd.Flags().BoolVar(&showMnemonic, "mnemonic", false, "also print the seed phrase and hex seed")
	walletDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
}

// accountView is how an account is shown to the user.
type accountView struct {
	Position  int    `json:"position"`
	Index     uint32 `json:"index"`
	Label     string `json:"label,omitempty"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key,omitempty"`
}

// walletView is the output of wallet show.
type walletView struct {
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	Accounts  []accountView `json:"accounts"`
	Mnemonic  string        `json:"mnemonic,omitempty"`
	Seed      string        `json:"seed,omitempty"`
}

func runWalletList(cmd *cobra.Command, _ []string) error {
	svc, err := cmdCtx.Service()
	if err != nil {
		return err
	}
	names, err := svc.List()
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}

	return emit(cmd, map[string][]string{"wallets": names}, func(w io.Writer) {
		if len(names) == 0 {
			outln(w, "No wallets found. Create one with: xrbwallet wallet create <name>")
			return
		}
		for _, name := range names {
			outln(w, name)
		}
	})
}

func runWalletShow(cmd *cobra.Command, args []string) error {
	u, err := openWallet(args[0])
	if err != nil {
		return err
	}
	defer u.close()

	accounts, err := accountViews(u.session)
	if err != nil {
		return err
	}

	view := walletView{
		Name:      u.session.Name(),
		CreatedAt: u.session.CreatedAt(),
		Accounts:  accounts,
	}

	if showMnemonic {
		state, stateErr := u.session.State()
		if stateErr != nil {
			return stateErr
		}
		defer state.Wipe()

		if view.Mnemonic, err = u.session.Mnemonic(); err != nil {
			return err
		}
		view.Seed = state.Seed.String()
		output.Warn(cmd.ErrOrStderr(), "the seed phrase below controls every account; keep it offline")
	}

	return emit(cmd, view, func(w io.Writer) {
		displayWalletText(w, &view, u.session.Selected())
	})
}

// displayWalletText renders a wallet for humans.
func displayWalletText(w io.Writer, view *walletView, selected int) {
	out(w, "Wallet: %s\n", view.Name)
	out(w, "Created: %s\n", view.CreatedAt.Format("2006-01-02 15:04:05"))
	outln(w)
	outln(w, accountTable(view.Accounts, selected).String())

	if view.Mnemonic != "" {
		out(w, "Mnemonic: %s\n", view.Mnemonic)
		out(w, "Seed:     %s\n", view.Seed)
	}
}

func accountTable(accounts []accountView, selected int) *output.Table {
	tbl := output.NewTable("", "#", "INDEX", "LABEL", "ADDRESS")
	for _, a := range accounts {
		marker := ""
		if a.Position == selected {
			marker = "*"
		}
		tbl.AddRow(marker, fmt.Sprint(a.Position), fmt.Sprint(a.Index), a.Label, a.Address)
	}
	return tbl
}

// accountViews derives every tracked account of sess.
func accountViews(sess *walletsvc.Session) ([]accountView, error) {
	entries := sess.Accounts()
	views := make([]accountView, 0, len(entries))
	for pos, entry := range entries {
		acct, err := sess.Account(pos)
		if err != nil {
			return nil, err
		}
		views = append(views, newAccountView(pos, entry.Label, acct))
		acct.Wipe()
	}
	return views, nil
}

func newAccountView(pos int, label string, acct *wallet.Account) accountView {
	return accountView{
		Position:  pos,
		Index:     acct.Index,
		Label:     label,
		Address:   acct.Address,
		PublicKey: acct.PublicKey.String(),
	}
}

func runWalletRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]
	if err := wallet.ValidateWalletName(newName); err != nil {
		return walleterr.WithDetails(err, map[string]string{"name": newName})
	}

	svc, err := cmdCtx.Service()
	if err != nil {
		return err
	}
	if err = svc.ValidateExists(oldName); err != nil {
		return err
	}
	if err = svc.Rename(oldName, newName); err != nil {
		return err
	}

	return output.FormatSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("Wallet '%s' renamed to '%s'", oldName, newName), formatter.Format())
}

func runWalletDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	svc, err := cmdCtx.Service()
	if err != nil {
		return err
	}
	if err = svc.ValidateExists(name); err != nil {
		return err
	}

	if !deleteYes && !promptConfirmFn(fmt.Sprintf("Delete wallet '%s'? Without its seed phrase the funds are lost.", name)) {
		return walleterr.WithSuggestion(walleterr.ErrGeneral, "deletion cancelled")
	}

	if err = svc.Delete(name); err != nil {
		return err
	}
	return output.FormatSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wallet '%s' deleted", name), formatter.Format())
}

func runWalletPasswd(cmd *cobra.Command, args []string) error {
	name := args[0]

	svc, err := cmdCtx.Service()
	if err != nil {
		return err
	}
	if err = svc.ValidateExists(name); err != nil {
		return err
	}

	current, err := promptPasswordFn(fmt.Sprintf("Current password for wallet '%s': ", name))
	if err != nil {
		return err
	}
	defer walletcrypto.Zero(current)

	next, err := promptNewPasswordFn(svc.MinPasswordLength())
	if err != nil {
		return err
	}
	defer walletcrypto.Zero(next)

	if err = svc.ChangePassword(name, current, next); err != nil {
		return err
	}
	return output.FormatSuccess(cmd.OutOrStdout(), fmt.Sprintf("Password changed for wallet '%s'", name), formatter.Format())
}
