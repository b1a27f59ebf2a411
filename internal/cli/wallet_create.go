package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/keys"
	"github.com/mrz1836/xrbwallet/internal/output"
	"github.com/mrz1836/xrbwallet/internal/wallet"
	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// createForce replaces an existing wallet of the same name.
	createForce bool
	// restoreSeed is a 64-character hex seed.
	restoreSeed string
	// restoreMnemonic is a 24-word seed phrase.
	restoreMnemonic string
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a wallet from a fresh random seed",
	Long: `Create a wallet from a fresh 32-byte random seed and lock it under a
password. The seed is shown once as a 24-word phrase; write it down.

Example:
  xrbwallet wallet create main
  xrbwallet wallet create main --force`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletCreate,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore a wallet from a seed or seed phrase",
	Long: `Restore a wallet from a 64-character hex seed or a 24-word phrase.
Without --seed or --mnemonic the input is read from the terminal and its
format detected.

Example:
  xrbwallet wallet restore main --seed 0000...0000
  xrbwallet wallet restore main --mnemonic "abandon abandon ... art"`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletRestore,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletCmd.AddCommand(walletCreateCmd, walletRestoreCmd)

	walletCreateCmd.Flags().BoolVar(&createForce, "force", false, "replace an existing wallet with the same name")
	walletRestoreCmd.Flags().BoolVar(&createForce, "force", false, "replace an existing wallet with the same name")
	walletRestoreCmd.Flags().StringVar(&restoreSeed, "seed", "", "64-character hex seed")
	walletRestoreCmd.Flags().StringVar(&restoreMnemonic, "mnemonic", "", "24-word seed phrase")
	walletRestoreCmd.MarkFlagsMutuallyExclusive("seed", "mnemonic")
}

// createdView is the output of wallet create and restore.
type createdView struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

func runWalletCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := wallet.ValidateWalletName(name); err != nil {
		return walleterr.WithDetails(err, map[string]string{"name": name})
	}

	seed, err := keys.GenerateSeed()
	if err != nil {
		return err
	}
	defer seed.Wipe()

	view, err := storeNewWallet(name, seed)
	if err != nil {
		return err
	}
	view.Mnemonic, err = wallet.SeedToMnemonic(seed)
	if err != nil {
		return err
	}

	return emit(cmd, view, func(w io.Writer) {
		out(w, "Wallet '%s' created\n\n", view.Name)
		out(w, "Address: %s\n\n", view.Address)
		outln(w, "Seed phrase:")
		displayMnemonic(w, view.Mnemonic)
		outln(w)
		output.Warn(w, "Write these 24 words down and keep them offline. They are the only way to recover this wallet.")
	})
}

func runWalletRestore(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := wallet.ValidateWalletName(name); err != nil {
		return walleterr.WithDetails(err, map[string]string{"name": name})
	}

	seed, err := restoreSeedInput()
	if err != nil {
		return err
	}
	defer seed.Wipe()

	view, err := storeNewWallet(name, seed)
	if err != nil {
		return err
	}

	return emit(cmd, view, func(w io.Writer) {
		out(w, "Wallet '%s' restored\n\n", view.Name)
		out(w, "Address: %s\n", view.Address)
	})
}

// restoreSeedInput reads the seed from the flags, or prompts for it.
func restoreSeedInput() (keys.Seed, error) {
	switch {
	case restoreSeed != "":
		return keys.ParseSeed(strings.TrimSpace(restoreSeed))
	case restoreMnemonic != "":
		seed, _, err := wallet.ParseRestoreInput(restoreMnemonic)
		return seed, err
	}

	input, err := promptLineFn("Enter a 24-word seed phrase or 64-character hex seed: ")
	if err != nil {
		return keys.Seed{}, err
	}
	seed, format, err := wallet.ParseRestoreInput(input)
	if err != nil {
		return keys.Seed{}, err
	}
	logger.With("cli").Debug("restoring from %s input", format)
	return seed, nil
}

// storeNewWallet prompts for a new password and stores seed under name.
func storeNewWallet(name string, seed keys.Seed) (*createdView, error) {
	svc, err := cmdCtx.Service()
	if err != nil {
		return nil, err
	}

	if !createForce {
		store, storeErr := cmdCtx.Store()
		if storeErr != nil {
			return nil, storeErr
		}
		exists, existsErr := store.Exists(name)
		if existsErr != nil {
			return nil, existsErr
		}
		if exists {
			return nil, walleterr.WithSuggestion(
				walleterr.WithDetails(walleterr.ErrWalletExists, map[string]string{"name": name}),
				"choose another name or pass --force to replace it",
			)
		}
	}

	password, err := promptNewPasswordFn(svc.MinPasswordLength())
	if err != nil {
		return nil, err
	}
	defer walletcrypto.Zero(password)

	sess, err := svc.Create(name, seed, password, createForce)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	acct, err := sess.SelectedAccount()
	if err != nil {
		return nil, err
	}
	defer acct.Wipe()

	return &createdView{Name: name, Address: acct.Address}, nil
}

// displayMnemonic prints the phrase as numbered words, four per line.
func displayMnemonic(w io.Writer, mnemonic string) {
	words := strings.Fields(mnemonic)
	for i, word := range words {
		out(w, "%3d. %-10s", i+1, word)
		if (i+1)%4 == 0 || i == len(words)-1 {
			outln(w)
		}
	}
}
