package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/output"
	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var backupOverwrite bool

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import all wallets",
	Long: `Back up every stored wallet to a single passphrase-encrypted file.
Wallets stay locked under their own passwords inside the backup.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write all wallets to an encrypted backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupExport,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore wallets from a backup file",
	Long: `Restore the wallets in a backup file. Wallets that already exist are
kept unless --overwrite is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check a backup file without decrypting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupVerify,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd, backupImportCmd, backupVerifyCmd)

	backupImportCmd.Flags().BoolVar(&backupOverwrite, "overwrite", false, "replace wallets that already exist")
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	svc, err := cmdCtx.Backup()
	if err != nil {
		return err
	}

	// The passphrase guards every wallet name and record in the file.
	passphrase, err := promptNewPasswordFn(cfg.GetSecurity().MinPasswordLength)
	if err != nil {
		return err
	}
	defer walletcrypto.Zero(passphrase)

	manifest, err := svc.Export(args[0], string(passphrase))
	if err != nil {
		return err
	}
	logger.With("cli").Info("exported %d wallets to %s", len(manifest.Wallets), args[0])

	return emit(cmd, map[string]any{"path": args[0], "manifest": manifest}, func(w io.Writer) {
		out(w, "Backed up %d wallet(s) to %s\n", len(manifest.Wallets), args[0])
	})
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	svc, err := cmdCtx.Backup()
	if err != nil {
		return err
	}

	passphrase, err := promptPasswordFn("Backup passphrase: ")
	if err != nil {
		return err
	}
	defer walletcrypto.Zero(passphrase)

	restored, err := svc.Import(args[0], string(passphrase), backupOverwrite)
	if err != nil {
		return err
	}
	if restored == nil {
		restored = []string{}
	}
	logger.With("cli").Info("imported %d wallets from %s", len(restored), args[0])

	return emit(cmd, map[string]any{"restored": restored}, func(w io.Writer) {
		if len(restored) == 0 {
			output.Info(w, "No wallets restored. Use --overwrite to replace existing wallets.")
			return
		}
		out(w, "Restored %d wallet(s): %s\n", len(restored), strings.Join(restored, ", "))
	})
}

func runBackupVerify(cmd *cobra.Command, args []string) error {
	svc, err := cmdCtx.Backup()
	if err != nil {
		return err
	}

	manifest, err := svc.Verify(args[0])
	if err != nil {
		return err
	}

	return emit(cmd, manifest, func(w io.Writer) {
		out(w, "Backup OK: %d wallet(s), created %s\n", len(manifest.Wallets), manifest.CreatedAt.Format("2006-01-02 15:04:05"))
		if len(manifest.Wallets) > 0 {
			outln(w, fmt.Sprintf("Wallets: %s", strings.Join(manifest.Wallets, ", ")))
		}
	})
}
