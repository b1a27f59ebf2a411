package cli

import (
	"encoding/hex"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/address"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Encode, decode and find xrb_ addresses",
	Long:  `Convert between public keys and checksummed xrb_ addresses. No wallet is needed.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressEncodeCmd = &cobra.Command{
	Use:   "encode <public-key-hex>",
	Short: "Encode a 32-byte public key as an address",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddressEncode,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressDecodeCmd = &cobra.Command{
	Use:   "decode <address>",
	Short: "Validate an address and print its public key",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddressDecode,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addressParseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Find a valid address in free text",
	Long: `Look for the first xrb_ occurrence in the text and print it if it is a
valid address. Pass "-" to read the text from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddressParse,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.AddCommand(addressEncodeCmd, addressDecodeCmd, addressParseCmd)
}

// addressView pairs an address with its public key.
type addressView struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}

func runAddressEncode(cmd *cobra.Command, args []string) error {
	key, err := hex.DecodeString(strings.TrimSpace(args[0]))
	if err != nil {
		return walleterr.WithCause(walleterr.ErrMalformedInput, err)
	}

	addr, err := address.Encode(key)
	if err != nil {
		return err
	}

	view := addressView{Address: addr, PublicKey: strings.ToUpper(hex.EncodeToString(key))}
	return emit(cmd, view, func(w io.Writer) {
		outln(w, view.Address)
	})
}

func runAddressDecode(cmd *cobra.Command, args []string) error {
	addr := strings.TrimSpace(args[0])
	key, err := address.Decode(addr)
	if err != nil {
		return err
	}

	view := addressView{Address: addr, PublicKey: strings.ToUpper(hex.EncodeToString(key))}
	return emit(cmd, view, func(w io.Writer) {
		outln(w, view.PublicKey)
	})
}

func runAddressParse(cmd *cobra.Command, args []string) error {
	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		text = string(data)
	}

	addr, ok := address.ParseFromText(text)
	if !ok {
		return walleterr.WithSuggestion(walleterr.ErrInvalidFormat, "no valid xrb_ address found in the text")
	}

	return emit(cmd, map[string]string{"address": addr}, func(w io.Writer) {
		outln(w, addr)
	})
}
