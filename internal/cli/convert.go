package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/units"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between raw and XRB amounts",
	Long: `One XRB is 10^30 raw. Conversions are exact; amounts above the 128-bit
supply are rejected.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var convertToXRBCmd = &cobra.Command{
	Use:   "to-xrb <raw>",
	Short: "Convert a raw integer amount to XRB",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvertToXRB,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var convertToRawCmd = &cobra.Command{
	Use:   "to-raw <xrb>",
	Short: "Convert a decimal XRB amount to raw",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvertToRaw,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(convertToXRBCmd, convertToRawCmd)
}

// amountView shows both units of an amount.
type amountView struct {
	Raw string `json:"raw"`
	XRB string `json:"xrb"`
}

func runConvertToXRB(cmd *cobra.Command, args []string) error {
	raw := strings.TrimSpace(args[0])
	xrb, err := units.RawToXRB(raw)
	if err != nil {
		return err
	}

	view := amountView{Raw: raw, XRB: xrb}
	return emit(cmd, view, func(w io.Writer) {
		outln(w, view.XRB)
	})
}

func runConvertToRaw(cmd *cobra.Command, args []string) error {
	xrb := strings.TrimSpace(args[0])
	raw, err := units.XRBToRaw(xrb)
	if err != nil {
		return err
	}

	view := amountView{Raw: raw, XRB: xrb}
	return emit(cmd, view, func(w io.Writer) {
		outln(w, view.Raw)
	})
}
