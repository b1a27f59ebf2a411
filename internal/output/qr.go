package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRConfig configures QR code rendering.
type QRConfig struct {
	// Level is the error recovery level.
	Level qrcode.RecoveryLevel
	// QuietZone is the number of empty modules around the code.
	QuietZone int
	// Force renders even when the writer is not a terminal.
	Force bool
}

// DefaultQRConfig returns defaults for terminal QR rendering.
func DefaultQRConfig() QRConfig {
	return QRConfig{
		Level:     qrcode.Medium,
		QuietZone: 2,
	}
}

// CanRenderQR checks if the output writer is a terminal suitable for QR rendering.
func CanRenderQR(w io.Writer) bool {
	return IsTerminal(w)
}

// RenderQR draws data as a QR code using half-block characters, two
// modules per character row. Nothing is written to a non-terminal writer
// unless cfg.Force is set.
func RenderQR(w io.Writer, data string, cfg QRConfig) error {
	if !cfg.Force && !CanRenderQR(w) {
		return nil
	}

	text, err := QRString(data, cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// QRString renders data as half-block text.
func QRString(data string, cfg QRConfig) (string, error) {
	code, err := qrcode.New(data, cfg.Level)
	if err != nil {
		return "", fmt.Errorf("creating QR code: %w", err)
	}
	code.DisableBorder = true

	bitmap := padBitmap(code.Bitmap(), cfg.QuietZone)

	var sb strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := false
			if y+1 < len(bitmap) {
				bottom = bitmap[y+1][x]
			}
			sb.WriteString(halfBlock(top, bottom))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// WriteQRPNG writes data as a PNG image of size pixels square.
func WriteQRPNG(w io.Writer, data string, level qrcode.RecoveryLevel, size int) error {
	code, err := qrcode.New(data, level)
	if err != nil {
		return fmt.Errorf("creating QR code: %w", err)
	}
	return code.Write(size, w)
}

// halfBlock picks the glyph for a pair of vertically stacked modules.
// Dark modules are drawn as blank so the code reads on dark terminals.
func halfBlock(top, bottom bool) string {
	switch {
	case top && bottom:
		return " "
	case top:
		return "▄"
	case bottom:
		return "▀"
	default:
		return "█"
	}
}

func padBitmap(bitmap [][]bool, quiet int) [][]bool {
	if quiet <= 0 {
		return bitmap
	}
	size := len(bitmap) + 2*quiet
	out := make([][]bool, size)
	for y := range out {
		out[y] = make([]bool, size)
		if y < quiet || y >= quiet+len(bitmap) {
			continue
		}
		copy(out[y][quiet:], bitmap[y-quiet])
	}
	return out
}
