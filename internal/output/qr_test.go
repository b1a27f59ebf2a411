package output_test

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xrbwallet/internal/output"
)

const qrAddress = "xrb_3i1aq1cchnmbn9x5rsbap8b15akfh7wj7pwskuzi7ahz8oq6cobd99d4r3b7"

func TestDefaultQRConfig(t *testing.T) {
	t.Parallel()
	cfg := output.DefaultQRConfig()
	assert.Equal(t, qrcode.Medium, cfg.Level)
	assert.Equal(t, 2, cfg.QuietZone)
	assert.False(t, cfg.Force)
}

func TestCanRenderQR(t *testing.T) {
	t.Parallel()
	assert.False(t, output.CanRenderQR(&bytes.Buffer{}))
	assert.False(t, output.CanRenderQR(nil))
}

func TestRenderQR_NonTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, output.RenderQR(&buf, qrAddress, output.DefaultQRConfig()))
	assert.Empty(t, buf.String())
}

func TestRenderQR_Forced(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := output.DefaultQRConfig()
	cfg.Force = true

	require.NoError(t, output.RenderQR(&buf, qrAddress, cfg))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.NotEmpty(t, lines)

	width := utf8.RuneCountInString(lines[0])
	assert.Len(t, lines, (width+1)/2)
	for _, line := range lines {
		assert.Equal(t, width, utf8.RuneCountInString(line))
	}
	// The first two rows are quiet zone.
	assert.Equal(t, strings.Repeat("█", width), lines[0])
}

func TestQRString_NoQuietZone(t *testing.T) {
	t.Parallel()
	cfg := output.DefaultQRConfig()
	cfg.QuietZone = 0

	text, err := output.QRString(qrAddress, cfg)
	require.NoError(t, err)

	// Top-left finder pattern starts with dark modules.
	first, _ := utf8.DecodeRuneInString(text)
	assert.Equal(t, ' ', first)
}

func TestWriteQRPNG(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, output.WriteQRPNG(&buf, qrAddress, qrcode.Medium, 128))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}
