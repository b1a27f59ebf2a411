package output_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xrbwallet/internal/output"
)

func TestFormatter_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	require.NoError(t, f.Print(map[string]string{"address": "xrb_1"}))

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "xrb_1", result["address"])
}

func TestFormatter_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	require.NoError(t, f.Print("hello world"))
	require.NoError(t, f.Printf("n=%d\n", 3))
	require.NoError(t, f.Println("done"))
	assert.Equal(t, "hello world\nn=3\ndone\n", buf.String())
}

type stringer struct{}

func (stringer) String() string { return "from stringer" }

func TestFormatter_TextStringer(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	require.NoError(t, f.Print(stringer{}))
	require.NoError(t, f.Print(42))
	assert.Equal(t, "from stringer\n42\n", buf.String())
}

func TestFormatter_Result(t *testing.T) {
	t.Parallel()
	data := map[string]int{"count": 2}
	text := func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "2 wallets")
		return err
	}

	var jsonBuf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatJSON, &jsonBuf).Result(data, text))
	assert.JSONEq(t, `{"count":2}`, jsonBuf.String())

	var textBuf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatText, &textBuf).Result(data, text))
	assert.Equal(t, "2 wallets\n", textBuf.String())
}

func TestFormatter_AutoResolvesToJSONForBuffers(t *testing.T) {
	t.Parallel()
	f := output.NewFormatter(output.FormatAuto, &bytes.Buffer{})
	assert.Equal(t, output.FormatJSON, f.Format())
	assert.True(t, f.IsJSON())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected output.Format
	}{
		{"json", output.FormatJSON},
		{"JSON", output.FormatJSON},
		{" text ", output.FormatText},
		{"auto", output.FormatAuto},
		{"", output.FormatAuto},
		{"yaml", output.FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, output.ParseFormat(tt.input))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, ""))
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, output.IsTerminal(&bytes.Buffer{}))
	assert.False(t, output.IsTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, output.IsTerminal(f))
}

func TestMessages(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	output.Info(&buf, "opened %s", "main")
	output.Warn(&buf, "careful")
	output.Success(&buf, "saved %d accounts", 2)

	assert.Equal(t, "ℹ️  opened main\n⚠️  careful\n✅ saved 2 accounts\n", buf.String())
}
