package convert

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// End-to-end conversion scenarios exercised through the public API
// (FromBytes/IntoText/GetText/IntoDocx).

func TestPlainTextDocument(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi Hello}`))
	require.NoError(t, err)

	text, _, _ := doc.GetText()
	require.NotNil(t, text)
	require.Len(t, text.Pages, 1)
	require.Len(t, text.Pages[0].Sections, 1)
	require.Equal(t, "Hello", doc.IntoText())
}

func TestBoldToggleSplitsLines(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi\b Bold\b0  normal}`))
	require.NoError(t, err)

	text, _, _ := doc.GetText()
	require.NotNil(t, text)
	para := text.lastParagraph(false)
	require.GreaterOrEqual(t, len(para.Lines), 2)

	var bold, plain *Line
	for _, l := range para.Lines {
		if len(l.Bytes) == 0 {
			continue
		}
		if l.Style != nil && l.Style.Bold {
			bold = l
		} else {
			plain = l
		}
	}
	require.NotNil(t, bold)
	require.NotNil(t, plain)
	require.Equal(t, "Bold", decodeLine(text.Encoding, bold))
	require.Equal(t, " normal", decodeLine(text.Encoding, plain))
}

func TestUnicodeEscapeSuppressesFallbackByte(t *testing.T) {
	codepoint := 22909
	src := "{" + `\rtf1\ansi\uc1\u` + fmt.Sprint(codepoint) + "?}"
	doc, err := FromBytes([]byte(src))
	require.NoError(t, err)

	out := doc.IntoText()
	require.Contains(t, out, string(rune(codepoint)))
	require.NotContains(t, out, "?")
}

func TestColorTableResolution(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1{\colortbl;\red255\green0\blue0;}\cf1 red}`))
	require.NoError(t, err)

	text, _, _ := doc.GetText()
	require.NotNil(t, text)
	// two ';' delimiters produce two entries; \cf1 resolves 1-based to
	// Colors[0], so the defined RGB lands first and the trailing
	// delimiter's implicit default lands last.
	state := doc.interpret()
	require.Len(t, state.Colors, 2)
	require.Equal(t, Color{R: 255, G: 0, B: 0}, state.Colors[0])
	require.Equal(t, Color{}, state.Colors[1])

	para := text.lastParagraph(false)
	var line *Line
	for _, l := range para.Lines {
		if len(l.Bytes) > 0 {
			line = l
		}
	}
	require.NotNil(t, line)
	require.NotNil(t, line.Style)
	require.Equal(t, 1, line.Style.ForegroundColor)
}

func TestShiftJISFontRegistration(t *testing.T) {
	codepoint := 12354
	src := `{\rtf1{\fonttbl{\f0\fnil\fcharset128 MS Mincho;}}\f0 ` + `\u` + fmt.Sprint(codepoint) + "?}"
	doc, err := FromBytes([]byte(src))
	require.NoError(t, err)

	_, fonts, _ := doc.GetText()
	require.Contains(t, fonts, 0)
	require.NotNil(t, fonts[0].Charset)
	require.True(t, CharsetIsShiftJIS(*fonts[0].Charset))

	out := doc.IntoText()
	require.Contains(t, out, string(rune(codepoint)))
}

func TestTableRowsAndCells(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\trowd\cellx1500\cellx3000 A\cell B\cell\row}`))
	require.NoError(t, err)

	text, _, _ := doc.GetText()
	require.NotNil(t, text)
	para := text.lastParagraph(false)
	require.NotNil(t, para.Table)

	// each \cell pushes a successor cell, so the tree carries a trailing
	// empty third cell that the emitter skips.
	row := para.Table.Rows[0]
	require.Len(t, row.Cells, 3)
	require.True(t, row.Cells[2].IsEmpty())
	require.NotNil(t, row.Cells[0].Opts.Right)
	require.Equal(t, Twips(1500), *row.Cells[0].Opts.Right)
	require.NotNil(t, row.Cells[1].Opts.Right)
	require.Equal(t, Twips(3000), *row.Cells[1].Opts.Right)
	require.Equal(t, "A", decodeLine(text.Encoding, row.Cells[0].Paras[0].Lines[0]))
	require.Equal(t, "B", decodeLine(text.Encoding, row.Cells[1].Paras[0].Lines[0]))
}

func TestHexEscapeDecodesWithCurrentCodepage(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi caf\'e9}`))
	require.NoError(t, err)
	require.Equal(t, "café", doc.IntoText())
}

func TestIntoDocxWithTable(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\trowd\cellx1500\cellx3000 A\cell B\cell\row}`))
	require.NoError(t, err)

	data, err := doc.IntoDocx()
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestFromBase64RoundTrip(t *testing.T) {
	raw := []byte(`{\rtf1\ansi Hello}`)
	encoded := base64.StdEncoding.EncodeToString(raw)

	doc, err := FromBase64(encoded)
	require.NoError(t, err)
	require.Equal(t, "Hello", doc.IntoText())
}

func TestFromBase64InvalidInput(t *testing.T) {
	_, err := FromBase64("not valid base64!!")
	require.ErrorIs(t, err, ErrBase64Decode)
}

func TestIntoDocxProducesNonEmptyBytes(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi\b Bold\b0  normal\par}`))
	require.NoError(t, err)

	data, err := doc.IntoDocx()
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestIntoDocxBase64(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi Hello}`))
	require.NoError(t, err)

	encoded, err := doc.IntoDocxBase64()
	require.NoError(t, err)
	require.NotEmpty(t, encoded)
}

func TestUnbalancedEndGroupIsNotFatal(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi Hello}}`))
	require.NoError(t, err)
	require.Equal(t, "Hello", doc.IntoText())
}

