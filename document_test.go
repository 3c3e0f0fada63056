package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalMarkerSkipsNextUnknownControl(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi a{\*\nonexistentword junk}b}`))
	require.NoError(t, err)
	require.Equal(t, "ajunkb", doc.IntoText())
}

func TestUnknownControlWordIsWarnedAndDropped(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi a\nonexistentword b}`))
	require.NoError(t, err)
	require.Equal(t, "ab", doc.IntoText())
}

func TestControlBinPayloadIsDropped(t *testing.T) {
	doc, err := FromBytes([]byte("{\\rtf1\\ansi a\\bin3 \x01\x02\x03b}"))
	require.NoError(t, err)
	require.Equal(t, "ab", doc.IntoText())
}

func TestDeffRecordedOnRtfGroupClose(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1\ansi\deff2 Hello}`))
	require.NoError(t, err)

	state := doc.interpret()
	require.Equal(t, 2, state.DefaultFont)
}

func TestStylesheetRegistration(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1{\fonttbl{\f0 Arial;}}{\stylesheet{\s1\qc Head;}}\s1 body}`))
	require.NoError(t, err)

	state := doc.interpret()
	require.Contains(t, state.Stylesheets, 1)
	sheet := state.Stylesheets[1]
	require.NotNil(t, sheet.ParaStyle)
	require.NotNil(t, sheet.ParaStyle.Align)
	require.Equal(t, AlignCenter, *sheet.ParaStyle.Align)
}

func TestFontTableRegistersEveryEntry(t *testing.T) {
	doc, err := FromBytes([]byte(`{\rtf1{\fonttbl{\f0\froman Times New Roman;}{\f1\fswiss Arial;}}x}`))
	require.NoError(t, err)

	_, fonts, _ := doc.GetText()
	require.Contains(t, fonts, 0)
	require.Contains(t, fonts, 1)
	require.Equal(t, "Times New Roman", fonts[0].Name)
	require.Equal(t, FontFamilyRoman, fonts[0].Family)
	require.Equal(t, "Arial", fonts[1].Name)
	require.Equal(t, FontFamilySwiss, fonts[1].Family)
}

func TestTextOutsideAnyGroupIsNotFatal(t *testing.T) {
	doc, err := FromBytes([]byte(`orphan{\rtf1\ansi Hello}`))
	require.NoError(t, err)
	require.Equal(t, "Hello", doc.IntoText())
}
