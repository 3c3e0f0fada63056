package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingFromCodepage(t *testing.T) {
	enc := EncodingFromCodepage(1252)
	require.NotNil(t, enc)
	require.Equal(t, "windows-1252", enc.Name)

	require.Nil(t, EncodingFromCodepage(99999))
}

func TestEncodingFromCharset(t *testing.T) {
	enc := EncodingFromCharset(128)
	require.NotNil(t, enc)
	require.Equal(t, "shift_jis", enc.Name)
	require.True(t, CharsetIsShiftJIS(128))
	require.False(t, CharsetIsShiftJIS(0))
}

func TestEncodingDecodeNilFallsBackToShiftJIS(t *testing.T) {
	var enc *Encoding
	require.Equal(t, ShiftJIS.Decode([]byte("abc")), enc.Decode([]byte("abc")))
}

func TestEncodingEqual(t *testing.T) {
	require.True(t, ShiftJIS.Equal(ShiftJIS))
	a := &Encoding{Name: "x"}
	b := &Encoding{Name: "x"}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(UTF16LE))

	var nilEnc *Encoding
	require.False(t, nilEnc.Equal(a))
	require.True(t, nilEnc.Equal(nil))
}
