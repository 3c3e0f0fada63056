package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendTextOnBytesDestinationPanics(t *testing.T) {
	d := newBytesDestination()
	require.Panics(t, func() {
		d.appendText([]byte("x"), 0, nil, nil, nil, false, cp1252)
	})
}

func TestAppendBytesOnTextDestinationPanics(t *testing.T) {
	d := newTextDestination()
	require.Panics(t, func() {
		d.appendBytes([]byte("x"))
	})
}

func TestAppendTextZeroLengthIsNoOp(t *testing.T) {
	d := newBytesDestination()
	require.NotPanics(t, func() {
		d.appendText(nil, 0, nil, nil, nil, false, nil)
	})
}

func TestAppendTextRecordsEncodingOverride(t *testing.T) {
	d := newTextDestination()
	d.text.Encoding = cp1252

	d.appendText([]byte{0x42, 0x30}, 0, nil, nil, nil, false, UTF16LE)

	line := d.text.lastLine()
	require.True(t, UTF16LE.Equal(line.Encoding))
}

func TestAppendTextSameEncodingLeavesLineEncodingUnset(t *testing.T) {
	d := newTextDestination()
	d.text.Encoding = cp1252

	d.appendText([]byte("abc"), 0, nil, nil, nil, false, cp1252)

	require.Nil(t, d.text.lastLine().Encoding)
}

func TestAsBytesFlattensTreeInOrder(t *testing.T) {
	d := newTextDestination()
	enc := d.text.Encoding
	d.appendText([]byte("ab"), 0, nil, nil, nil, false, enc)
	d.newLine()
	d.appendText([]byte("cd"), 0, nil, nil, nil, false, enc)

	require.Equal(t, []byte("abcd"), d.AsBytes())
}

func TestAsBytesOnBytesDestination(t *testing.T) {
	d := newBytesDestination()
	d.appendBytes([]byte{1, 2, 3})
	require.Equal(t, []byte{1, 2, 3}, d.AsBytes())
}
