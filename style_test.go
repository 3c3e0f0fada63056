package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParagraphStyleEqual(t *testing.T) {
	left := 100
	align := AlignCenter
	a := ParagraphStyle{Align: &align, LeftIndent: &left}
	b := ParagraphStyle{Align: &align, LeftIndent: &left}
	require.True(t, a.Equal(b))

	otherAlign := AlignRight
	c := ParagraphStyle{Align: &otherAlign, LeftIndent: &left}
	require.False(t, a.Equal(c))
}

func TestParagraphStyleEqualPointers(t *testing.T) {
	require.True(t, paragraphStyleEqual(nil, nil))
	require.False(t, paragraphStyleEqual(&ParagraphStyle{}, nil))
	require.True(t, paragraphStyleEqual(&ParagraphStyle{}, &ParagraphStyle{}))
}

func TestDefaultStyleSheet(t *testing.T) {
	require.Equal(t, 0, DefaultStyleSheet.Number)
	require.Nil(t, DefaultStyleSheet.FontStyle)
}
