package rtftoken

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeGroupBraces(t *testing.T) {
	toks, err := Tokenize([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, []Token{{Kind: StartGroup}, {Kind: EndGroup}}, toks)
}

func TestTokenizePlainText(t *testing.T) {
	toks, err := Tokenize([]byte(`Hello`))
	require.NoError(t, err)
	require.Equal(t, []Token{{Kind: Text, Bytes: []byte("Hello")}}, toks)
}

func TestTokenizeControlWordWithArgAndSpaceDelimiter(t *testing.T) {
	toks, err := Tokenize([]byte(`\fs24 text`))
	require.NoError(t, err)
	require.Len(t, toks, 2)

	arg := 24
	require.Equal(t, Token{Kind: ControlWord, Name: "fs", Arg: &arg}, toks[0])
	require.Equal(t, Token{Kind: Text, Bytes: []byte("text")}, toks[1])
}

func TestTokenizeControlWordNegativeArg(t *testing.T) {
	toks, err := Tokenize([]byte(`\fi-360`))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	arg := -360
	require.Equal(t, Token{Kind: ControlWord, Name: "fi", Arg: &arg}, toks[0])
}

func TestTokenizeControlWordNoArgNoSpaceDoesNotEatFollowingText(t *testing.T) {
	toks, err := Tokenize([]byte(`\parHello`))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	require.Equal(t, Token{Kind: ControlWord, Name: "par"}, toks[0])
	require.Equal(t, Token{Kind: Text, Bytes: []byte("Hello")}, toks[1])
}

func TestTokenizeControlSymbol(t *testing.T) {
	toks, err := Tokenize([]byte(`\~`))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, ControlSymbol, toks[0].Kind)
	require.Equal(t, '~', toks[0].Symbol)
}

func TestTokenizeEscapedHexByte(t *testing.T) {
	toks, err := Tokenize([]byte(`\'e9`))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	arg := 0xe9
	require.Equal(t, Token{Kind: ControlSymbol, Symbol: '\'', Arg: &arg}, toks[0])
}

func TestTokenizeCollapsesCRLFIntoSingleNewline(t *testing.T) {
	toks, err := Tokenize([]byte("a\r\nb"))
	require.NoError(t, err)
	require.Equal(t, []Token{
		{Kind: Text, Bytes: []byte("a")},
		{Kind: Newline},
		{Kind: Text, Bytes: []byte("b")},
	}, toks)
}

func TestTokenizeBinConsumesRawPayloadVerbatim(t *testing.T) {
	// the 3-byte payload deliberately contains a brace and a backslash to
	// prove they're consumed as opaque bytes, not reinterpreted as tokens.
	toks, err := Tokenize([]byte("\\bin3 {\\}A"))
	require.NoError(t, err)
	require.Equal(t, []Token{
		{Kind: ControlBin, Bytes: []byte("{\\}")},
		{Kind: Text, Bytes: []byte("A")},
	}, toks)
}

func TestTokenizeNestedGroupsWithControlWords(t *testing.T) {
	toks, err := Tokenize([]byte(`{\rtf1{\b text}}`))
	require.NoError(t, err)

	require.Equal(t, StartGroup, toks[0].Kind)
	require.Equal(t, ControlWord, toks[1].Kind)
	require.Equal(t, "rtf", toks[1].Name)
	one := 1
	require.Equal(t, &one, toks[1].Arg)
	require.Equal(t, StartGroup, toks[2].Kind)
	require.Equal(t, ControlWord, toks[3].Kind)
	require.Equal(t, "b", toks[3].Name)
	require.Equal(t, Text, toks[4].Kind)
	require.Equal(t, []byte("text"), toks[4].Bytes)
	require.Equal(t, EndGroup, toks[5].Kind)
	require.Equal(t, EndGroup, toks[6].Kind)
}
