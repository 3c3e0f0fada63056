package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCharsetHandlersSetEncoding(t *testing.T) {
	cases := []struct {
		word string
		enc  *Encoding
	}{
		{"ansi", cp1252},
		{"mac", cpMac},
		{"pc", cp437},
		{"pca", cp850},
	}
	for _, c := range cases {
		g := newGroupState(newGroupShared())
		handler, ok := controlFlags[c.word]
		require.True(t, ok, c.word)
		handler(g, c.word, nil)
		require.True(t, g.getEncoding().Equal(c.enc), c.word)
	}
}

func TestAnsicpgOverridesDefaultEncoding(t *testing.T) {
	g := newGroupState(newGroupShared())
	require.True(t, g.getEncoding().Equal(cp1252))

	handler := controlValues["ansicpg"]
	cp := 850
	handler(g, "ansicpg", &cp)
	require.True(t, g.getEncoding().Equal(cp850))
}

func TestNewGroupStateDefaultsAllowPlainTextAndSingleUnicodeEscape(t *testing.T) {
	g := newGroupState(newGroupShared())
	require.NotNil(t, g.getEncoding())
	require.Equal(t, 1, g.unicodeCount)
}

func TestFcharsetAliasesToCharsetKey(t *testing.T) {
	g := newGroupState(newGroupShared())
	handler := controlValues["fcharset"]
	arg := 128
	handler(g, "fcharset", &arg)
	require.NotNil(t, g.values["charset"])
	require.Equal(t, 128, *g.values["charset"])
}
