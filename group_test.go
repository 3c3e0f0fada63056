package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGroup() *GroupState {
	g := newGroupState(newGroupShared())
	g.setDestination("rtf", true)
	return g
}

func TestWriteSkipsIgnoreCountPrefix(t *testing.T) {
	g := newTestGroup()
	g.ignoreCount = 1

	g.write([]byte("?x"))

	dest := g.shared.get("rtf")
	require.Equal(t, []byte("x"), dest.AsBytes())
	require.Equal(t, 0, g.ignoreCount)
}

func TestUnicodeEscapeDecrementsSkipAndArmsIgnore(t *testing.T) {
	g := newTestGroup()
	two := 2
	g.SetValue("uc", &two)
	require.Equal(t, 2, g.unicodeCount)

	cp := 0x3042
	g.SetValue("u", &cp)
	require.Equal(t, 1, g.unicodeCount)
	require.Equal(t, 1, g.ignoreCount)

	// the raw fallback byte following the escape is suppressed, the rest
	// of the write goes through
	g.write([]byte("?after"))
	require.Contains(t, string(g.shared.get("rtf").AsBytes()), "after")
	require.NotContains(t, string(g.shared.get("rtf").AsBytes()), "?")
}

func TestColortblSemicolonFinalizesPendingColor(t *testing.T) {
	g := newGroupState(newGroupShared())
	g.setDestination("colortbl", true)

	g.write([]byte(";"))
	v := 255
	g.SetValue("red", &v)
	g.write([]byte(";"))

	require.Len(t, g.colors, 2)
	require.Equal(t, byte(255), g.colors[0].R)
	require.Equal(t, Color{}, g.colors[1])
}

func TestToggleOffRemovesKey(t *testing.T) {
	g := newTestGroup()
	g.SetValue("b", nil)
	require.True(t, g.HasKey("b"))

	zero := 0
	g.SetValue("b", &zero)
	require.False(t, g.HasKey("b"))
}

func TestResetParagraphProperties(t *testing.T) {
	g := newTestGroup()
	fs := 24
	g.SetValue("qc", nil)
	g.SetValue("fi", &fs)
	g.SetValue("intbl", nil)
	g.SetValue("b", nil)
	g.SetValue("fs", &fs)

	g.ResetParagraphProperties()

	require.Nil(t, g.GetCurParaStyle())
	require.Nil(t, g.GetCurStyle())
	require.False(t, g.HasKey("intbl"))
}

func TestGetCurStyleNilWhenNothingSet(t *testing.T) {
	g := newTestGroup()
	require.Nil(t, g.GetCurStyle())
}

func TestGetCurStyleWithColorOnly(t *testing.T) {
	g := newTestGroup()
	one := 1
	g.SetValue("cf", &one)

	style := g.GetCurStyle()
	require.NotNil(t, style)
	require.Equal(t, 1, style.ForegroundColor)
	require.False(t, style.Bold)
}

func TestGetCurParaStyle(t *testing.T) {
	g := newTestGroup()
	require.Nil(t, g.GetCurParaStyle())

	li := 720
	g.SetValue("qc", nil)
	g.SetValue("li", &li)

	style := g.GetCurParaStyle()
	require.NotNil(t, style)
	require.Equal(t, AlignCenter, *style.Align)
	require.Equal(t, 720, *style.LeftIndent)
	require.Nil(t, style.RightIndent)
}

func TestCloneSharesDestinationTableButCopiesValues(t *testing.T) {
	g := newTestGroup()
	one := 1
	g.SetValue("cf", &one)

	child := g.clone()
	child.SetValue("b", nil)

	require.False(t, g.HasKey("b"))
	require.True(t, child.HasKey("cf"))
	require.Same(t, g.shared, child.shared)
}

func TestSetDestinationCreatesOnce(t *testing.T) {
	shared := newGroupShared()
	g := newGroupState(shared)
	g.setDestination("rtf", true)
	first := shared.get("rtf")

	g.setDestination("rtf", true)
	require.Same(t, first, shared.get("rtf"))
}

func TestGetAndClearIgnoreNextControl(t *testing.T) {
	g := newTestGroup()
	require.False(t, g.getAndClearIgnoreNextControl())

	g.setOptIgnoreNextControl()
	require.True(t, g.getAndClearIgnoreNextControl())
	require.False(t, g.getAndClearIgnoreNextControl())
}
