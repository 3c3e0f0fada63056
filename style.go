package convert

// Align is paragraph alignment, set by the \ql/\qr/\qj/\qc flags.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignJustify
	AlignCenter
)

// ParagraphStyle is the resolved alignment + indents in effect for a
// paragraph: the RTF flags/values \ql..\qc, \fi, \li, \ri.
type ParagraphStyle struct {
	Align                                     *Align
	FirstIndent, LeftIndent, RightIndent *int
}

// Equal reports whether two ParagraphStyle values are the same. Used by
// Text.lastOrNewParagraph to decide whether the current paragraph can be
// reused or a new one is required.
func (s ParagraphStyle) Equal(o ParagraphStyle) bool {
	return alignPtrEqual(s.Align, o.Align) &&
		intPtrEqual(s.FirstIndent, o.FirstIndent) &&
		intPtrEqual(s.LeftIndent, o.LeftIndent) &&
		intPtrEqual(s.RightIndent, o.RightIndent)
}

func alignPtrEqual(a, b *Align) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func paragraphStyleEqual(a, b *ParagraphStyle) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// StyleSheet is a registered entry from a {\stylesheet ...} destination,
// referenced elsewhere in the tree by Number.
type StyleSheet struct {
	Number     int
	Name       string
	FontStyle  *FontStyle
	ParaStyle  *ParagraphStyle
}

// DefaultStyleSheet is substituted whenever a paragraph references a
// stylesheet number that was never defined; missing references resolve
// to neutral defaults rather than failing.
var DefaultStyleSheet = StyleSheet{Number: 0, Name: "Default"}
