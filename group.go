package convert

import "sync"

// groupShared is the destination table threaded through every nested
// GroupState: RTF groups form a tree (each {...} pushes a child state) but
// all of them write into the same set of named destinations. Shared by
// reference, guarded with a mutex taken and released within each
// accessor so no lock is ever held across a dispatch boundary.
type groupShared struct {
	mu           sync.Mutex
	destinations map[string]*Destination
}

func newGroupShared() *groupShared {
	return &groupShared{destinations: make(map[string]*Destination)}
}

func (g *groupShared) get(name string) *Destination {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.destinations[name]
}

func (g *groupShared) set(name string, d *Destination) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.destinations[name] = d
}

// GroupState is the interpreter state local to one RTF group (one level
// of brace nesting): the destination it currently writes to, the control
// values/flags/toggles accumulated in this group, and the small amount of
// cursor state (unicode skip counts, pending colors, buffered bytes)
// needed to interpret control words as they arrive.
type GroupState struct {
	shared              *groupShared
	curDestination      string
	hasDestination      bool
	destEncoding        *Encoding
	values              map[string]*int
	optIgnoreNextControl bool
	curFont             int
	hasFont             bool
	buffer              []byte
	borderSelect        BorderSelect
	unicodeCount        int
	ignoreCount         int
	colors              []Color
}

func newGroupState(shared *groupShared) *GroupState {
	return &GroupState{
		shared:       shared,
		values:       make(map[string]*int),
		borderSelect: BorderSelectParagraph,
		// Windows-1252 ("ANSI") is the conventional default character set a
		// reader assumes before any \ansi/\ansicpg/\mac/\pc/\pca declaration
		// is seen, so plain text immediately after \rtf1 still decodes.
		destEncoding: cp1252,
		// RTF defines \uc1 as the implicit default when no \uc control word
		// has been seen yet: one raw byte follows every \u escape.
		unicodeCount: 1,
	}
}

// clone produces the child GroupState pushed when a '{' opens a nested
// group: it shares the same destination table but copies the parent's
// values/flags/font/border-select so the child can diverge without
// mutating the parent (RTF group-scoping semantics).
func (g *GroupState) clone() *GroupState {
	values := make(map[string]*int, len(g.values))
	for k, v := range g.values {
		values[k] = v
	}
	colors := make([]Color, len(g.colors))
	copy(colors, g.colors)
	return &GroupState{
		shared:               g.shared,
		curDestination:       g.curDestination,
		hasDestination:       g.hasDestination,
		destEncoding:         g.destEncoding,
		values:               values,
		optIgnoreNextControl: g.optIgnoreNextControl,
		curFont:              g.curFont,
		hasFont:              g.hasFont,
		buffer:               nil,
		borderSelect:         g.borderSelect,
		unicodeCount:         g.unicodeCount,
		ignoreCount:          g.ignoreCount,
		colors:               colors,
	}
}

func (g *GroupState) setCodepage(cp int) {
	g.destEncoding = EncodingFromCodepage(cp)
}

func (g *GroupState) getEncoding() *Encoding {
	return g.destEncoding
}

func (g *GroupState) setEncoding(enc *Encoding) {
	g.destEncoding = enc
}

// setDestination switches to (creating if unseen) the named destination.
func (g *GroupState) setDestination(name string, usesEncoding bool) {
	g.curDestination = name
	g.hasDestination = true
	if existing := g.shared.get(name); existing != nil {
		return
	}
	if usesEncoding {
		d := newTextDestination()
		d.text.Encoding = g.getEncoding()
		g.shared.set(name, d)
	} else {
		g.shared.set(name, newBytesDestination())
	}
}

func (g *GroupState) destinationName() (string, bool) {
	return g.curDestination, g.hasDestination
}

func (g *GroupState) newLine() {
	g.flush()
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	if dest := g.shared.get(name); dest != nil {
		dest.newLine()
	}
}

func (g *GroupState) newSection() {
	g.flush()
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	if dest := g.shared.get(name); dest != nil {
		dest.newSection()
	}
}

func (g *GroupState) newPage() {
	g.flush()
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	if dest := g.shared.get(name); dest != nil {
		dest.newPage()
	}
}

func (g *GroupState) newParagraph() {
	g.flush()
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	if dest := g.shared.get(name); dest != nil {
		dest.newParagraph(g.HasKey("intbl"))
	}
}

// GetCurStyle resolves the FontStyle implied by the control values/flags
// accumulated so far in this group, or nil if none of bold/italic/
// underline/size/foreground/background are set.
func (g *GroupState) GetCurStyle() *FontStyle {
	bold := g.HasKey("b")
	italic := g.HasKey("i")
	underline := g.HasKey("u")
	size := g.values["fs"]
	cb := g.intValueOr("cb", 0)
	cf := g.intValueOr("cf", 0)
	if !bold && !italic && !underline && size == nil && cf == 0 && cb == 0 {
		return nil
	}
	return &FontStyle{
		Bold:            bold,
		Italic:          italic,
		Strike:          false,
		Underline:       underline,
		Size:            size,
		ForegroundColor: cf,
		BackgroundColor: cb,
	}
}

func (g *GroupState) intValueOr(name string, def int) int {
	v, ok := g.values[name]
	if !ok || v == nil {
		return def
	}
	return *v
}

// GetCurStylesheet returns the \sN stylesheet number in effect, if any.
func (g *GroupState) GetCurStylesheet() *int {
	return g.values["s"]
}

// ResetParagraphProperties clears the control values a \pard resets.
func (g *GroupState) ResetParagraphProperties() {
	for _, k := range []string{"ql", "qr", "qj", "qc", "fi", "li", "ri", "intbl", "b", "u", "i", "fs"} {
		delete(g.values, k)
	}
}

// GetCurParaStyle resolves the ParagraphStyle implied by the group's
// alignment flags and indent values, or nil if none are set.
func (g *GroupState) GetCurParaStyle() *ParagraphStyle {
	var align *Align
	switch {
	case g.HasKey("ql"):
		a := AlignLeft
		align = &a
	case g.HasKey("qr"):
		a := AlignRight
		align = &a
	case g.HasKey("qj"):
		a := AlignJustify
		align = &a
	case g.HasKey("qc"):
		a := AlignCenter
		align = &a
	}
	firstIndent := g.values["fi"]
	leftIndent := g.values["li"]
	rightIndent := g.values["ri"]
	if align == nil && firstIndent == nil && leftIndent == nil && rightIndent == nil {
		return nil
	}
	return &ParagraphStyle{
		Align:       align,
		FirstIndent: firstIndent,
		LeftIndent:  leftIndent,
		RightIndent: rightIndent,
	}
}

func (g *GroupState) nextColorIndex() {
	g.colors = append(g.colors, Color{})
}

// shiftColor pops the oldest pending color (colors are appended in
// colortbl order and drained in the same order by DocumentState).
func (g *GroupState) shiftColor() (Color, bool) {
	if len(g.colors) == 0 {
		return Color{}, false
	}
	c := g.colors[0]
	g.colors = g.colors[1:]
	return c, true
}

func (g *GroupState) flush() {
	if len(g.buffer) > 0 {
		buf := append([]byte(nil), g.buffer...)
		g.buffer = g.buffer[:0]
		g.write(buf)
	}
}

func (g *GroupState) bufferBytes(b []byte) {
	g.buffer = append(g.buffer, b...)
}

// writeUnicode emits the little-endian two-byte encoding of a \uN escape.
func (g *GroupState) writeUnicode(value int) {
	name, ok := g.destinationName()
	if !ok {
		log.Warnf("document format error: document text found outside of any document group: %d", value)
		return
	}
	dest := g.shared.get(name)
	if dest == nil || dest.Kind != DestinationText {
		return
	}
	font := 0
	if g.hasFont {
		font = g.curFont
	}
	dest.appendText([]byte{byte(value & 0xff), byte((value >> 8) & 0xff)}, font, g.GetCurStyle(), g.GetCurParaStyle(), g.GetCurStylesheet(), g.HasKey("intbl"), UTF16LE)
}

// write dispatches raw destination bytes: colortbl text is scanned for
// ';' separators that advance the pending-color cursor, everything else
// is appended to the active destination honoring ignoreCount (the
// \uN-driven ASCII-fallback skip counter).
func (g *GroupState) write(b []byte) {
	name, ok := g.destinationName()
	if !ok {
		log.Warnf("document format error: document text found outside of any document group: %v", b)
		return
	}
	if name == "colortbl" {
		for _, c := range b {
			if c == ';' {
				g.nextColorIndex()
			}
		}
		return
	}
	dest := g.shared.get(name)
	if dest == nil {
		panic("convert: specified destination " + name + " doesn't exist after verifying its existence")
	}
	skip := g.ignoreCount
	if skip > len(b) {
		skip = len(b)
	}
	switch dest.Kind {
	case DestinationText:
		if g.destEncoding != nil {
			font := 0
			if g.hasFont {
				font = g.curFont
			}
			dest.appendText(b[skip:], font, g.GetCurStyle(), g.GetCurParaStyle(), g.GetCurStylesheet(), g.HasKey("intbl"), g.destEncoding)
		} else {
			log.Warnf("writing to a text destination (%s) with no encoding set", name)
		}
	case DestinationBytes:
		dest.appendBytes(b[skip:])
	}
	if g.ignoreCount > 0 {
		g.ignoreCount--
	}
}

func (g *GroupState) setOptIgnoreNextControl() {
	g.optIgnoreNextControl = true
}

func (g *GroupState) getAndClearIgnoreNextControl() bool {
	old := g.optIgnoreNextControl
	g.optIgnoreNextControl = false
	return old
}

func (g *GroupState) addCell() {
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	dest := g.shared.get(name)
	if dest == nil || dest.Kind != DestinationText {
		return
	}
	lp := dest.text.lastParagraph(false)
	if lp.Table != nil {
		lp.Table.AddCell()
	}
}

func (g *GroupState) endRow() {
	delete(g.values, "intbl")
}

// setRow handles \trowd: starting a table where none exists, pushing a
// new row onto one that does, or splitting off a fresh table paragraph
// when the current paragraph already has non-table content.
func (g *GroupState) setRow() {
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	dest := g.shared.get(name)
	if dest == nil || dest.Kind != DestinationText {
		return
	}
	text := dest.text
	lp := text.lastParagraph(false)
	if lp.Table == nil && (len(lp.Lines) > 1 || len(lp.Lines[0].Bytes) > 0) {
		p := newParagraph()
		p.Table = newTable()
		sec := text.lastSection()
		sec.Paras = append(sec.Paras, p)
		return
	}
	lp = text.lastParagraph(false)
	if lp.Table != nil {
		lp.Table.AddRow()
	} else {
		lp.Table = newTable()
	}
}

func (g *GroupState) setBorderType(bt BorderType) {
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	dest := g.shared.get(name)
	if dest == nil || dest.Kind != DestinationText {
		return
	}
	dest.text.setBorderType(g.borderSelect, bt)
}

func (g *GroupState) setBorderWidth(width int) {
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	dest := g.shared.get(name)
	if dest == nil || dest.Kind != DestinationText {
		return
	}
	dest.text.setBorderWidth(g.borderSelect, width)
}

func (g *GroupState) setCellRight(right Twips) {
	name, ok := g.destinationName()
	if !ok {
		log.Warn("document format error: document text found outside of any document group")
		return
	}
	dest := g.shared.get(name)
	if dest == nil || dest.Kind != DestinationText {
		return
	}
	dest.text.setCellRight(right)
}

// SetValue records a control word's name/value pair, applying whatever
// side effect that control word carries (font selection, \pard reset,
// table/border bookkeeping, unicode-escape cursor, color-table component
// assignment, toggle-off handling) before storing it in g.values.
func (g *GroupState) SetValue(name string, value *int) {
	switch name {
	case "f":
		f := 1
		if value != nil {
			f = *value
		}
		g.curFont = f
		g.hasFont = true
	case "pard":
		g.ResetParagraphProperties()
	case "trowd":
		g.values["intbl"] = nil
		g.setRow()
	case "trbrdrt":
		g.borderSelect = BorderSelectRowTop
	case "trbrdrl":
		g.borderSelect = BorderSelectRowLeft
	case "trbrdrb":
		g.borderSelect = BorderSelectRowBottom
	case "trbrdrr":
		g.borderSelect = BorderSelectRowRight
	case "trbrdrh":
		g.borderSelect = BorderSelectRowHorizontal
	case "trbrdrv":
		g.borderSelect = BorderSelectRowVertical
	case "clbrdrt":
		g.borderSelect = BorderSelectCellTop
	case "clbrdrl":
		g.borderSelect = BorderSelectCellLeft
	case "clbrdrb":
		g.borderSelect = BorderSelectCellBottom
	case "clbrdrr":
		g.borderSelect = BorderSelectCellRight
	case "brdrs":
		g.setBorderType(BorderSingleThickness)
	case "brdrth":
		g.setBorderType(BorderDoubleThickness)
	case "brdrsh":
		g.setBorderType(BorderShadowed)
	case "brdrdb":
		g.setBorderType(BorderDouble)
	case "brdrdot":
		g.setBorderType(BorderDotted)
	case "brdrdash":
		g.setBorderType(BorderDashed)
	case "brdrhair":
		g.setBorderType(BorderHairline)
	case "brdrnone":
		g.setBorderType(BorderNone)
	case "brdrw":
		w := 0
		if value != nil {
			w = *value
		}
		g.setBorderWidth(w)
	case "cellx":
		if value != nil {
			g.setCellRight(Twips(*value))
		}
	case "uc":
		g.newLine()
		n := 0
		if value != nil {
			n = *value
		}
		g.unicodeCount = n
	case "u":
		if value == nil {
			break
		}
		if *value == 0 {
			g.newLine()
			delete(g.values, "u")
			return
		}
		if g.unicodeCount > 0 {
			g.writeUnicode(*value)
			g.unicodeCount--
			g.ignoreCount++
			if g.unicodeCount == 0 {
				g.newLine()
			}
		}
		return
	case "red":
		if value != nil && len(g.colors) > 0 {
			g.colors[len(g.colors)-1].R = byte(*value)
		}
	case "green":
		if value != nil && len(g.colors) > 0 {
			g.colors[len(g.colors)-1].G = byte(*value)
		}
	case "blue":
		if value != nil && len(g.colors) > 0 {
			g.colors[len(g.colors)-1].B = byte(*value)
		}
	case "b":
		if value != nil && *value == 0 {
			g.newLine()
			delete(g.values, "b")
			return
		}
	case "i":
		if value != nil && *value == 0 {
			g.newLine()
			delete(g.values, "i")
			return
		}
	}
	g.values[name] = value
}

// HasKey reports whether a control value/flag has been set in this group
// (present in the map, regardless of whether it carries a numeric value).
func (g *GroupState) HasKey(k string) bool {
	_, ok := g.values[k]
	return ok
}

func (g *GroupState) getFontFamily() FontFamily {
	switch {
	case g.HasKey("fnil"):
		return FontFamilyNil
	case g.HasKey("froman"):
		return FontFamilyRoman
	case g.HasKey("fswiss"):
		return FontFamilySwiss
	case g.HasKey("fmodern"):
		return FontFamilyModern
	case g.HasKey("fscript"):
		return FontFamilyScript
	case g.HasKey("fdecor"):
		return FontFamilyDecor
	case g.HasKey("ftech"):
		return FontFamilyTech
	case g.HasKey("fbidi"):
		return FontFamilyBidi
	default:
		return FontFamilyNil
	}
}
