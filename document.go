package convert

import (
	"fmt"

	"github.com/rtfdocx/convert/internal/rtftoken"
)

// DocumentState drives RTF token interpretation: the group stack (one
// GroupState per level of brace nesting, all sharing the destination
// table), the pending-text buffer between tokens, and the registries
// (fonts, stylesheets, colors, default font) built up as definition
// destinations close.
type DocumentState struct {
	shared      *groupShared
	groupStack  []*GroupState
	buffer      []byte
	Fonts       map[int]*Font
	Stylesheets map[int]*StyleSheet
	Colors      []Color
	DefaultFont int
}

// NewDocumentState returns an interpreter with no groups open yet; the
// first StartGroup token creates the root group.
func NewDocumentState() *DocumentState {
	return &DocumentState{
		shared:      newGroupShared(),
		Fonts:       make(map[int]*Font),
		Stylesheets: make(map[int]*StyleSheet),
	}
}

func (d *DocumentState) lastGroup() *GroupState {
	if len(d.groupStack) == 0 {
		return nil
	}
	return d.groupStack[len(d.groupStack)-1]
}

// doControlBin is a no-op: binary control data (\bin) is skipped rather
// than interpreted.
func (d *DocumentState) doControlBin(data []byte, wordIsOptional bool) {}

func (d *DocumentState) doControlSymbol(symbol rune, arg *int, wordIsOptional bool) {
	group := d.lastGroup()
	if group == nil {
		log.Warnf("document format error: control symbol found outside of any document group: '\\%c'", symbol)
		return
	}
	sym := string(symbol)
	if handler, ok := controlSymbols[sym]; ok {
		handler(group, sym, arg)
		return
	}
	if wordIsOptional {
		log.Warnf("skipping optional unsupported control word \\%c", symbol)
		return
	}
	log.Warnf("unsupported/illegal control symbol \\%c (writing to document anyway)", symbol)
	d.writeToCurrentDestination([]byte(sym))
}

func (d *DocumentState) doControlWord(name string, arg *int, wordIsOptional bool) {
	group := d.lastGroup()
	if group == nil {
		log.Warnf("document format error: control word found outside of any document group: '\\%s'", name)
		return
	}
	if handler, ok := controlDestinations[name]; ok {
		handler(group, name, arg)
	} else if handler, ok := controlSymbols[name]; ok {
		handler(group, name, arg)
	} else if handler, ok := controlValues[name]; ok {
		handler(group, name, arg)
	} else if handler, ok := controlFlags[name]; ok {
		handler(group, name, arg)
	} else if handler, ok := controlToggles[name]; ok {
		handler(group, name, arg)
	} else if wordIsOptional {
		log.Warnf("skipping optional unsupported control word \\%s", name)
	} else {
		log.Warnf("unsupported/illegal control word \\%s", name)
	}
}

func (d *DocumentState) writeToCurrentDestination(bytes []byte) {
	group := d.lastGroup()
	if group == nil {
		log.Warnf("document format error: document text found outside of any document group: %v", bytes)
		return
	}
	group.write(bytes)
}

// startGroup flushes whatever is buffered in the currently-open group,
// then pushes a copy of it (or a fresh root group, if none is open yet)
// as the new top of stack, per RTF's "{ opens a scope that inherits the
// enclosing scope's state" rule.
func (d *DocumentState) startGroup() {
	if g := d.lastGroup(); g != nil {
		g.flush()
	}
	if g := d.lastGroup(); g != nil {
		d.groupStack = append(d.groupStack, g.clone())
	} else {
		d.groupStack = append(d.groupStack, newGroupState(d.shared))
	}
}

// processFont finalizes a {\fonttbl ...} entry's sub-group: the font name
// was written as plain text into the shared "fonttbl" destination (reused
// as scratch space across every font entry), terminated by a trailing ';'
// which is stripped before registering the Font and clearing the scratch
// buffer for the next entry.
func (d *DocumentState) processFont(group *GroupState) {
	number := group.intValueOr("f", 1)
	charset := group.values["charset"]
	tbl := d.shared.get("fonttbl")
	if tbl == nil || tbl.Kind != DestinationText {
		return
	}
	fontName := tbl.text.GetText()
	fontName = trimTrailingSemicolon(fontName)
	tbl.text.clear()
	// the enclosing {\fonttbl ...} group itself also lands here when it
	// closes; with no \f value and an already-drained scratch buffer
	// there is no entry to register.
	if !group.HasKey("f") && fontName == "" {
		return
	}
	d.Fonts[number] = &Font{
		Number:  number,
		Name:    fontName,
		Charset: charset,
		Family:  group.getFontFamily(),
	}
	if charset != nil && CharsetIsShiftJIS(*charset) {
		tbl.text.Encoding = ShiftJIS
	}
}

// processStylesheet mirrors processFont for {\stylesheet ...} entries,
// reading the style's name from the "stylesheet" destination, which
// serves as scratch space across every style entry.
func (d *DocumentState) processStylesheet(group *GroupState) {
	number := group.intValueOr("s", 0)
	tbl := d.shared.get("stylesheet")
	if tbl == nil || tbl.Kind != DestinationText {
		return
	}
	styleName := tbl.text.GetText()
	styleName = trimTrailingSemicolon(styleName)
	tbl.text.clear()
	if !group.HasKey("s") && styleName == "" {
		return
	}
	d.Stylesheets[number] = &StyleSheet{
		Number:    number,
		Name:      styleName,
		FontStyle: group.GetCurStyle(),
		ParaStyle: group.GetCurParaStyle(),
	}
}

func trimTrailingSemicolon(s string) string {
	if len(s) > 0 && s[len(s)-1] == ';' {
		return s[:len(s)-1]
	}
	return s
}

// processGroup finalizes a closed group against the destination it was
// writing to: font/stylesheet table entries register themselves, a
// closed colortbl drains its pending colors into the document-wide list,
// and a closed rtf group records its \deffN default font.
func (d *DocumentState) processGroup(group *GroupState) {
	name, ok := group.destinationName()
	if !ok {
		return
	}
	switch name {
	case "fonttbl":
		d.processFont(group)
	case "stylesheet":
		d.processStylesheet(group)
	case "colortbl":
		for {
			c, ok := group.shiftColor()
			if !ok {
				break
			}
			d.Colors = append(d.Colors, c)
		}
	case "rtf":
		if v := group.values["deff"]; v != nil {
			d.DefaultFont = *v
		}
	}
}

// endGroup pops the top group, flushes and finalizes it, and warns (but
// does not panic) on an unmatched '}'.
func (d *DocumentState) endGroup() {
	if len(d.groupStack) == 0 {
		log.Warn("document format error: end group count exceeds number start groups")
		return
	}
	group := d.groupStack[len(d.groupStack)-1]
	d.groupStack = d.groupStack[:len(d.groupStack)-1]
	group.flush()
	d.processGroup(group)
}

func (d *DocumentState) writeBuffer(bytes []byte) {
	d.buffer = append(d.buffer, bytes...)
}

func (d *DocumentState) flushBuffer() {
	if len(d.buffer) == 0 {
		return
	}
	buf := d.buffer
	d.buffer = nil
	d.writeToCurrentDestination(buf)
}

// ProcessToken advances the interpreter by one tokenizer token: text runs
// are buffered until the next non-text token forces a flush, so that a
// control word immediately following text doesn't split a single
// destination write in two.
func (d *DocumentState) ProcessToken(tok rtftoken.Token) error {
	wordIsOptional := false
	if g := d.lastGroup(); g != nil {
		wordIsOptional = g.getAndClearIgnoreNextControl()
	}

	if tok.Kind == rtftoken.Text {
		d.writeBuffer(tok.Bytes)
		return nil
	}

	d.flushBuffer()
	switch tok.Kind {
	case rtftoken.ControlSymbol:
		d.doControlSymbol(tok.Symbol, tok.Arg, wordIsOptional)
	case rtftoken.ControlWord:
		d.doControlWord(tok.Name, tok.Arg, wordIsOptional)
	case rtftoken.ControlBin:
		d.doControlBin(tok.Bytes, wordIsOptional)
	case rtftoken.StartGroup:
		d.startGroup()
	case rtftoken.EndGroup:
		d.endGroup()
	case rtftoken.Newline:
		// ignored; callers filter these out before dispatch
	}
	return nil
}

// Destination exposes a named buffer's current Destination, or nil if it
// was never opened. Used by FromBytes's caller-visible accessors and by
// the docx emitter.
func (d *DocumentState) Destination(name string) *Destination {
	return d.shared.get(name)
}

func (d *DocumentState) String() string {
	return fmt.Sprintf("DocumentState{groups=%d fonts=%d stylesheets=%d colors=%d}", len(d.groupStack), len(d.Fonts), len(d.Stylesheets), len(d.Colors))
}
