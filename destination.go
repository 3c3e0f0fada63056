package convert

// DestinationKind tells a Destination's storage mode.
type DestinationKind int

const (
	DestinationText DestinationKind = iota
	DestinationBytes
)

// Destination is a named RTF buffer: either a Text tree (rtf, fonttbl,
// stylesheet content) or an opaque byte sink (pict, object, and other
// destinations whose payload is consumed whole rather than interpreted).
type Destination struct {
	Kind  DestinationKind
	text  *Text
	bytes []byte
}

func newTextDestination() *Destination {
	return &Destination{Kind: DestinationText, text: newText()}
}

func newBytesDestination() *Destination {
	return &Destination{Kind: DestinationBytes}
}

// AsBytes flattens a Destination to its raw bytes: for Text destinations,
// every line's bytes concatenated in document order; for Bytes
// destinations, the accumulated buffer itself.
func (d *Destination) AsBytes() []byte {
	if d.Kind == DestinationBytes {
		return d.bytes
	}
	var out []byte
	for _, page := range d.text.Pages {
		for _, section := range page.Sections {
			for _, para := range section.Paras {
				for _, line := range para.Lines {
					out = append(out, line.Bytes...)
				}
			}
		}
	}
	return out
}

// Text returns the underlying document tree; nil for a Bytes destination.
func (d *Destination) Text() *Text {
	return d.text
}

func (d *Destination) newPage() {
	if d.Kind != DestinationText {
		return
	}
	d.text.Pages = append(d.text.Pages, newPage())
}

func (d *Destination) newSection() {
	if d.Kind != DestinationText {
		return
	}
	lp := d.text.lastPage()
	lp.Sections = append(lp.Sections, newSection())
}

func (d *Destination) newParagraph(followTable bool) {
	if d.Kind != DestinationText {
		return
	}
	d.text.newParagraph(followTable)
}

func (d *Destination) newLine() {
	if d.Kind != DestinationText {
		return
	}
	d.text.newLine()
}

// appendText appends a run of text to the current line, starting a new
// paragraph/line where the incoming font/style/stylesheet forces it.
// It is a programmer error to call this on a Bytes destination.
func (d *Destination) appendText(newBytes []byte, font int, style *FontStyle, paraStyle *ParagraphStyle, stylesheet *int, inTable bool, enc *Encoding) {
	if len(newBytes) == 0 {
		return
	}
	if d.Kind != DestinationText {
		panic("convert: attempting to add text to a byte destination")
	}
	if !inTable {
		d.text.lastOrNewParagraph(stylesheet, paraStyle, inTable)
	}
	baseEncoding := d.text.Encoding
	line := d.text.lastOrNewLine(font, style)
	line.Bytes = append(line.Bytes, newBytes...)
	if !baseEncoding.Equal(enc) {
		line.Encoding = enc
	}
}

// appendBytes appends to a Bytes destination's raw buffer. It is a
// programmer error to call this on a Text destination.
func (d *Destination) appendBytes(newBytes []byte) {
	if d.Kind != DestinationBytes {
		panic("convert: attempting to add bytes to a text destination")
	}
	d.bytes = append(d.bytes, newBytes...)
}
