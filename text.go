package convert

// Line is a run of raw (not yet decoded) bytes sharing one font and one
// resolved FontStyle. Bytes are decoded lazily, at GetText/IntoDocx time,
// once the line's font/encoding is known.
type Line struct {
	Bytes    []byte
	Font     *int
	Style    *FontStyle
	Encoding *Encoding
}

func newLine() *Line {
	return &Line{}
}

// Paragraph is either a run of Lines (text paragraph) or a Table
// (table-container paragraph), never both populated at once.
type Paragraph struct {
	Lines      []*Line
	Table      *Table
	Stylesheet *int
	Style      *ParagraphStyle
}

func newParagraph() *Paragraph {
	return &Paragraph{Lines: []*Line{newLine()}}
}

// IsEmpty reports a paragraph that has never received content: its sole
// line is present and empty.
func (p *Paragraph) IsEmpty() bool {
	return len(p.Lines) == 1 && len(p.Lines[0].Bytes) == 0
}

// Section is a run of Paragraphs between \sect boundaries.
type Section struct {
	Paras []*Paragraph
}

func newSection() *Section {
	return &Section{Paras: []*Paragraph{newParagraph()}}
}

// Page is a run of Sections between \page boundaries. RTF has no true
// page-break semantics outside a handful of control words; Page exists to
// mirror the Section/Paragraph/Line nesting the emitter walks.
type Page struct {
	Sections []*Section
}

func newPage() *Page {
	return &Page{Sections: []*Section{newSection()}}
}

// Text is the frozen document tree produced by interpreting an RTF byte
// stream: a list of Pages, plus the fallback Encoding used to decode any
// Line that never received its own.
type Text struct {
	Pages    []*Page
	Encoding *Encoding
}

func newText() *Text {
	return &Text{
		Pages:    []*Page{newPage()},
		Encoding: ShiftJIS,
	}
}

// GetText flattens the tree into a single decoded string, using each
// line's own encoding when set and falling back to t.Encoding (or Shift
// JIS) otherwise.
func (t *Text) GetText() string {
	var out []byte
	for _, page := range t.Pages {
		for _, section := range page.Sections {
			for _, para := range section.Paras {
				for _, line := range para.Lines {
					out = append(out, decodeLine(t.Encoding, line)...)
				}
			}
		}
	}
	return string(out)
}

func decodeLine(fallback *Encoding, line *Line) string {
	enc := line.Encoding
	if enc == nil {
		enc = fallback
	}
	if enc == nil {
		enc = ShiftJIS
	}
	return enc.Decode(line.Bytes)
}

func (t *Text) lastPage() *Page {
	return t.Pages[len(t.Pages)-1]
}

func (t *Text) lastSection() *Section {
	return t.lastPage().Sections[len(t.lastPage().Sections)-1]
}

// lastParagraph returns the last paragraph of the last section; when
// followTable is true and that paragraph holds a table, it descends into
// the table's last cell's last paragraph instead.
func (t *Text) lastParagraph(followTable bool) *Paragraph {
	sec := t.lastSection()
	lp := sec.Paras[len(sec.Paras)-1]
	if lp.Table != nil && followTable {
		return lp.Table.LastCell().Paras[len(lp.Table.LastCell().Paras)-1]
	}
	return lp
}

func (t *Text) lastLine() *Line {
	p := t.lastParagraph(false)
	if p.Table != nil {
		cellParas := p.Table.LastCell().Paras
		cp := cellParas[len(cellParas)-1]
		return cp.Lines[len(cp.Lines)-1]
	}
	return p.Lines[len(p.Lines)-1]
}

func (t *Text) newLine() {
	p := t.lastParagraph(true)
	if p.Table != nil {
		cellParas := p.Table.LastCell().Paras
		cp := cellParas[len(cellParas)-1]
		cp.Lines = append(cp.Lines, newLine())
		return
	}
	p.Lines = append(p.Lines, newLine())
}

func (t *Text) clear() {
	t.Pages = []*Page{newPage()}
}

// lastOrNewLine returns a line usable for appending bytes with the given
// font/style: the current line if unused or already carrying the same
// font+style, otherwise a freshly started one. This keeps every line's
// formatting homogeneous.
func (t *Text) lastOrNewLine(font int, style *FontStyle) *Line {
	line := t.lastLine()
	used := len(line.Bytes) > 0
	lineFont := line.Font
	lineStyle := line.Style
	if used && (!intPtrEqual(lineFont, &font) || !fontStyleEqual(lineStyle, style)) {
		t.newLine()
		nl := t.lastLine()
		nl.Font = &font
		nl.Style = style
		return nl
	}
	if line.Font == nil {
		line.Font = &font
	}
	if line.Style == nil {
		line.Style = style
	}
	return line
}

// removeUnused pops trailing empty line/paragraph/section/page nodes.
func (t *Text) removeUnused() {
	if len(t.lastLine().Bytes) == 0 {
		p := t.lastParagraph(false)
		p.Lines = p.Lines[:len(p.Lines)-1]
	}
	if lp := t.lastParagraph(false); len(lp.Lines) == 0 && lp.Table == nil {
		sec := t.lastSection()
		sec.Paras = sec.Paras[:len(sec.Paras)-1]
	}
	if sec := t.lastSection(); len(sec.Paras) == 0 {
		page := t.lastPage()
		page.Sections = page.Sections[:len(page.Sections)-1]
	}
	if page := t.lastPage(); len(page.Sections) == 0 {
		t.Pages = t.Pages[:len(t.Pages)-1]
	}
}

// newParagraph pushes a new paragraph. When followTable is true and the
// current paragraph holds a table, the new paragraph is pushed into that
// table's last cell instead of the section.
func (t *Text) newParagraph(followTable bool) {
	if followTable {
		if lp := t.lastParagraph(false); lp.Table != nil {
			cell := lp.Table.LastCell()
			cell.Paras = append(cell.Paras, newParagraph())
			return
		}
	}
	sec := t.lastSection()
	sec.Paras = append(sec.Paras, newParagraph())
}

// lastOrNewParagraph returns a paragraph usable for the given stylesheet
// reference/style/table membership, starting a new one whenever the
// table-membership changes or the current paragraph already has content
// under a different style.
func (t *Text) lastOrNewParagraph(stylesheet *int, style *ParagraphStyle, inTable bool) *Paragraph {
	hadTable := t.lastParagraph(false).Table != nil
	para := t.lastParagraph(inTable)
	used := len(para.Lines) > 1 || len(para.Lines[len(para.Lines)-1].Bytes) > 0
	paraStyle := para.Style
	paraStylesheet := para.Stylesheet

	if hadTable != inTable {
		sec := t.lastSection()
		sec.Paras = append(sec.Paras, newParagraph())
		newPara := t.lastParagraph(false)
		newPara.Stylesheet = stylesheet
		newPara.Style = style
		if inTable {
			newPara.Table = newTable()
		}
		return t.lastParagraph(inTable)
	}

	if used && (!paragraphStyleEqual(paraStyle, style) || !intPtrEqual(paraStylesheet, stylesheet)) {
		if len(t.lastLine().Bytes) == 0 {
			t.removeUnused()
		}
		t.newParagraph(inTable)
		newPara := t.lastParagraph(inTable)
		newPara.Stylesheet = stylesheet
		newPara.Style = style
		return newPara
	}

	if para.Stylesheet == nil {
		para.Stylesheet = stylesheet
	}
	if para.Style == nil {
		para.Style = style
	}
	return para
}

func (t *Text) getRowBorder() *RowBorder {
	table := t.lastParagraph(false).Table
	if table == nil {
		return nil
	}
	row := table.LastRow()
	if row.Border == nil {
		row.Border = &RowBorder{}
	}
	return row.Border
}

func (t *Text) getCellBorder() *CellBorder {
	table := t.lastParagraph(false).Table
	if table == nil {
		return nil
	}
	row := table.LastRow()
	var opts *CellOption
	if row.CellOptPos == 0 {
		opts = &row.Cells[0].Opts
	} else {
		if row.CellOptPos >= len(row.CellOpts) {
			return nil
		}
		opts = &row.CellOpts[row.CellOptPos]
	}
	if opts.Border == nil {
		opts.Border = &CellBorder{}
	}
	return opts.Border
}

// getBorder resolves (creating if absent) the *Border named by select,
// or nil for BorderSelectParagraph and any selector with no current table
// row/cell to attach to.
func (t *Text) getBorder(sel BorderSelect) *Border {
	ensure := func(b **Border) *Border {
		if *b == nil {
			*b = &Border{}
		}
		return *b
	}
	switch sel {
	case BorderSelectRowTop:
		if rb := t.getRowBorder(); rb != nil {
			return ensure(&rb.Top)
		}
	case BorderSelectRowLeft:
		if rb := t.getRowBorder(); rb != nil {
			return ensure(&rb.Left)
		}
	case BorderSelectRowRight:
		if rb := t.getRowBorder(); rb != nil {
			return ensure(&rb.Right)
		}
	case BorderSelectRowBottom:
		if rb := t.getRowBorder(); rb != nil {
			return ensure(&rb.Bottom)
		}
	case BorderSelectRowVertical:
		if rb := t.getRowBorder(); rb != nil {
			return ensure(&rb.Vertical)
		}
	case BorderSelectRowHorizontal:
		if rb := t.getRowBorder(); rb != nil {
			return ensure(&rb.Horizontal)
		}
	case BorderSelectCellTop:
		if cb := t.getCellBorder(); cb != nil {
			return ensure(&cb.Top)
		}
	case BorderSelectCellLeft:
		if cb := t.getCellBorder(); cb != nil {
			return ensure(&cb.Left)
		}
	case BorderSelectCellRight:
		if cb := t.getCellBorder(); cb != nil {
			return ensure(&cb.Right)
		}
	case BorderSelectCellBottom:
		if cb := t.getCellBorder(); cb != nil {
			return ensure(&cb.Bottom)
		}
	}
	return nil
}

func (t *Text) setBorderType(sel BorderSelect, bt BorderType) {
	if b := t.getBorder(sel); b != nil {
		b.Type = bt
	}
}

func (t *Text) setBorderWidth(sel BorderSelect, width int) {
	if b := t.getBorder(sel); b != nil {
		b.Width = width
	}
}

// setCellRight records the running \cellx column edge and advances the
// row's cell-option cursor, pre-declaring the next column's slot.
func (t *Text) setCellRight(right Twips) {
	table := t.lastParagraph(false).Table
	if table == nil {
		return
	}
	row := table.LastRow()
	if row.CellOptPos == 0 {
		row.Cells[0].Opts.Right = &right
	} else if row.CellOptPos < len(row.CellOpts) {
		row.CellOpts[row.CellOptPos].Right = &right
	}
	row.CellOptPos++
	row.CellOpts = append(row.CellOpts, newCellOption())
}
