package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// docxEmitter walks a finalized document tree and drives unioffice's
// writer API, resolving every deferred font/color/stylesheet reference
// along the way. Where the high-level API has no setter for something,
// the raw wml schema is reached through the wrapper types' X() method.
type docxEmitter struct {
	doc         *document.Document
	text        *Text
	fonts       map[int]*Font
	stylesheets map[int]*StyleSheet
	colors      []Color
	defaultFont int
}

func buildDocx(text *Text, fonts map[int]*Font, stylesheets map[int]*StyleSheet, colors []Color, defaultFont int) ([]byte, error) {
	e := &docxEmitter{
		doc:         document.New(),
		text:        text,
		fonts:       fonts,
		stylesheets: stylesheets,
		colors:      colors,
		defaultFont: defaultFont,
	}

	for _, page := range text.Pages {
		for _, section := range page.Sections {
			for _, para := range section.Paras {
				e.emitParagraph(para)
			}
		}
		e.emitPageBreak()
	}

	var buf bytes.Buffer
	if err := e.doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxBuild, err)
	}
	return buf.Bytes(), nil
}

// twips converts an RTF twips count (twentieths of a point) to
// unioffice's EMU-based Distance.
func twips(n int) measurement.Distance {
	return measurement.Distance(n) / 20 * measurement.Point
}

func (e *docxEmitter) resolveStylesheet(n *int) *StyleSheet {
	if n != nil {
		if s, ok := e.stylesheets[*n]; ok {
			return s
		}
	}
	return &DefaultStyleSheet
}

// emitParagraph resolves the paragraph's effective stylesheet and routes
// it to either the table emitter or a plain document paragraph.
func (e *docxEmitter) emitParagraph(para *Paragraph) {
	stylesheet := e.resolveStylesheet(para.Stylesheet)
	ssPara := stylesheet.ParaStyle
	if ssPara == nil {
		ssPara = &ParagraphStyle{}
	}
	ssFont := stylesheet.FontStyle
	if ssFont == nil {
		ssFont = &FontStyle{}
	}
	if para.Table != nil {
		e.emitTable(para.Table, ssPara, ssFont)
		return
	}
	e.fillParagraph(e.doc.AddParagraph(), para, ssPara, ssFont)
}

// fillParagraph applies the (paragraph-own → stylesheet) fallback chain
// for alignment and indents, then emits every line's runs.
func (e *docxEmitter) fillParagraph(p document.Paragraph, para *Paragraph, ssPara *ParagraphStyle, ssFont *FontStyle) {
	own := ssPara
	if para.Style != nil {
		own = para.Style
	}
	align := own.Align
	if align == nil {
		align = ssPara.Align
	}
	leftIndent := own.LeftIndent
	if leftIndent == nil {
		leftIndent = ssPara.LeftIndent
	}
	rightIndent := own.RightIndent
	if rightIndent == nil {
		rightIndent = ssPara.RightIndent
	}
	firstIndent := own.FirstIndent
	if firstIndent == nil {
		firstIndent = ssPara.FirstIndent
	}

	props := p.Properties()
	if align != nil {
		props.SetAlignment(alignToJc(*align))
	}
	if leftIndent != nil {
		props.SetStartIndent(twips(*leftIndent))
	}
	if rightIndent != nil {
		props.SetEndIndent(twips(*rightIndent))
	}
	if firstIndent != nil {
		props.SetFirstLineIndent(twips(*firstIndent))
	}

	for _, line := range para.Lines {
		e.emitLineRuns(p, line, ssFont)
	}
}

func alignToJc(a Align) wml.ST_Jc {
	switch a {
	case AlignLeft:
		return wml.ST_JcLeft
	case AlignRight:
		return wml.ST_JcRight
	case AlignJustify:
		return wml.ST_JcBoth
	case AlignCenter:
		return wml.ST_JcCenter
	default:
		return wml.ST_JcUnset
	}
}

// lineFont resolves the Font record a line renders with, falling back to
// the document's \deff default when the line never selected one.
func (e *docxEmitter) lineFont(line *Line) *Font {
	n := e.defaultFont
	if line.Font != nil {
		n = *line.Font
	}
	return e.fonts[n]
}

// emitLineRuns decodes one Line's bytes and splits the result on '\n' so
// that embedded newlines become separate Runs within the same paragraph,
// each carrying the line's resolved formatting.
func (e *docxEmitter) emitLineRuns(p document.Paragraph, line *Line, ssFont *FontStyle) {
	decoded := e.decodeForEmit(line)
	for _, fragment := range strings.Split(decoded, "\n") {
		run := p.AddRun()
		run.AddText(fragment)
		e.applyRunProps(run, line, ssFont)
	}
}

// decodeForEmit: a line in a ShiftJIS-charset font decodes as SHIFT_JIS
// unless the line is an explicit UTF-16LE \uN escape; everything else
// decodes with the line's own encoding, falling back to the document's.
func (e *docxEmitter) decodeForEmit(line *Line) string {
	if f := e.lineFont(line); f != nil && f.Charset != nil && CharsetIsShiftJIS(*f.Charset) {
		enc := line.Encoding
		if enc == nil {
			enc = e.text.Encoding
		}
		if !UTF16LE.Equal(enc) {
			return ShiftJIS.Decode(line.Bytes)
		}
	}
	return decodeLine(e.text.Encoding, line)
}

func (e *docxEmitter) colorAt(idx int) (Color, bool) {
	if idx <= 0 || idx > len(e.colors) {
		return Color{}, false
	}
	return e.colors[idx-1], true
}

func (e *docxEmitter) applyRunProps(run document.Run, line *Line, ssFont *FontStyle) {
	props := run.Properties()
	if f := e.lineFont(line); f != nil {
		props.SetFontFamily(f.Name)
	}
	if line.Style == nil {
		return
	}
	style := line.Style
	if style.Bold || ssFont.Bold {
		props.SetBold(true)
	}
	if style.Italic || ssFont.Italic {
		props.SetItalic(true)
	}
	size := style.Size
	if size == nil {
		size = ssFont.Size
	}
	if size != nil {
		// \fs carries half-points
		props.SetSize(measurement.Distance(*size) / 2 * measurement.Point)
	}
	if c, ok := e.colorAt(style.ForegroundColor); ok {
		props.SetColor(color.RGB(c.R, c.G, c.B))
	}
	if c, ok := e.colorAt(style.BackgroundColor); ok {
		props.SetHighlight(nearestHighlight(c))
	}
}

// nearestHighlight maps an arbitrary RGB to the closed palette of Word
// highlight colors (OOXML has no freeform highlight color), picking the
// minimum Euclidean distance.
func nearestHighlight(c Color) wml.ST_HighlightColor {
	type swatch struct {
		hl      wml.ST_HighlightColor
		r, g, b int
	}
	palette := []swatch{
		{wml.ST_HighlightColorBlack, 0, 0, 0},
		{wml.ST_HighlightColorBlue, 0, 0, 255},
		{wml.ST_HighlightColorCyan, 0, 255, 255},
		{wml.ST_HighlightColorGreen, 0, 255, 0},
		{wml.ST_HighlightColorMagenta, 255, 0, 255},
		{wml.ST_HighlightColorRed, 255, 0, 0},
		{wml.ST_HighlightColorYellow, 255, 255, 0},
		{wml.ST_HighlightColorWhite, 255, 255, 255},
	}
	r, g, b := int(c.R), int(c.G), int(c.B)
	best := palette[0]
	bestDist := -1
	for _, s := range palette {
		dist := (s.r-r)*(s.r-r) + (s.g-g)*(s.g-g) + (s.b-b)*(s.b-b)
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = s
		}
	}
	return best.hl
}

// emitPageBreak appends a paragraph holding a single page break.
// unioffice's Run.AddBreak only writes the line-break flavor of w:br, so
// the break type is set on the raw run element.
func (e *docxEmitter) emitPageBreak() {
	p := e.doc.AddParagraph()
	run := p.AddRun()
	br := wml.NewCT_Br()
	br.TypeAttr = wml.ST_BrTypePage
	ic := wml.NewEG_RunInnerContent()
	ic.Br = br
	run.X().EG_RunInnerContent = append(run.X().EG_RunInnerContent, ic)
}

// emitTable renders one Table: empty rows are skipped, as is the
// trailing empty cell of each row. A cell's width is the running
// difference between successive \cellx edges, carried through the
// twips→px→twips conversion the rest of the pipeline uses. Widths and
// the table grid are emitted only when every remaining cell on every
// row declared a \cellx edge; otherwise both are dropped and the table
// is written without explicit column layout.
func (e *docxEmitter) emitTable(table *Table, ssPara *ParagraphStyle, ssFont *FontStyle) {
	tbl := e.doc.AddTable()
	widthsKnown := tableWidthsKnown(table)

	var rowBorder *RowBorder
	var grid []Twips

	for _, row := range table.Rows {
		if row.Border != nil {
			rowBorder = row.Border
		}
		if row.IsEmpty() {
			continue
		}
		tblRow := tbl.AddRow()
		leftPx := 0
		var rowWidths []Twips
		for i, cell := range row.Cells {
			if i == len(row.Cells)-1 && cell.IsEmpty() {
				continue
			}
			tblCell := tblRow.AddCell()
			if cell.Opts.Border != nil {
				applyCellBorders(tblCell, cell.Opts.Border)
			}
			if widthsKnown {
				px := cell.Opts.Right.IntoPx() - leftPx
				leftPx += px
				width := TwipsFromPx(px)
				tblCell.Properties().SetWidth(twips(int(width)))
				rowWidths = append(rowWidths, width)
			}
			switch {
			case cell.Opts.VertMergeRoot:
				tblCell.Properties().SetVerticalMerge(wml.ST_MergeRestart)
			case cell.Opts.VertMergedCell:
				tblCell.Properties().SetVerticalMerge(wml.ST_MergeContinue)
			}
			tblCell.Properties().SetVerticalAlignment(vertAlignToJc(cell.Opts.VertAlign))
			for _, para := range cell.Paras {
				e.fillParagraph(tblCell.AddParagraph(), para, ssPara, ssFont)
			}
		}
		// the grid follows the widest row's column layout
		if len(rowWidths) > len(grid) {
			grid = rowWidths
		}
	}

	if rowBorder != nil {
		applyTableBorders(tbl, rowBorder)
	}
	if widthsKnown && len(grid) > 0 {
		setTableGrid(tbl, grid)
	}
}

// tableWidthsKnown reports whether every non-trailing-empty cell on
// every non-empty row carries a resolved \cellx right edge.
func tableWidthsKnown(table *Table) bool {
	for _, row := range table.Rows {
		if row.IsEmpty() {
			continue
		}
		for i, cell := range row.Cells {
			if i == len(row.Cells)-1 && cell.IsEmpty() {
				continue
			}
			if cell.Opts.Right == nil {
				return false
			}
		}
	}
	return true
}

func vertAlignToJc(a VerticalAlign) wml.ST_VerticalJc {
	switch a {
	case VAlignCenter:
		return wml.ST_VerticalJcCenter
	case VAlignBottom:
		return wml.ST_VerticalJcBottom
	default:
		return wml.ST_VerticalJcTop
	}
}

// setTableGrid materializes w:tblGrid from the resolved column widths.
// unioffice has no high-level grid API, so the columns are written onto
// the raw table element.
func setTableGrid(tbl document.Table, cols []Twips) {
	grid := wml.NewCT_TblGrid()
	for _, w := range cols {
		col := wml.NewCT_TblGridCol()
		v := uint64(w)
		col.WAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: &v}
		grid.GridCol = append(grid.GridCol, col)
	}
	tbl.X().TblGrid = grid
}

func applyCellBorders(cell document.Cell, b *CellBorder) {
	borders := cell.Properties().Borders()
	if b.Top != nil {
		borders.SetTop(borderTypeToWML(b.Top.Type), color.Auto, twips(b.Top.Width))
	}
	if b.Left != nil {
		borders.SetLeft(borderTypeToWML(b.Left.Type), color.Auto, twips(b.Left.Width))
	}
	if b.Right != nil {
		borders.SetRight(borderTypeToWML(b.Right.Type), color.Auto, twips(b.Right.Width))
	}
	if b.Bottom != nil {
		borders.SetBottom(borderTypeToWML(b.Bottom.Type), color.Auto, twips(b.Bottom.Width))
	}
}

func applyTableBorders(tbl document.Table, b *RowBorder) {
	borders := tbl.Properties().Borders()
	if b.Top != nil {
		borders.SetTop(borderTypeToWML(b.Top.Type), color.Auto, twips(b.Top.Width))
	}
	if b.Left != nil {
		borders.SetLeft(borderTypeToWML(b.Left.Type), color.Auto, twips(b.Left.Width))
	}
	if b.Right != nil {
		borders.SetRight(borderTypeToWML(b.Right.Type), color.Auto, twips(b.Right.Width))
	}
	if b.Bottom != nil {
		borders.SetBottom(borderTypeToWML(b.Bottom.Type), color.Auto, twips(b.Bottom.Width))
	}
	if b.Horizontal != nil {
		borders.SetInsideHorizontal(borderTypeToWML(b.Horizontal.Type), color.Auto, twips(b.Horizontal.Width))
	}
	if b.Vertical != nil {
		borders.SetInsideVertical(borderTypeToWML(b.Vertical.Type), color.Auto, twips(b.Vertical.Width))
	}
}

// borderTypeToWML maps the RTF border kinds this subset recognizes onto
// their closest OOXML equivalent; Shadowed and Hairline have no direct
// OOXML counterpart and collapse to Single the same way the rest of the
// pipeline collapses unsupported variants.
func borderTypeToWML(t BorderType) wml.ST_Border {
	switch t {
	case BorderSingleThickness:
		return wml.ST_BorderSingle
	case BorderDoubleThickness:
		return wml.ST_BorderDouble
	case BorderShadowed:
		return wml.ST_BorderSingle
	case BorderDouble:
		return wml.ST_BorderDouble
	case BorderDotted:
		return wml.ST_BorderDotted
	case BorderDashed:
		return wml.ST_BorderDashSmallGap
	case BorderHairline:
		return wml.ST_BorderSingle
	default:
		return wml.ST_BorderNone
	}
}
