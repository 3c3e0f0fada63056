package convert

// Twips is a distance of 1/20 of a point; RTF measures cell widths and
// border widths in twips. 15 twips == 1 pixel in this system.
type Twips int

// TwipsFromPx converts a pixel count to twips.
func TwipsFromPx(px int) Twips {
	return Twips(px * 15)
}

// IntoPx converts back to pixels. TwipsFromPx(px).IntoPx() == px for any
// non-negative px.
func (t Twips) IntoPx() int {
	return int(t) / 15
}

// VerticalAlign is a table cell's vertical text alignment. No control
// word in the handled RTF subset sets this beyond the default Top; it is
// carried so the emitter can project it once one does.
type VerticalAlign int

const (
	VAlignTop VerticalAlign = iota
	VAlignCenter
	VAlignBottom
)

// CellOption is the per-cell layout/merge state tracked ahead of a cell's
// content: its right edge (declared by \cellx), its border, vertical
// alignment, and vertical/horizontal merge role.
type CellOption struct {
	Border           *CellBorder
	Right            *Twips
	VertAlign        VerticalAlign
	VertMergeRoot    bool
	VertMergedCell   bool
	HorizMergeRoot   bool
	HorizMergedCell  bool
}

func newCellOption() CellOption {
	return CellOption{}
}

// Cell is a single table cell: the paragraphs it contains plus its
// resolved options.
type Cell struct {
	Paras []*Paragraph
	Opts  CellOption
}

func newCell() *Cell {
	return &Cell{Paras: []*Paragraph{newParagraph()}}
}

// IsEmpty reports a cell that has never had content written to it, used
// to skip trailing placeholder cells at emission time.
func (c *Cell) IsEmpty() bool {
	return len(c.Paras) == 1 && c.Paras[0].IsEmpty()
}

// Row is one row of a Table: its cells, its border, and the running
// cell-option cursor used by \cellx to pre-declare column layout ahead of
// cell content.
type Row struct {
	Cells      []*Cell
	Border     *RowBorder
	CellOptPos int
	CellOpts   []CellOption
	IsLast     bool
}

func newRow() *Row {
	return &Row{
		Cells:    []*Cell{newCell()},
		CellOpts: []CellOption{newCellOption()},
	}
}

// AddCell pushes a new cell. Its options are seeded from cellOpts[pos] if
// \cellx already declared that column's layout; otherwise from the
// previous cell's border only.
func (r *Row) AddCell() {
	pos := len(r.Cells)
	var lastOpts *CellOption
	if len(r.Cells) > 0 {
		o := r.Cells[len(r.Cells)-1].Opts
		lastOpts = &o
	}
	cell := newCell()
	if pos < len(r.CellOpts) {
		cell.Opts = r.CellOpts[pos]
	} else if lastOpts != nil {
		cell.Opts = CellOption{Border: lastOpts.Border}
	}
	r.Cells = append(r.Cells, cell)
}

// IsEmpty reports a row holding only its single placeholder cell, itself
// empty.
func (r *Row) IsEmpty() bool {
	return len(r.Cells) == 1 && r.Cells[0].IsEmpty()
}

// Table is an ordered sequence of rows, created by the first \trowd seen
// in a paragraph.
type Table struct {
	Rows []*Row
}

func newTable() *Table {
	return &Table{Rows: []*Row{newRow()}}
}

// AddRow pushes a new row.
func (t *Table) AddRow() {
	t.Rows = append(t.Rows, newRow())
}

// LastRow returns the last row; callers hold the invariant that a Table
// always has at least one row (newTable guarantees it).
func (t *Table) LastRow() *Row {
	return t.Rows[len(t.Rows)-1]
}

// LastCell returns the last cell of the last row.
func (t *Table) LastCell() *Cell {
	row := t.LastRow()
	return row.Cells[len(row.Cells)-1]
}

// AddCell delegates to the last row.
func (t *Table) AddCell() {
	t.LastRow().AddCell()
}
