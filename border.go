package convert

// BorderType is the RTF \brdr* border-kind flag.
type BorderType int

const (
	BorderNone BorderType = iota
	BorderSingleThickness
	BorderDoubleThickness
	BorderShadowed
	BorderDouble
	BorderDotted
	BorderDashed
	BorderHairline
)

// Border is a single edge's type + width (in the unit \brdrw supplies:
// twentieths of a point, matching RTF's border-width convention).
type Border struct {
	Type  BorderType
	Width int
}

// RowBorder holds the (lazily constructed) border set for a table row,
// selected via \trbrdrt/l/b/r/h/v.
type RowBorder struct {
	Top, Left, Bottom, Right, Horizontal, Vertical *Border
}

// CellBorder holds the (lazily constructed) border set for a table cell,
// selected via \clbrdrt/l/b/r.
type CellBorder struct {
	Top, Left, Bottom, Right *Border
}

// BorderSelect names which border field the next \brdr*/\brdrw control
// word mutates. Set by \trbrdr*/\clbrdr*; BorderSelectParagraph is the
// default no-op sink used when a border control arrives outside any table
// context (see DESIGN.md's Open Question resolution).
type BorderSelect int

const (
	BorderSelectParagraph BorderSelect = iota
	BorderSelectRowTop
	BorderSelectRowLeft
	BorderSelectRowBottom
	BorderSelectRowRight
	BorderSelectRowHorizontal
	BorderSelectRowVertical
	BorderSelectCellTop
	BorderSelectCellLeft
	BorderSelectCellBottom
	BorderSelectCellRight
)
