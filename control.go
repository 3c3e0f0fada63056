package convert

// controlHandler is the signature every control-word/control-symbol table
// entry implements: mutate the current group for a control named name
// with optional integer argument arg.
type controlHandler func(g *GroupState, name string, arg *int)

// destinationHandler registers a named buffer, deferring to
// GroupState.setDestination with the destination's encoding-ness.
func destinationHandler(usesEncoding bool) controlHandler {
	return func(g *GroupState, name string, arg *int) {
		g.setDestination(name, usesEncoding)
	}
}

// controlDestinations are the named buffers recognized by this subset of
// RTF. Binary destinations (uses_encoding=false) accumulate raw bytes;
// everything else accumulates a Text tree.
var controlDestinations = map[string]controlHandler{
	"rtf":        destinationHandler(true),
	"fonttbl":    destinationHandler(true),
	"stylesheet": destinationHandler(true),
	"colortbl":   destinationHandler(true),
	"pict":       destinationHandler(false),
	"object":     destinationHandler(false),
	"field":      destinationHandler(false),
	"info":       destinationHandler(false),
}

func valueHandler(f func(g *GroupState, arg *int)) controlHandler {
	return func(g *GroupState, name string, arg *int) {
		f(g, arg)
	}
}

// controlValues are numeric setters that write (and usually react to)
// group.values; most fall through to GroupState.SetValue's default
// store-the-pair behavior, a handful carry extra side effects.
var controlValues = map[string]controlHandler{
	"f":        func(g *GroupState, name string, arg *int) { g.SetValue("f", arg) },
	"fs":       func(g *GroupState, name string, arg *int) { g.SetValue("fs", arg) },
	"cf":       func(g *GroupState, name string, arg *int) { g.SetValue("cf", arg) },
	"cb":       func(g *GroupState, name string, arg *int) { g.SetValue("cb", arg) },
	"fi":       func(g *GroupState, name string, arg *int) { g.SetValue("fi", arg) },
	"li":       func(g *GroupState, name string, arg *int) { g.SetValue("li", arg) },
	"ri":       func(g *GroupState, name string, arg *int) { g.SetValue("ri", arg) },
	"s":        func(g *GroupState, name string, arg *int) { g.SetValue("s", arg) },
	"deff":     func(g *GroupState, name string, arg *int) { g.SetValue("deff", arg) },
	"uc":       func(g *GroupState, name string, arg *int) { g.SetValue("uc", arg) },
	// \u carries both the unicode-escape and underline-toggle roles;
	// SetValue's "u" case handles the split on the argument (none: underline
	// on, 0: underline off, any other value: a unicode escape).
	"u":        func(g *GroupState, name string, arg *int) { g.SetValue("u", arg) },
	"red":      func(g *GroupState, name string, arg *int) { g.SetValue("red", arg) },
	"green":    func(g *GroupState, name string, arg *int) { g.SetValue("green", arg) },
	"blue":     func(g *GroupState, name string, arg *int) { g.SetValue("blue", arg) },
	"brdrw":    func(g *GroupState, name string, arg *int) { g.SetValue("brdrw", arg) },
	"cellx":    func(g *GroupState, name string, arg *int) { g.SetValue("cellx", arg) },
	"ansicpg": func(g *GroupState, name string, arg *int) {
		cp := 1252
		if arg != nil {
			cp = *arg
		}
		g.setCodepage(cp)
		g.SetValue("ansicpg", arg)
	},
	// fcharset aliases to the "charset" key document.processFont reads,
	// matching the field name the document tree registers a Font under.
	"fcharset": func(g *GroupState, name string, arg *int) { g.SetValue("charset", arg) },
}

// defaultCharsetHandler implements the header's default-character-set
// declarations (\ansi, \mac, \pc, \pca): each names a fixed encoding
// (CP1252, Macintosh, CP437, CP850) with no numeric argument, unlike
// \ansicpg<n>'s explicit one.
func defaultCharsetHandler(enc *Encoding) controlHandler {
	return func(g *GroupState, name string, arg *int) {
		g.setEncoding(enc)
	}
}

func flagHandler(name string) controlHandler {
	return func(g *GroupState, n string, arg *int) { g.SetValue(name, arg) }
}

// controlFlags are presence-only (or side-effecting) switches: paragraph
// alignment, table-row markers, font-family tags, and the border-selector
// / border-type flag families.
var controlFlags = map[string]controlHandler{
	"ansi": defaultCharsetHandler(cp1252),
	"mac":  defaultCharsetHandler(cpMac),
	"pc":   defaultCharsetHandler(cp437),
	"pca":  defaultCharsetHandler(cp850),

	"ql":     flagHandler("ql"),
	"qr":     flagHandler("qr"),
	"qj":     flagHandler("qj"),
	"qc":     flagHandler("qc"),
	"intbl":  flagHandler("intbl"),
	"pard":   flagHandler("pard"),
	"trowd":  flagHandler("trowd"),
	"fnil":   flagHandler("fnil"),
	"froman": flagHandler("froman"),
	"fswiss": flagHandler("fswiss"),
	"fmodern": flagHandler("fmodern"),
	"fscript": flagHandler("fscript"),
	"fdecor": flagHandler("fdecor"),
	"ftech":  flagHandler("ftech"),
	"fbidi":  flagHandler("fbidi"),

	"trbrdrt": flagHandler("trbrdrt"),
	"trbrdrl": flagHandler("trbrdrl"),
	"trbrdrb": flagHandler("trbrdrb"),
	"trbrdrr": flagHandler("trbrdrr"),
	"trbrdrh": flagHandler("trbrdrh"),
	"trbrdrv": flagHandler("trbrdrv"),
	"clbrdrt": flagHandler("clbrdrt"),
	"clbrdrl": flagHandler("clbrdrl"),
	"clbrdrb": flagHandler("clbrdrb"),
	"clbrdrr": flagHandler("clbrdrr"),

	"brdrs":    flagHandler("brdrs"),
	"brdrth":   flagHandler("brdrth"),
	"brdrsh":   flagHandler("brdrsh"),
	"brdrdb":   flagHandler("brdrdb"),
	"brdrdot":  flagHandler("brdrdot"),
	"brdrdash": flagHandler("brdrdash"),
	"brdrhair": flagHandler("brdrhair"),
	"brdrnone": flagHandler("brdrnone"),
}

// controlToggles are binary-argument style switches. An explicit argument
// of 0 disables; otherwise (including a missing argument, defaulting to
// "on") the toggle is set. Style-changing toggles go through SetValue,
// which forces a line break on disable so the line boundary reflects the
// style change.
var controlToggles = map[string]controlHandler{
	"b": func(g *GroupState, name string, arg *int) { g.SetValue("b", arg) },
	"i": func(g *GroupState, name string, arg *int) { g.SetValue("i", arg) },
}

// controlSymbols are non-argument escapes: structural breaks (\par,
// \sect, \page and \line start a new paragraph/section/page/line in the
// current destination; \tab is written through as a literal tab character,
// since the document tree has no dedicated "tab" node, so the tab byte
// round-trips through the Line the same as any other character),
// table-row/cell markers, escaped control characters, and the \* "ignore
// unknown control word" marker.
var controlSymbols = map[string]controlHandler{
	"par":  func(g *GroupState, name string, arg *int) { g.newParagraph() },
	"sect": func(g *GroupState, name string, arg *int) { g.newSection() },
	"page": func(g *GroupState, name string, arg *int) { g.newPage() },
	"line": func(g *GroupState, name string, arg *int) { g.newLine() },
	"tab":  func(g *GroupState, name string, arg *int) { g.write([]byte{'\t'}) },
	"cell": func(g *GroupState, name string, arg *int) { g.addCell() },
	"row":  func(g *GroupState, name string, arg *int) { g.endRow() },
	"\\":   func(g *GroupState, name string, arg *int) { g.write([]byte{'\\'}) },
	"{":    func(g *GroupState, name string, arg *int) { g.write([]byte{'{'}) },
	"}":    func(g *GroupState, name string, arg *int) { g.write([]byte{'}'}) },
	"*":    func(g *GroupState, name string, arg *int) { g.setOptIgnoreNextControl() },
	"~":    func(g *GroupState, name string, arg *int) { g.write([]byte{0xA0}) },
	"-":    func(g *GroupState, name string, arg *int) {},
	"'": func(g *GroupState, name string, arg *int) {
		if arg != nil {
			g.write([]byte{byte(*arg)})
		}
	},
}
