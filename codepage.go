package convert

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names a resolved text codec. RTF identifies encodings by small
// integer codepage/charset numbers; this wraps the golang.org/x/text codec
// those numbers resolve to so Destination/Line/GroupState can carry
// "no encoding chosen yet" as a nil *Encoding.
type Encoding struct {
	Name string
	codec encoding.Encoding
}

// Decode converts bytes in this encoding to a Go string. Invalid byte
// sequences are replaced per the decoder's default policy (U+FFFD) rather
// than treated as an error; decoding is a best-effort, never-fails step.
func (e *Encoding) Decode(b []byte) string {
	if e == nil || e.codec == nil {
		return ShiftJIS.Decode(b)
	}
	out, err := e.codec.NewDecoder().Bytes(b)
	if err != nil {
		// Decoder.Bytes only errors on encodings configured to fail hard;
		// none of the codecs registered below are. Fall back defensively.
		return string(b)
	}
	return string(out)
}

// Equal reports whether two *Encoding values name the same codec. Encoding
// values are interned (see the codepageTable/charsetTable below) so pointer
// equality normally suffices, but callers that build ad-hoc Encodings
// should use this instead of ==.
func (e *Encoding) Equal(o *Encoding) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	return e.Name == o.Name
}

var (
	// ShiftJIS is the document default used when nothing else resolves an
	// encoding.
	ShiftJIS = &Encoding{Name: "shift_jis", codec: japanese.ShiftJIS}
	// UTF16LE decodes the two raw bytes written by a \uN escape.
	UTF16LE = &Encoding{Name: "utf-16le", codec: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}

	cp1252  = &Encoding{Name: "windows-1252", codec: charmap.Windows1252}
	cpMac   = &Encoding{Name: "macintosh", codec: charmap.Macintosh}
	cp437   = &Encoding{Name: "cp437", codec: charmap.CodePage437}
	cp850   = &Encoding{Name: "cp850", codec: charmap.CodePage850}
	cp852   = &Encoding{Name: "cp852", codec: charmap.CodePage852}
	cp860   = &Encoding{Name: "cp860", codec: charmap.CodePage860}
	cp862   = &Encoding{Name: "cp862", codec: charmap.CodePage862}
	cp863   = &Encoding{Name: "cp863", codec: charmap.CodePage863}
	cp865   = &Encoding{Name: "cp865", codec: charmap.CodePage865}
	cp866   = &Encoding{Name: "cp866", codec: charmap.CodePage866}
	cp874   = &Encoding{Name: "windows-874", codec: charmap.Windows874}
	cp932   = &Encoding{Name: "shift_jis", codec: japanese.ShiftJIS}
	cp936   = &Encoding{Name: "gbk", codec: simplifiedchinese.GBK}
	cp949   = &Encoding{Name: "euc-kr", codec: korean.EUCKR}
	cp950   = &Encoding{Name: "big5", codec: traditionalchinese.Big5}
	cp1250  = &Encoding{Name: "windows-1250", codec: charmap.Windows1250}
	cp1251  = &Encoding{Name: "windows-1251", codec: charmap.Windows1251}
	cp1253  = &Encoding{Name: "windows-1253", codec: charmap.Windows1253}
	cp1254  = &Encoding{Name: "windows-1254", codec: charmap.Windows1254}
	cp1255  = &Encoding{Name: "windows-1255", codec: charmap.Windows1255}
	cp1256  = &Encoding{Name: "windows-1256", codec: charmap.Windows1256}
	cp1257  = &Encoding{Name: "windows-1257", codec: charmap.Windows1257}
	cp1258  = &Encoding{Name: "windows-1258", codec: charmap.Windows1258}
	iso88591 = &Encoding{Name: "iso-8859-1", codec: charmap.ISO8859_1}
	iso88596 = &Encoding{Name: "iso-8859-6", codec: charmap.ISO8859_6}
)

// codepageTable maps \ansicpg<n> codepage numbers to encodings.
var codepageTable = map[int]*Encoding{
	437:  cp437,
	708:  iso88596,
	819:  iso88591,
	850:  cp850,
	852:  cp852,
	860:  cp860,
	862:  cp862,
	863:  cp863,
	865:  cp865,
	866:  cp866,
	874:  cp874,
	932:  cp932,
	936:  cp936,
	949:  cp949,
	950:  cp950,
	1250: cp1250,
	1251: cp1251,
	1252: cp1252,
	1253: cp1253,
	1254: cp1254,
	1255: cp1255,
	1256: cp1256,
	1257: cp1257,
	1258: cp1258,
}

// charsetTable maps \fcharset<n> values (used on font table entries) to
// encodings.
var charsetTable = map[int]*Encoding{
	0:   cp1252,
	1:   cp1252,
	2:   cp1252,
	77:  cpMac,
	128: cp932,
	129: cp949,
	134: cp936,
	136: cp950,
	161: cp1253,
	162: cp1254,
	163: cp1258,
	177: cp1255,
	178: cp1256,
	179: cp1256,
	180: cp1256,
	181: cp1255,
	186: cp1257,
	204: cp1251,
	222: cp874,
	238: cp1250,
	254: cp437,
	255: cp437,
}

// EncodingFromCodepage resolves \ansicpgN. Unknown codepages return nil;
// a group left with a nil encoding drops (with a warning) the text it
// writes to a Text destination until another encoding is set.
func EncodingFromCodepage(cp int) *Encoding {
	return codepageTable[cp]
}

// EncodingFromCharset resolves \fcharsetN.
func EncodingFromCharset(charset int) *Encoding {
	return charsetTable[charset]
}

// CharsetIsShiftJIS reports whether an \fcharset value names Shift-JIS
// (128), the one charset the emitter special-cases for its font-driven
// decode fallback.
func CharsetIsShiftJIS(charset int) bool {
	return charset == 128
}
