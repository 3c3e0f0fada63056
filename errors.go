package convert

import "errors"

// Failure taxonomy. Anything that represents a malformed-but-survivable
// input (unknown control words, text outside groups, missing font/color/
// style references) is logged as a warning and never surfaced as an
// error; see log.go. Only tokenizer failure, Base64 transport failure
// and docx build failure are fatal.
var (
	// ErrParse is returned when the input byte stream could not be
	// tokenized as RTF.
	ErrParse = errors.New("rtf: parse error")

	// ErrBase64Decode is returned when FromBase64 is given invalid Base64.
	ErrBase64Decode = errors.New("rtf: base64 decode error")

	// ErrDocxBuild is returned when the docx writer fails to assemble or
	// compress the output package.
	ErrDocxBuild = errors.New("rtf: docx build error")
)
