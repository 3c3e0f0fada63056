// Package convert interprets RTF documents into a structured document
// tree and emits Office Open XML word-processing (.docx) output.
package convert

import (
	"encoding/base64"
	"fmt"

	"github.com/rtfdocx/convert/internal/rtftoken"
)

// Rtf is a parsed-but-not-yet-interpreted RTF document: the token stream
// has been lexed, but no group/destination state has been built. Every
// Into*/Get* method below re-runs interpretation from this fixed token
// stream.
type Rtf struct {
	tokens []rtftoken.Token
}

// FromBytes tokenizes raw RTF bytes. Only tokenizer failure is fatal;
// everything past this point treats format anomalies as warnings.
func FromBytes(data []byte) (*Rtf, error) {
	tokens, err := rtftoken.Tokenize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &Rtf{tokens: tokens}, nil
}

// FromBase64 decodes Base64 text, then delegates to FromBytes.
func FromBase64(data string) (*Rtf, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64Decode, err)
	}
	return FromBytes(raw)
}

// interpret replays the token stream through a fresh DocumentState,
// skipping Newline tokens up front.
func (r *Rtf) interpret() *DocumentState {
	state := NewDocumentState()
	for _, tok := range r.tokens {
		if tok.Kind == rtftoken.Newline {
			continue
		}
		state.ProcessToken(tok)
	}
	return state
}

// GetText exposes the resolved text tree plus the font/stylesheet
// registries built while interpreting: the intermediate representation,
// for callers that want more than flattened text or a finished .docx.
func (r *Rtf) GetText() (*Text, map[int]*Font, map[int]*StyleSheet) {
	state := r.interpret()
	dest := state.Destination("rtf")
	if dest == nil || dest.Kind != DestinationText {
		return nil, state.Fonts, state.Stylesheets
	}
	return dest.text, state.Fonts, state.Stylesheets
}

// IntoText interprets the document and flattens its "rtf" destination to
// a single decoded string.
func (r *Rtf) IntoText() string {
	state := r.interpret()
	dest := state.Destination("rtf")
	if dest == nil {
		return ""
	}
	if dest.Kind == DestinationText {
		return dest.text.GetText()
	}
	return ShiftJIS.Decode(dest.AsBytes())
}

// IntoDocx interprets the document and renders it as a .docx byte blob.
func (r *Rtf) IntoDocx() ([]byte, error) {
	state := r.interpret()
	text := newText()
	if dest := state.Destination("rtf"); dest != nil && dest.Kind == DestinationText {
		text = dest.text
	}
	return buildDocx(text, state.Fonts, state.Stylesheets, state.Colors, state.DefaultFont)
}

// IntoDocxBase64 is IntoDocx with its output Base64-encoded, for
// transports that can't carry raw binary.
func (r *Rtf) IntoDocxBase64() (string, error) {
	data, err := r.IntoDocx()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
