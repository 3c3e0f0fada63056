package rtftoken

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Tokenize scans raw RTF bytes into a flat Token stream: a
// byte-at-a-time, one-byte-lookahead scan (peek-then-consume over a
// bufio.Reader) with control words and control symbols split into their
// own sub-scanners. Group nesting is the interpreter's job, not the
// lexer's, so braces are emitted as plain tokens.
func Tokenize(data []byte) ([]Token, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	var tokens []Token
	var textBuf []byte

	flushText := func() {
		if len(textBuf) > 0 {
			tokens = append(tokens, Token{Kind: Text, Bytes: textBuf})
			textBuf = nil
		}
	}

	for {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		switch b {
		case '{':
			flushText()
			tokens = append(tokens, Token{Kind: StartGroup})
		case '}':
			flushText()
			tokens = append(tokens, Token{Kind: EndGroup})
		case '\\':
			flushText()
			tok, err := scanControl(r)
			if err != nil {
				return nil, fmt.Errorf("rtftoken: %w", err)
			}
			tokens = append(tokens, tok)
		case '\r', '\n':
			flushText()
			// collapse a \r\n (or \n\r) pair into a single Newline
			if next, err := r.Peek(1); err == nil {
				if (b == '\r' && next[0] == '\n') || (b == '\n' && next[0] == '\r') {
					r.ReadByte()
				}
			}
			tokens = append(tokens, Token{Kind: Newline})
		default:
			textBuf = append(textBuf, b)
		}
	}
	flushText()
	return tokens, nil
}

func isAsciiLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanControl parses everything following a '\' already consumed by the
// caller: either a control word (ASCII letters, an optional signed
// decimal argument, and a single consumed delimiter space) or a control
// symbol (one non-letter character, with \' specially carrying a 2-digit
// hex argument).
func scanControl(r *bufio.Reader) (Token, error) {
	first, err := r.Peek(1)
	if err != nil {
		return Token{}, fmt.Errorf("unexpected end of input after '\\'")
	}
	if !isAsciiLetter(first[0]) {
		return scanControlSymbol(r)
	}
	return scanControlWord(r)
}

func scanControlWord(r *bufio.Reader) (Token, error) {
	var name []byte
	for {
		p, err := r.Peek(1)
		if err != nil || !isAsciiLetter(p[0]) {
			break
		}
		b, _ := r.ReadByte()
		name = append(name, b)
	}

	var argBuf []byte
	if p, err := r.Peek(1); err == nil && p[0] == '-' {
		b, _ := r.ReadByte()
		argBuf = append(argBuf, b)
	}
	for {
		p, err := r.Peek(1)
		if err != nil || !isDigit(p[0]) {
			break
		}
		b, _ := r.ReadByte()
		argBuf = append(argBuf, b)
	}

	wordName := string(name)

	// \binN is followed by its single delimiter and then N raw bytes.
	// Those bytes are opaque payload, not a further control word/symbol/
	// text stream, so they have to be consumed here rather than left for
	// the general scan loop to misinterpret.
	if wordName == "bin" && len(argBuf) > 0 {
		if p, err := r.Peek(1); err == nil && p[0] == ' ' {
			r.ReadByte()
		}
		n := parseSignedInt(argBuf)
		if n < 0 {
			n = 0
		}
		payload := make([]byte, n)
		read, _ := io.ReadFull(r, payload)
		return Token{Kind: ControlBin, Bytes: payload[:read]}, nil
	}

	// a single trailing space delimiter is part of the control word's
	// syntax and is consumed without becoming a Text token.
	if p, err := r.Peek(1); err == nil && p[0] == ' ' {
		r.ReadByte()
	}

	tok := Token{Kind: ControlWord, Name: wordName}
	if len(argBuf) > 0 {
		n := parseSignedInt(argBuf)
		tok.Arg = &n
	}
	return tok, nil
}

func scanControlSymbol(r *bufio.Reader) (Token, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Token{}, fmt.Errorf("unexpected end of input parsing control symbol")
	}
	if b == '\'' {
		var hex []byte
		for i := 0; i < 2; i++ {
			p, err := r.Peek(1)
			if err != nil || !isHexDigit(p[0]) {
				break
			}
			hb, _ := r.ReadByte()
			hex = append(hex, hb)
		}
		arg := 0
		if len(hex) > 0 {
			arg = parseHexInt(hex)
		}
		return Token{Kind: ControlSymbol, Symbol: '\'', Arg: &arg}, nil
	}
	return Token{Kind: ControlSymbol, Symbol: rune(b)}, nil
}

func parseSignedInt(b []byte) int {
	neg := false
	i := 0
	if len(b) > 0 && b[0] == '-' {
		neg = true
		i = 1
	}
	n := 0
	for ; i < len(b); i++ {
		n = n*10 + int(b[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

func parseHexInt(b []byte) int {
	n := 0
	for _, c := range b {
		n *= 16
		switch {
		case c >= '0' && c <= '9':
			n += int(c - '0')
		case c >= 'a' && c <= 'f':
			n += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n += int(c-'A') + 10
		}
	}
	return n
}
