package decode

import (
	"context"
	"strconv"
	"strings"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/node"
)

// TextDecoder decodes the plain text save grammar.
type TextDecoder struct{}

// NewText returns a text decoder.
func NewText() *TextDecoder {
	return &TextDecoder{}
}

// Decode parses data into an Object node holding the top-level sections.
func (d *TextDecoder) Decode(ctx context.Context, data []byte) (*node.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Text decoding started.", "bytes", len(data))
	root, err := buildTree(ctx, newTextLexer(data))
	if err != nil {
		return nil, err
	}
	logger.Debug("Text decoding complete.", "sections", root.Len())
	return root, nil
}

type textLexer struct {
	data []byte
	pos  int
	line int
	col  int
}

func newTextLexer(data []byte) *textLexer {
	data = skipBOM(data)
	return &textLexer{data: data, line: 1, col: 1}
}

func skipBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func (l *textLexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *textLexer) advance() byte {
	c := l.data[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *textLexer) skipSpaceAndComments() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case c == '#':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' {
				l.advance()
			}
		case isSpace(c):
			l.advance()
		default:
			return
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isOperator(c byte) bool {
	return c == '=' || c == '<' || c == '>' || c == '!' || c == '?'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || isOperator(c) || c == '{' || c == '}' || c == '"' || c == '#'
}

func (l *textLexer) next() (token, error) {
	l.skipSpaceAndComments()
	pos := l.position()
	if l.pos >= len(l.data) {
		return token{kind: tokEOF, pos: pos}, nil
	}

	c := l.data[l.pos]
	switch {
	case c == '{':
		l.advance()
		return token{kind: tokOpen, pos: pos}, nil
	case c == '}':
		l.advance()
		return token{kind: tokClose, pos: pos}, nil
	case isOperator(c):
		// =, ==, <, <=, >, >=, !=, ?= all separate a key from its value.
		l.advance()
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.advance()
		}
		return token{kind: tokEqual, pos: pos}, nil
	case c == '"':
		return l.quoted(pos)
	}
	return l.bare(pos), nil
}

func (l *textLexer) quoted(pos Position) (token, error) {
	l.advance()
	var sb strings.Builder
	for l.pos < len(l.data) {
		c := l.advance()
		switch c {
		case '"':
			return token{kind: tokScalar, value: node.String(sb.String()), pos: pos}, nil
		case '\\':
			if l.pos < len(l.data) {
				sb.WriteByte(l.advance())
			}
		default:
			sb.WriteByte(c)
		}
	}
	return token{}, newError(TruncatedInput, pos, "quoted string is never closed")
}

func (l *textLexer) bare(pos Position) token {
	start := l.pos
	for l.pos < len(l.data) && !isDelimiter(l.data[l.pos]) {
		l.advance()
	}
	raw := string(l.data[start:l.pos])
	tok := token{kind: tokScalar, value: inferScalar(raw), raw: raw, pos: pos}
	switch raw {
	case "rgb":
		tok.colorModel = node.RGB
	case "hsv":
		tok.colorModel = node.HSV
	}
	return tok
}

// inferScalar types an unquoted word: yes/no are booleans, two dots make a
// date, one dot a float, digits an integer; anything that fails to parse
// stays a string.
func inferScalar(raw string) *node.Node {
	switch raw {
	case "yes":
		return node.Bool(true)
	case "no":
		return node.Bool(false)
	}
	switch strings.Count(raw, ".") {
	case 2:
		if d, ok := node.ParseDate(raw); ok {
			return node.NewDate(d)
		}
	case 1:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return node.Float(f)
		}
	case 0:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return node.Int(i)
		}
	}
	return node.String(raw)
}
