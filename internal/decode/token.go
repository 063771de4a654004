package decode

import "github.com/vk/ck3graph/internal/node"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokEqual
	tokScalar
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokOpen:
		return "'{'"
	case tokClose:
		return "'}'"
	case tokEqual:
		return "'='"
	}
	return "scalar"
}

// token is the unit shared by both lexers.
type token struct {
	kind  tokenKind
	value *node.Node
	// raw is the source text of an unquoted word, empty otherwise.
	raw string
	// colorModel is set when the token introduces an rgb/hsv triple.
	colorModel node.ColorModel
	pos        Position
}

// keyText is the entry key a scalar token spells. Unquoted words keep their
// source text so that `007=` and `1066.01.01=` are not normalized.
func (t token) keyText() string {
	if t.raw != "" {
		return t.raw
	}
	return t.value.Text()
}

// lexer is implemented by the text and binary tokenizers.
type lexer interface {
	next() (token, error)
	// position reports where the lexer currently is, for EOF errors.
	position() Position
}
