package decode

import (
	"context"

	"github.com/vk/ck3graph/internal/node"
)

// cancelCheckInterval is how many tokens are consumed between context checks.
const cancelCheckInterval = 1 << 14

// treeBuilder assembles a node tree from a token stream with one token of
// lookahead.
type treeBuilder struct {
	ctx    context.Context
	lex    lexer
	peeked *token
	count  int
}

func buildTree(ctx context.Context, lex lexer) (*node.Node, error) {
	tb := &treeBuilder{ctx: ctx, lex: lex}
	root := node.NewBuilder()
	if err := tb.block(root, nil); err != nil {
		return nil, err
	}
	return root.BuildObject(), nil
}

func (tb *treeBuilder) next() (token, error) {
	if tb.peeked != nil {
		t := *tb.peeked
		tb.peeked = nil
		return t, nil
	}
	tb.count++
	if tb.count%cancelCheckInterval == 0 {
		if err := tb.ctx.Err(); err != nil {
			return token{}, err
		}
	}
	return tb.lex.next()
}

func (tb *treeBuilder) peek() (token, error) {
	if tb.peeked == nil {
		t, err := tb.next()
		if err != nil {
			return token{}, err
		}
		tb.peeked = &t
	}
	return *tb.peeked, nil
}

// block consumes tokens into b until the matching close, or EOF at top
// level. open is the opening brace token, nil for the top level.
func (tb *treeBuilder) block(b *node.Builder, open *token) error {
	for {
		tok, err := tb.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			if open != nil {
				return newError(UnterminatedBlock, open.pos, "block opened here is never closed")
			}
			return nil
		case tokClose:
			if open == nil {
				return newError(UnexpectedToken, tok.pos, "'}' without matching '{'")
			}
			return nil
		case tokEqual:
			return newError(UnexpectedToken, tok.pos, "'=' without a key")
		case tokOpen:
			v, err := tb.subBlock(tok)
			if err != nil {
				return err
			}
			// `{ ... } = { ... }` appears in some saves; the left side is dropped.
			nt, err := tb.peek()
			if err != nil {
				return err
			}
			if nt.kind == tokEqual {
				tb.peeked = nil
				if _, err := tb.value(); err != nil {
					return err
				}
				continue
			}
			b.AddItem(v)
		case tokScalar:
			nt, err := tb.peek()
			if err != nil {
				return err
			}
			if nt.kind == tokEqual {
				tb.peeked = nil
				v, err := tb.value()
				if err != nil {
					return err
				}
				b.Add(tok.keyText(), v)
				continue
			}
			v, header, err := tb.scalarOrColor(tok)
			if err != nil {
				return err
			}
			if header != nil {
				b.AddItem(header)
			}
			b.AddItem(v)
		}
	}
}

// value reads the right-hand side of `key =`.
func (tb *treeBuilder) value() (*node.Node, error) {
	tok, err := tb.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokEOF:
		return nil, newError(TruncatedInput, tok.pos, "missing value after '='")
	case tokOpen:
		return tb.subBlock(tok)
	case tokScalar:
		v, _, err := tb.scalarOrColor(tok)
		return v, err
	}
	return nil, newError(UnexpectedToken, tok.pos, "expected a value, found %s", tok.kind)
}

func (tb *treeBuilder) subBlock(open token) (*node.Node, error) {
	b := node.NewBuilder()
	if err := tb.block(b, &open); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// scalarOrColor turns `rgb { r g b }` into a Color. A header not followed by
// a block is an ordinary scalar. When the block is not a numeric triple the
// block is returned together with the header word so that list items keep
// both; as a value (`key = rgb { .. }`) only the block survives.
func (tb *treeBuilder) scalarOrColor(tok token) (v, header *node.Node, err error) {
	if tok.colorModel == "" {
		return tok.value, nil, nil
	}
	nt, err := tb.peek()
	if err != nil {
		return nil, nil, err
	}
	if nt.kind != tokOpen {
		return tok.value, nil, nil
	}
	tb.peeked = nil
	block, err := tb.subBlock(nt)
	if err != nil {
		return nil, nil, err
	}
	items := block.Items()
	if block.Kind() != node.KindList || len(items) < 3 || len(items) > 4 {
		return block, tok.value, nil
	}
	c := node.Color{Model: tok.colorModel}
	for i := 0; i < 3; i++ {
		f, ok := items[i].Float()
		if !ok {
			return block, tok.value, nil
		}
		c.Values[i] = f
	}
	return node.NewColor(c), nil, nil
}
