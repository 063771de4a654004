// Package decode turns raw save bytes into a node tree.
//
// Two encodings exist for the same grammar. The text form is a nested
// `key=value` language with `{ }` blocks; the binary form writes the same
// structure as a stream of little-endian u16 tokens, where control tokens
// and typed scalars have fixed ids and every other id names a key or bare
// word through a version-specific TokenDictionary.
//
// Both encodings are lexed into a common token stream and assembled by a
// single tree builder, so the shape rules (repeated keys, mixed blocks,
// colour headers) are identical whichever decoder produced the tree.
//
//	bytes ──► Select ──► textLexer   ──┐
//	                └──► binaryLexer ──┴──► treeBuilder ──► *node.Node
package decode
