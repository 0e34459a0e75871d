// Package tree fuses the flat lexer output into token trees: every matched
// pair of (), [] or {} becomes a single token.Group token that owns its
// inner stream. Unbalanced delimiters are reported and recovered from so
// later phases always see a well-formed tree.
package tree
