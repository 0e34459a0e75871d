// Package token defines the token trees handed to and returned from the
// paste engine.
// Invariants:
//   - Token.Text is the exact source text of the token (no unescaping).
//   - Punctuation is always a single character; multi-character operators
//     are sequences of Punct tokens with Joint set on all but the last.
//   - Delimiters never appear as tokens: a Group token owns its inner Stream.
//   - Synthetic tokens (produced by pasting) carry the span they were built from.
package token
