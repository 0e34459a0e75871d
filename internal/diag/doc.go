// Package diag defines the diagnostic model shared by the lexer, the token
// tree builder, the paste engine and the driver.
//
// A Diagnostic carries a Severity, a numeric Code with a stable string ID
// (LEX1001, TRE2001, PST3001, ...), a message and a primary source.Span, plus
// optional notes pointing at related locations.
//
// Producers emit through a Reporter so storage stays decoupled: BagReporter
// collects into a Bag (limit, sort, dedup), DedupReporter filters repeats.
// Rendering lives in internal/diagfmt; this package does no IO.
package diag
