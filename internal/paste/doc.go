// Package paste implements identifier pasting over token trees.
//
// A paste-span is a bracket group whose contents are wrapped in angle
// brackets, `[< … >]`. Expand walks a token stream, replaces every such span
// with a single identifier built by concatenating its fragments, and leaves
// everything else untouched:
//
//	fn [<get_ field>]()        =>  fn get_field()
//	[<foo _bar>]               =>  foo_bar
//	[<Get [<x y>]:camel>]      =>  GetXy
//
// Fragments are identifiers, integer/string/char literals, nested spans and
// invisible groups. A fragment may be followed by a case modifier
// (`:lower`, `:upper`, `:snake`, `:camel`, `:lower_camel`). A span that starts
// with a lifetime produces a lifetime.
//
// Expand is a pure function of its input: no state survives between calls
// and the first error aborts the invocation without partial output.
package paste
