package token

// Kind represents the category of a token tree node.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Ident represents an identifier, keywords and raw identifiers included.
	Ident
	// Lifetime represents a lifetime or label such as 'a.
	Lifetime
	// IntLit represents an integer literal, suffix included.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a quoted string literal.
	StringLit
	// RawStringLit represents r"..." and r#"..."# literals.
	RawStringLit
	// CharLit represents a character literal.
	CharLit
	// ByteLit represents a b'x' literal.
	ByteLit
	// ByteStringLit represents b"..." and br"..." literals.
	ByteStringLit
	// Punct represents a single punctuation character.
	Punct
	// Group represents a delimited group owning a nested stream.
	Group
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Lifetime:
		return "Lifetime"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case StringLit:
		return "StringLit"
	case RawStringLit:
		return "RawStringLit"
	case CharLit:
		return "CharLit"
	case ByteLit:
		return "ByteLit"
	case ByteStringLit:
		return "ByteStringLit"
	case Punct:
		return "Punct"
	case Group:
		return "Group"
	}
	return "Unknown"
}

// IsLiteral reports whether the kind is any literal kind.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit, RawStringLit, CharLit, ByteLit, ByteStringLit:
		return true
	default:
		return false
	}
}

// IsEOF reports whether the kind terminates a stream.
func (k Kind) IsEOF() bool { return k == EOF }

// Delimiter identifies the bracket pair of a Group.
type Delimiter uint8

const (
	// DelimNone is an invisible group, as produced by macro variable substitution.
	DelimNone Delimiter = iota
	DelimParen
	DelimBrace
	DelimBracket
)

// Open returns the opening delimiter text ("" for DelimNone).
func (d Delimiter) Open() string {
	switch d {
	case DelimParen:
		return "("
	case DelimBrace:
		return "{"
	case DelimBracket:
		return "["
	}
	return ""
}

// Close returns the closing delimiter text ("" for DelimNone).
func (d Delimiter) Close() string {
	switch d {
	case DelimParen:
		return ")"
	case DelimBrace:
		return "}"
	case DelimBracket:
		return "]"
	}
	return ""
}

func (d Delimiter) String() string {
	switch d {
	case DelimParen:
		return "Paren"
	case DelimBrace:
		return "Brace"
	case DelimBracket:
		return "Bracket"
	}
	return "None"
}

// DelimiterFor maps an opening or closing delimiter byte to its Delimiter.
func DelimiterFor(b byte) (Delimiter, bool) {
	switch b {
	case '(', ')':
		return DelimParen, true
	case '{', '}':
		return DelimBrace, true
	case '[', ']':
		return DelimBracket, true
	}
	return DelimNone, false
}
