package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Token tree construction
	TreeInfo              Code = 2000
	TreeUnmatchedClose    Code = 2001
	TreeUnclosedDelimiter Code = 2002
	TreeMismatchedClose   Code = 2003

	// Paste engine
	PasteInfo                   Code = 3000
	PasteMalformedSpan          Code = 3001
	PasteUnsupportedFragment    Code = 3002
	PasteInvalidIdentifier      Code = 3003
	PasteRecursionLimitExceeded Code = 3004
	PasteUnknownVariable        Code = 3005

	// Configuration
	CfgInfo         Code = 4000
	CfgInvalidValue Code = 4001

	IOLoadFileError Code = 5001

	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",
	LexUnterminatedChar:         "Unterminated character literal",
	TreeInfo:                    "Token tree information",
	TreeUnmatchedClose:          "Unmatched closing delimiter",
	TreeUnclosedDelimiter:       "Unclosed delimiter",
	TreeMismatchedClose:         "Mismatched closing delimiter",
	PasteInfo:                   "Paste information",
	PasteMalformedSpan:          "Malformed paste span",
	PasteUnsupportedFragment:    "Unsupported paste fragment",
	PasteInvalidIdentifier:      "Invalid pasted identifier",
	PasteRecursionLimitExceeded: "Paste recursion limit exceeded",
	PasteUnknownVariable:        "Unknown macro variable",
	CfgInfo:                     "Configuration information",
	CfgInvalidValue:             "Invalid configuration value",
	IOLoadFileError:             "I/O load file error",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TRE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PST%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
