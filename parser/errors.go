package parser

import (
	"fmt"

	"github.com/luasand/luasand/lexer"
)

// SyntaxError is a fatal parse-time failure: it carries a message, the
// offending token's kind, the 1-based line, and the source line text for
// diagnostics. Typical messages: "Expected <token>", "UnsupportedPrimary",
// "ExpectedEqualsOrIn", "MultipleAssignmentUnsupported".
type SyntaxError struct {
	Message    string
	TokenKind  lexer.Kind
	Line       int
	SourceLine string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d\n-> %d: %s", e.Message, e.Line, e.Line, e.SourceLine)
}
