package stdlib

import (
	"regexp"
	"strings"
)

// luaClasses maps a Lua pattern character class escape to its RE2
// equivalent. Only the common classes are supported; any other
// character following a `%`, apart from the constructs translatePattern
// rejects, is treated as an escaped literal.
var luaClasses = map[byte]string{
	'a': "[A-Za-z]", 'A': "[^A-Za-z]",
	'd': "[0-9]", 'D': "[^0-9]",
	's': `[\s]`, 'S': `[^\s]`,
	'w': "[A-Za-z0-9]", 'W': "[^A-Za-z0-9]",
}

// translatePattern converts the small subset of Lua string-pattern
// syntax the host libraries advertise (character classes %a %d %s %w
// and their complements, anchors ^ $, character sets, and the usual
// quantifiers) into an RE2 pattern string Go's regexp package accepts.
// Constructs outside this subset — captures numbered back-references,
// balanced-match %b, frontier %f — are rejected rather than silently
// mismatched.
func translatePattern(pattern string) (*regexp.Regexp, error) {
	var out strings.Builder
	i := 0
	inSet := false
	for i < len(pattern) {
		ch := pattern[i]
		switch ch {
		case '%':
			if i+1 >= len(pattern) {
				return nil, &patternError{"dangling %% at end of pattern"}
			}
			next := pattern[i+1]
			if next == 'b' || next == 'f' || (next >= '0' && next <= '9') {
				return nil, &patternError{"unsupported Lua pattern construct %" + string(next)}
			}
			if cls, ok := luaClasses[next]; ok {
				out.WriteString(cls)
			} else {
				out.WriteString(regexp.QuoteMeta(string(next)))
			}
			i += 2
		case '-':
			if inSet {
				// A range inside a character set, e.g. [a-z].
				out.WriteByte(ch)
			} else {
				// Lua's lazy "any number, fewest" quantifier.
				out.WriteString("*?")
			}
			i++
		default:
			switch ch {
			case '[':
				inSet = true
			case ']':
				inSet = false
			}
			out.WriteByte(ch)
			i++
		}
	}
	re, err := regexp.Compile(out.String())
	if err != nil {
		return nil, &patternError{"invalid pattern: " + err.Error()}
	}
	return re, nil
}

type patternError struct{ msg string }

func (e *patternError) Error() string { return e.msg }
