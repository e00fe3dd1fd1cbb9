package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeArithmetic(t *testing.T) {
	tokens, err := Tokenize("1 + 2 * 3")
	require.NoError(t, err)

	kinds := make([]Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []Kind{INTEGER, PLUS, INTEGER, MUL, INTEGER, EOF}, kinds)
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := Tokenize("local x = true")
	require.NoError(t, err)
	require.Equal(t, LOCAL, tokens[0].Kind)
	require.Equal(t, IDENTIFIER, tokens[1].Kind)
	require.Equal(t, ASSIGN, tokens[2].Kind)
	require.Equal(t, BOOLEAN, tokens[3].Kind)
	require.Equal(t, "true", tokens[3].Literal)
}

func TestTokenizeLongString(t *testing.T) {
	tokens, err := Tokenize("[[hello\nworld]]")
	require.NoError(t, err)
	require.Equal(t, LONGSTRING, tokens[0].Kind)
	require.Equal(t, "hello\nworld", tokens[0].Literal)
}

func TestTokenizeQuotedStrings(t *testing.T) {
	tokens, err := Tokenize(`"ab" 'cd'`)
	require.NoError(t, err)
	require.Equal(t, STRING, tokens[0].Kind)
	require.Equal(t, "ab", tokens[0].Literal)
	require.Equal(t, STRING, tokens[1].Kind)
	require.Equal(t, "cd", tokens[1].Literal)
}

func TestTokenizeComments(t *testing.T) {
	tokens, err := Tokenize("-- comment\nlocal x = 1")
	require.NoError(t, err)
	require.Equal(t, LOCAL, tokens[0].Kind)
	require.Equal(t, 2, tokens[0].Line)
}

func TestTokenizeLongestMatchOperators(t *testing.T) {
	tokens, err := Tokenize("a <= b ~= c .. d")
	require.NoError(t, err)
	kinds := make([]Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []Kind{IDENTIFIER, LE, IDENTIFIER, NEQUAL, IDENTIFIER, CONCAT, IDENTIFIER, EOF}, kinds)
}

func TestTokenizeUnknownCharacter(t *testing.T) {
	_, err := Tokenize("local x = @")
	require.Error(t, err)
	var uerr *UnknownCharacterError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, 1, uerr.Line)
}

func TestTokenizeLineTracking(t *testing.T) {
	tokens, err := Tokenize("local x = 1\nlocal y = 2")
	require.NoError(t, err)
	// find second 'local'
	found := false
	for _, tok := range tokens {
		if tok.Kind == LOCAL && tok.Line == 2 {
			found = true
		}
	}
	require.True(t, found)
}
