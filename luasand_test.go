package luasand

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luasand/luasand/lexer"
)

// TestExecuteEndToEndScenarios runs the literal source snippets enumerated
// in the language's testable-properties table and checks the captured
// logs exactly. The pcall scenario, where only the wrapped message needs
// to appear as a substring, is TestExecutePcallCapturesError.
func TestExecuteEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		logs   string
	}{
		{"arithmetic precedence", `local x = 1 + 2 * 3  print(x)`, "7\n"},
		{"array table length and index", `local t = {10, 20, 30}  print(#t)  print(t[2])`, "3\n20\n"},
		{"function call", `function f(a, b) return a - b end  print(f(10, 3))`, "7\n"},
		{"string concat and length", `local s = "ab" .. "cd"  print(s)  print(#s)`, "abcd\n4\n"},
		{"numeric for", `for i = 1, 3 do print(i) end`, "1\n2\n3\n"},
		{"if else", `if 1 < 2 then print("y") else print("n") end`, "y\n"},
		{"dictionary table indexing", `local t = {a = 1, b = 2}  print(t["a"] + t["b"])`, "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interp := New()
			_, err := interp.Execute(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.logs, interp.Logs())
		})
	}
}

func TestExecutePcallCapturesError(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`local ok, msg = pcall(function() error("boom") end)  print(ok)  print(msg)`)
	require.NoError(t, err)
	lines := strings.SplitN(interp.Logs(), "\n", 2)
	require.Equal(t, "false", lines[0])
	require.Contains(t, interp.Logs(), "boom")
}

func TestUnknownCharacterIsSyntaxError(t *testing.T) {
	interp := New()
	_, err := interp.Execute("local x = @")
	require.Error(t, err)
	var uerr *lexer.UnknownCharacterError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, 1, uerr.Line)
}

func TestLoopExceedingCapFails(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`
local i = 0
while true do
  i = i + 1
end
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "65536")
}

// TestEnvironmentIsolation verifies a function writing to a pre-existing
// variable leaves the caller's binding unchanged on return.
func TestEnvironmentIsolation(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`
local x = 1
function mutate()
  x = 99
  local y = 2
end
mutate()
print(x)
`)
	require.NoError(t, err)
	require.Equal(t, "1\n", interp.Logs())
	_, err = interp.Execute(`print(y)`)
	require.Error(t, err)
}

func TestResetDropsUserDefinitions(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`local x = 1`)
	require.NoError(t, err)
	interp.Reset()
	_, err = interp.Execute(`print(x)`)
	require.Error(t, err)
	require.Equal(t, "", interp.Logs())
}

func TestClearLogsDoesNotTouchEnvironment(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`local x = 1  print(x)`)
	require.NoError(t, err)
	interp.ClearLogs()
	require.Equal(t, "", interp.Logs())
	_, err = interp.Execute(`print(x)`)
	require.NoError(t, err)
	require.Equal(t, "1\n", interp.Logs())
}

func TestFindCodeBlocksExtractsFencedSource(t *testing.T) {
	text := "intro text\n```lua\nprint(1)\n```\nmiddle\n```\nprint(2)\n```\n"
	blocks := FindCodeBlocks(text)
	require.Len(t, blocks, 2)
	require.Equal(t, "print(1)\n", blocks[0])
	require.Equal(t, "print(2)\n", blocks[1])
}

func TestBlockedLibraryMethodReportsPermissionError(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`os.execute("ls")`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "permission denied")
}

func TestRequireUnknownLibraryFails(t *testing.T) {
	interp := New()
	_, err := interp.Execute(`require("nope")`)
	require.Error(t, err)
}
