// Package luasand is the embedding façade: it wires the lexer, parser,
// and evaluator into a single reusable instance a host application can
// feed source into and read captured output from, without ever touching
// stdout directly.
package luasand

import (
	"regexp"

	"github.com/luasand/luasand/config"
	"github.com/luasand/luasand/eval"
	"github.com/luasand/luasand/object"
	"github.com/luasand/luasand/parser"
	"github.com/luasand/luasand/stdlib"
)

// Interpreter owns one sandboxed script runtime: its environment, its
// captured log buffer, and the set of host libraries available to
// require(). Not safe for concurrent use — one Execute call must finish
// before the next starts, mirroring the evaluator's own single-threaded
// contract.
type Interpreter struct {
	evaluator *eval.Evaluator
}

// New builds an Interpreter with the fixed host library set (string,
// table, math, os, io, coroutine, package) installed, plus any additional
// libraries made available to require().
func New(libraries ...*object.Library) *Interpreter {
	return &Interpreter{evaluator: eval.New(stdlib.All(), libraries...)}
}

// NewWithPolicy is New, but applies policy's extra method blocks to the
// fixed host libraries before installing them. Use this when embedding in
// a host that needs to narrow the default os/io allowlist further (see
// the config package).
func NewWithPolicy(policy *config.Policy, libraries ...*object.Library) *Interpreter {
	libs := stdlib.All()
	policy.Apply(libs)
	return &Interpreter{evaluator: eval.New(libs, libraries...)}
}

// Execute parses and evaluates source against the interpreter's current
// environment, returning the final expression's value. A parse failure or
// a runtime failure both come back as the error return; the underlying
// type is always *parser.SyntaxError, a lexer error, or an
// *eval.ChainedException, never a bare string.
func (i *Interpreter) Execute(source string) (object.Value, error) {
	root, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return i.evaluator.Run(root, source)
}

// Logs returns everything printed by the script so far, as a single
// accumulated string.
func (i *Interpreter) Logs() string { return i.evaluator.Logs() }

// ClearLogs empties the captured log buffer without touching the
// environment.
func (i *Interpreter) ClearLogs() { i.evaluator.ClearLogs() }

// ResetEnvironment reinstalls the fixed libraries and always-present
// globals, dropping every user-declared name.
func (i *Interpreter) ResetEnvironment() { i.evaluator.ResetEnvironment() }

// Reset clears logs and reinstalls the environment.
func (i *Interpreter) Reset() { i.evaluator.Reset() }

var fencedCodeBlock = regexp.MustCompile("(?s)```[^\n]*\n(.*?)```")

// FindCodeBlocks extracts the contents of every fenced code block
// (```...```) in text, in order of appearance, without the surrounding
// fence markers or the optional language tag on the opening fence. Useful
// for hosts that let users paste a markdown document and want to run just
// the script portions.
func FindCodeBlocks(text string) []string {
	matches := fencedCodeBlock.FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks
}
