// Command luasandrepl is the interactive front end for the luasand
// interpreter. Grounded on the teacher's repl/repl.go + main/main.go:
// a colored banner, readline-backed line editing with history, and a
// plain stdin-line fallback when standard input isn't a terminal (piped
// scripts, CI).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"

	"github.com/luasand/luasand"
	"github.com/luasand/luasand/object"
)

const (
	version = "v0.1.0"
	prompt  = "luasand >>> "
	line    = "----------------------------------------------------------------"
	banner  = `  _                                     _
 | |_   _  __ _ ___  __ _ _ __   __ _  | |
 | | | | |/ _` + "`" + ` / __|/ _` + "`" + ` | '_ \ / _` + "`" + ` | | |
 | | |_| | (_| \__ \ (_| | | | | (_| | |_|
 |_|\__,_|\__,_|___/\__,_|_| |_|\__,_| (_)
`
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		runFile(os.Args[1])
		return
	}
	runRepl()
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}
	interp := luasand.New()
	result, err := interp.Execute(string(source))
	fmt.Fprint(os.Stdout, interp.Logs())
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	if result.Kind() != object.KindNil {
		yellowColor.Fprintf(os.Stdout, "%s\n", result.String())
	}
}

func runRepl() {
	out := colorable.NewColorableStdout()
	printBanner(out)

	interp := luasand.New()

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		runPlainLoop(out, interp)
		return
	}

	rl, err := readline.New(prompt)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[REPL ERROR] could not start line editor: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			fmt.Fprint(out, "Goodbye!\n")
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ".exit" {
			fmt.Fprint(out, "Goodbye!\n")
			return
		}
		rl.SaveHistory(input)
		evalAndPrint(out, interp, input)
	}
}

// runPlainLoop handles piped/non-interactive stdin, line by line, without
// readline's terminal control sequences.
func runPlainLoop(out io.Writer, interp *luasand.Interpreter) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == ".exit" {
			return
		}
		if input == "" {
			continue
		}
		evalAndPrint(out, interp, input)
	}
}

func evalAndPrint(out io.Writer, interp *luasand.Interpreter, input string) {
	result, err := interp.Execute(input)
	if logs := interp.Logs(); logs != "" {
		fmt.Fprint(out, logs)
		interp.ClearLogs()
	}
	if err != nil {
		redColor.Fprintf(out, "%s\n", err)
		return
	}
	if result.Kind() != object.KindNil {
		yellowColor.Fprintf(out, "%s\n", result.String())
	}
}

func printBanner(out io.Writer) {
	blueColor.Fprintf(out, "%s\n", line)
	greenColor.Fprintf(out, "%s\n", banner)
	blueColor.Fprintf(out, "%s\n", line)
	yellowColor.Fprintf(out, "luasand %s\n", version)
	blueColor.Fprintf(out, "%s\n", line)
	cyanColor.Fprintf(out, "Type your code and press enter. Type '.exit' to quit.\n")
	blueColor.Fprintf(out, "%s\n", line)
}
