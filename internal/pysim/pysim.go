// Package pysim produces the output a beginner's Python snippet would
// plausibly print. It matches text patterns (print calls, simple
// assignments, arithmetic on literals, loop/if/def keywords); it does not
// parse or run Python.
package pysim

import (
	"fmt"
	"regexp"
	"strings"
)

// Canned output lines.
const (
	WaitingForInput = "Waiting for input..."
	LoopExecuted    = "Loop executed"
	ConditionalRun  = "Conditional executed"
	FunctionDefined = "Function defined"
	NoOutput        = "Code executed successfully (no output)"
)

var (
	printRe      = regexp.MustCompile(`print\s*\((.*?)\)`)
	identRe      = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	inputAssign  = regexp.MustCompile(`(\w+)\s*=\s*input\s*\([^)]*\)`)
	arithmeticRe = regexp.MustCompile(`^[\d\s+\-*/.]+$`)
	// numericRe matches values printed as-is: signed decimals with an
	// optional exponent, Infinity, or unsigned hex/octal/binary integers.
	numericRe = regexp.MustCompile(`^(?:[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?|[+-]?Infinity|0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+)$`)
)

// Result is the simulated console output.
type Result struct {
	Output string
	// WaitingForInput is set when the code reads input and none was given.
	// Run again with the input to continue.
	WaitingForInput bool
}

// Lines splits the output into lines without the trailing newline.
func (r Result) Lines() []string {
	out := strings.TrimSuffix(r.Output, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Run simulates code. An empty input means none has been typed yet.
// Internal failures are reported in the output as "Error: ...".
func Run(code, input string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Output: fmt.Sprintf("Error: %v\n", r)}
		}
	}()

	if strings.Contains(code, "input(") && input == "" {
		return Result{Output: WaitingForInput + "\n", WaitingForInput: true}
	}

	var received int
	if input != "" {
		quoted := `"` + input + `"`
		code = inputAssign.ReplaceAllStringFunc(code, func(m string) string {
			received++
			name := inputAssign.FindStringSubmatch(m)[1]
			return name + " = " + quoted
		})
	}

	var out strings.Builder
	for _, m := range printRe.FindAllStringSubmatch(code, -1) {
		out.WriteString(printArg(code, strings.TrimSpace(m[1])))
		out.WriteByte('\n')
	}
	for range received {
		out.WriteString("Received input: " + input + "\n")
	}

	if strings.Contains(code, "for ") && strings.Contains(code, " in range(") && strings.Contains(code, "):") {
		out.WriteString(LoopExecuted + "\n")
	}
	if strings.Contains(code, "if ") && strings.Contains(code, ":") {
		out.WriteString(ConditionalRun + "\n")
	}
	if strings.Contains(code, "def ") && strings.Contains(code, "):") {
		out.WriteString(FunctionDefined + "\n")
	}

	if out.Len() == 0 && strings.TrimSpace(code) != "" {
		out.WriteString(NoOutput + "\n")
	}
	return Result{Output: out.String()}
}

func printArg(code, arg string) string {
	if s, ok := unquote(arg); ok {
		return s
	}
	if identRe.MatchString(arg) {
		return variable(code, arg)
	}
	if arithmeticRe.MatchString(arg) {
		if v, err := Eval(arg); err == nil {
			return FormatNumber(v)
		}
	}
	return "[Expression: " + arg + "]"
}

// variable resolves name from its first "name = value" assignment.
func variable(code, name string) string {
	re := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(name) + `\s*=\s*(.+)$`)
	m := re.FindStringSubmatch(code)
	if m == nil {
		return "[Variable: " + name + "]"
	}

	value := strings.TrimSpace(m[1])
	if s, ok := unquote(value); ok {
		return s
	}
	if value == "" || numericRe.MatchString(value) {
		return value
	}
	return "[Variable: " + name + "]"
}

// unquote strips one pair of matching single or double quotes.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && first == last {
		return s[1 : len(s)-1], true
	}
	return "", false
}
