package pysim_test

import (
	"math"
	"slices"
	"testing"

	"github.com/suguru-ai/smartclass/internal/pysim"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		input string
		want  []string
	}{
		{
			name: "string literal",
			code: `print("Hello, World!")`,
			want: []string{"Hello, World!"},
		},
		{
			name: "single quotes",
			code: `print('hi')`,
			want: []string{"hi"},
		},
		{
			name: "string variable",
			code: "name = \"Ada\"\nprint(name)",
			want: []string{"Ada"},
		},
		{
			name: "numeric variable",
			code: "age = 10\nprint(age)",
			want: []string{"10"},
		},
		{
			name: "float variable with exponent",
			code: "rate = 1.5e3\nprint(rate)",
			want: []string{"1.5e3"},
		},
		{
			name: "hex variable",
			code: "mask = 0x10\nprint(mask)",
			want: []string{"0x10"},
		},
		{
			name: "inf is not numeric",
			code: "x = inf\nprint(x)",
			want: []string{"[Variable: x]"},
		},
		{
			name: "nan is not numeric",
			code: "x = nan\nprint(x)",
			want: []string{"[Variable: x]"},
		},
		{
			name: "hex float is not numeric",
			code: "x = 0x1p-2\nprint(x)",
			want: []string{"[Variable: x]"},
		},
		{
			name: "unresolvable variable",
			code: "total = a + b\nprint(total)",
			want: []string{"[Variable: total]"},
		},
		{
			name: "unassigned variable",
			code: "print(missing)",
			want: []string{"[Variable: missing]"},
		},
		{
			name: "arithmetic",
			code: "print(2 + 3 * 4)",
			want: []string{"14"},
		},
		{
			name: "float division",
			code: "print(7 / 2)",
			want: []string{"3.5"},
		},
		{
			name: "exponent is not evaluated",
			code: "print(2 ** 3)",
			want: []string{"[Expression: 2 ** 3]"},
		},
		{
			name: "mixed expression",
			code: `print("Sum:", 1 + 2)`,
			want: []string{`[Expression: "Sum:", 1 + 2]`},
		},
		{
			name: "loop",
			code: "for i in range(3):\n    x = i",
			want: []string{pysim.LoopExecuted},
		},
		{
			name: "conditional",
			code: "x = 5\nif x > 3:\n    y = 1",
			want: []string{pysim.ConditionalRun},
		},
		{
			name: "function",
			code: "def greet(name):\n    return name",
			want: []string{pysim.FunctionDefined},
		},
		{
			name: "no output",
			code: "x = 1",
			want: []string{pysim.NoOutput},
		},
		{
			name: "empty code",
			code: "   \n",
			want: nil,
		},
		{
			name:  "input substituted",
			code:  "name = input(\"Your name? \")\nprint(name)",
			input: "Ada",
			want:  []string{"Ada", "Received input: Ada"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := pysim.Run(tt.code, tt.input)
			if res.WaitingForInput {
				t.Fatal("WaitingForInput should be false")
			}
			if got := res.Lines(); !slices.Equal(got, tt.want) {
				t.Errorf("Run() lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_WaitsForInput(t *testing.T) {
	res := pysim.Run("name = input(\"Your name? \")\nprint(name)", "")
	if !res.WaitingForInput {
		t.Error("WaitingForInput should be true when input() has no input")
	}
	if res.Output != pysim.WaitingForInput+"\n" {
		t.Errorf("Output = %q", res.Output)
	}
}

func TestRun_OutputOrder(t *testing.T) {
	code := "print(\"start\")\nfor i in range(2):\n    print(i)\ndef f():\n    pass"
	want := []string{"start", "[Variable: i]", pysim.LoopExecuted, pysim.FunctionDefined}
	if got := pysim.Run(code, "").Lines(); !slices.Equal(got, want) {
		t.Errorf("Run() lines = %q, want %q", got, want)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"10 - 4 - 3", 3},
		{"2 + 3 * 4", 14},
		{"8 / 2 / 2", 2},
		{"-3 + 5", 2},
		{"5 - -3", 8},
		{"0.1 + 0.2", 0.30000000000000004},
		{" 42 ", 42},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := pysim.Eval(tt.expr)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	for _, expr := range []string{"", "1 +", "1..2", "2 ** 3", "* 2", "3 4"} {
		if _, err := pysim.Eval(expr); err == nil {
			t.Errorf("Eval(%q) should error", expr)
		}
	}
}

func TestEval_DivisionByZero(t *testing.T) {
	got, err := pysim.Eval("1 / 0")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("Eval(1 / 0) = %v, want +Inf", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{14, "14"},
		{3.5, "3.5"},
		{-2, "-2"},
		{1.0 / 3, "0.3333333333333333"},
		{0.30000000000000004, "0.30000000000000004"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
		{math.Copysign(0, -1), "0"},
	}
	for _, tt := range tests {
		if got := pysim.FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRun_DivisionByZeroPrinted(t *testing.T) {
	if got := pysim.Run("print(1 / 0)", "").Lines(); !slices.Equal(got, []string{"Infinity"}) {
		t.Errorf("Run() lines = %q, want [Infinity]", got)
	}
}
