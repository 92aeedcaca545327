package eval

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"golosina/parser"
	"golosina/trace"
	"golosina/types"
)

func run(t *testing.T, src string) (types.Value, error) {
	t.Helper()
	return NewInterpreter(WithOutput(io.Discard)).Run(src, "test.gol")
}

func expectRepr(t *testing.T, src, expected string) {
	t.Helper()
	v, err := run(t, src)
	if err != nil {
		t.Fatalf("Run(%q): unexpected error: %v", src, err)
	}
	if got := types.Repr(v); got != expected {
		t.Errorf("Run(%q) = %s, want %s", src, got, expected)
	}
}

func expectCode(t *testing.T, src string, code types.ErrorCode) *types.Error {
	t.Helper()
	_, err := run(t, src)
	var evalErr *types.Error
	if !errors.As(err, &evalErr) {
		t.Fatalf("Run(%q): expected %s, got %v", src, code, err)
	}
	if evalErr.Code != code {
		t.Errorf("Run(%q): expected %s, got %s (%s)", src, code, evalErr.Code, evalErr.Message)
	}
	return evalErr
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"1 + 2 * 3;", "7"},
		{"(1 + 2) * 3;", "9"},
		{"7 / 2;", "3.5"},
		{"6 / 2;", "3"},
		{"7 % 3;", "1"},
		{"7.5 % 2;", "1.5"},
		{"1 + 2.0;", "3.0"},
		{"0.5 + 0.5;", "1.0"},
		{"-3 + 1;", "-2"},
		{"1 << 4;", "16"},
		{"5 & 3 | 8;", "9"},
		{"256 >> 2;", "64"},
		{`"a" + "b";`, `"ab"`},
		{`"abc" < "abd";`, "true"},
		{`"a" == "a";`, "true"},
		{"1 == 1.0;", "true"},
		{"null == null;", "true"},
		{"true != false;", "true"},
		{"!0;", "true"},
		{`!"";`, "true"},
		{"+4;", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectRepr(t, tt.src, tt.expected)
		})
	}
}

func TestNumericTagging(t *testing.T) {
	tests := []struct {
		src  string
		code types.TypeCode
	}{
		{"6 / 2;", types.TYPE_INT},
		{"7 / 2;", types.TYPE_FLOAT},
		{"1 + 2.0;", types.TYPE_FLOAT},
		{"2 * 3;", types.TYPE_INT},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, err := run(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if types.TypeOf(v) != tt.code {
				t.Errorf("type = %s, want %s", types.TypeOf(v), tt.code)
			}
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		src  string
		code types.ErrorCode
	}{
		{`"a" - "b";`, types.E_TYPE},
		{`1 + "a";`, types.E_TYPE},
		{"true == 1;", types.E_TYPE},
		{"null < null;", types.E_TYPE},
		{"Object == Object;", types.E_TYPE},
		{`-"a";`, types.E_TYPE},
		{"!Object;", types.E_TYPE},
		{"1.5 << 1;", types.E_TYPE},
		{"1 / 0;", types.E_DIV},
		{"1 % 0;", types.E_DIV},
		{"1.0 / 0;", types.E_DIV},
		{"1 << -1;", types.E_INVARG},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectCode(t, tt.src, tt.code)
		})
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	var out bytes.Buffer
	interp := NewInterpreter(WithOutput(&out))

	v, err := interp.Run(`false && fmt.println("right side");`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types.Repr(v) != "false" || out.Len() != 0 {
		t.Errorf("&& did not short-circuit: value %s, output %q", v, out.String())
	}

	v, _ = interp.Run(`1 || fmt.println("right side");`, "")
	if types.Repr(v) != "true" || out.Len() != 0 {
		t.Errorf("|| did not short-circuit: value %s, output %q", v, out.String())
	}

	expectRepr(t, `0 || "";`, "false")
	expectRepr(t, `1 && "x";`, "true")
	expectCode(t, "Object && true;", types.E_TYPE)
}

func TestAssignment(t *testing.T) {
	expectRepr(t, "let a; let b; a = b = 4; a + b;", "8")
	expectRepr(t, "let z; (z = 3) + 1;", "4")
	expectRepr(t, "let a = 1; { a = 2; } a;", "2")
	expectRepr(t, "let a = 1; { let a = 2; } a;", "1")
}

func TestEnvironmentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code types.ErrorCode
	}{
		{"const reassignment", "const k = 1; k = 2;", types.E_CONST},
		{"const increment", "const k = 1; k++;", types.E_CONST},
		{"duplicate declaration", "let a = 1; let a = 2;", types.E_DUPDECL},
		{"duplicate parameter binding of this", "const o = clone Object { f = method(this) { 1; } }; o.f(1);", types.E_DUPDECL},
		{"unresolved read", "q;", types.E_UNRESOLVED},
		{"unresolved write", "q = 1;", types.E_UNRESOLVED},
		{"global module is const", "fmt = 1;", types.E_CONST},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := expectCode(t, tt.src, tt.code)
			if err.Kind != types.EnvironmentError {
				t.Errorf("kind = %s, want EnvironmentError", err.Kind)
			}
		})
	}
}

func TestPrototypeChain(t *testing.T) {
	interp := NewInterpreter(WithOutput(io.Discard))
	steps := []struct {
		src      string
		expected string
	}{
		{"const p = clone Object { x = 1 };", "{ x = 1 }"},
		{"const c = clone p { y = 2 };", "{ y = 2 }"},
		{"c.x;", "1"},
		{"c.y;", "2"},
		{"c.x = 5;", "5"},
		{"p.x;", "1"},
		{"c.x;", "5"},
		{"p.x = 7; c.x;", "5"},
		{"const d = clone p {}; d.x;", "7"},
	}
	for _, step := range steps {
		v, err := interp.Run(step.src, "")
		if err != nil {
			t.Fatalf("Run(%q): %v", step.src, err)
		}
		if got := types.Repr(v); got != step.expected {
			t.Errorf("Run(%q) = %s, want %s", step.src, got, step.expected)
		}
	}

	if _, err := interp.Run("c.z = 1;", ""); !types.IsCode(err, types.E_MEMBERNF) {
		t.Errorf("write of a missing member: got %v, want MemberNotFound", err)
	}
	if _, err := interp.Run("c.z;", ""); !types.IsCode(err, types.E_MEMBERNF) {
		t.Errorf("read of a missing member: got %v, want MemberNotFound", err)
	}
}

func TestCloneOverrides(t *testing.T) {
	expectRepr(t, "const o = clone Object { a = 1, a = 2 }; o.a;", "2")
	expectRepr(t, "let a = 5; const o = clone Object { b = a }; o.b;", "5")
	expectCode(t, "const m = method() {}; clone m {};", types.E_TYPE)
	expectCode(t, "const m = method() {}; m.x;", types.E_TYPE)
	expectCode(t, "let n = 5; n.x;", types.E_MEMBERNF)
}

func TestBreakTerminatesInnermostLoop(t *testing.T) {
	src := `
let count = 0;
for (let i = 0; i < 3; i++) {
  for (let j = 0; j < 10; j++) {
    if (j == 2) { break; }
    count++;
  }
}
count;`
	expectRepr(t, src, "6")
}

func TestContinue(t *testing.T) {
	expectRepr(t, `
let i = 0;
let sum = 0;
while (i < 5) {
  i++;
  if (i % 2 == 0) { continue; }
  sum = sum + i;
}
sum;`, "9")

	// continue in a for loop still runs the update clause
	expectRepr(t, `
let s = 0;
for (let i = 0; i < 5; i++) {
  if (i == 2) { continue; }
  s = s + i;
}
s;`, "8")
}

func TestForForms(t *testing.T) {
	expectRepr(t, "let n = 0; for (;;) { n++; if (n == 3) { break; } } n;", "3")
	expectRepr(t, "let n = 0; for n = 0; n < 4; n++ { } n;", "4")
	expectCode(t, "for (let i = 0; i < 2; i++) { } i;", types.E_UNRESOLVED)
}

func TestReturnFromLoopInMethod(t *testing.T) {
	src := `
const find = method(n) {
  let i = 0;
  while (true) {
    if (i == n) { return i * 10; }
    i++;
  }
};
let after = find(4) + 1;
after;`
	expectRepr(t, src, "41")
}

func TestCase(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"no match no default", "let hit = 0; case (5) { of 1 -> hit = 1; of 2 -> hit = 2; } hit;", "0"},
		{"no match yields null", "case (5) { of 1 -> 1; }", "null"},
		{"first match", `case (2) { of 1 -> "one"; of 2 -> "two"; of 2 -> "again"; }`, `"two"`},
		{"default is fallback", `let r; case (3) { default -> r = "d"; of 3 -> r = "three"; } r;`, `"three"`},
		{"default taken", `case ("x") { of "y" -> 1; default -> 2; }`, "2"},
		{"lenient equality", `case (1) { of "1" -> "str"; of 1.0 -> "num"; }`, `"num"`},
		{"arm bindings are local", "let z = 1; case (1) { of 1 -> let z = 7; } z;", "1"},
		{"break ends case", "let r = 0; case (1) { of 1 -> { r = 1; break; r = 2; } } r;", "1"},
		{"case inside loop continue", `
let n = 0;
for (let i = 0; i < 4; i++) {
  case (i) { of 1 -> continue; default -> n = n + 1; }
}
n;`, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectRepr(t, tt.src, tt.expected)
		})
	}

	expectCode(t, "case (1) { of 1 -> let z = 7; } z;", types.E_UNRESOLVED)
}

func TestConditionMustBeValue(t *testing.T) {
	expectCode(t, "if (Object) { 1; }", types.E_INVARG)
	expectCode(t, "while (fmt) { }", types.E_INVARG)
	expectRepr(t, `if ("") { 1; } else if (0.0) { 2; } else { 3; }`, "3")
}

func TestUpdateOperators(t *testing.T) {
	expectRepr(t, "let x = 5; let y = x++; y * 100 + x;", "506")
	expectRepr(t, "let x = 5; let y = ++x; y * 100 + x;", "606")
	expectRepr(t, "let x = 5; x--; --x;", "3")
	expectRepr(t, "let f = 1.5; f++; f;", "2.5")
	expectRepr(t, "const o = clone Object { n = 1 }; o.n++; o.n;", "2")
	expectCode(t, `let s = "a"; s++;`, types.E_TYPE)

	// the postfix snapshot never aliases the live binding
	expectRepr(t, "let a = 1; let b = a; a++; b;", "1")
}

func TestMethods(t *testing.T) {
	expectRepr(t, `
const fact = method(n) {
  if (n <= 1) { return 1; }
  return n * fact(n - 1);
};
fact(10);`, "3628800")

	expectRepr(t, "const add = method(a, b) { a + b; }; add(2, 3);", "5")
	expectRepr(t, "const none = method() { return; }; none();", "null")
	expectRepr(t, "const empty = method() {}; empty();", "null")
	expectRepr(t, "method(x) { x * 2; }(21);", "42")
	expectCode(t, "let n = 1; n();", types.E_NOTCALLABLE)
	expectCode(t, "const add = method(a) { let a = 2; }; add(1);", types.E_DUPDECL)
}

func TestArityCheckedBeforeBody(t *testing.T) {
	var out bytes.Buffer
	interp := NewInterpreter(WithOutput(&out))
	_, err := interp.Run(`const two = method(a, b) { fmt.println("ran"); a + b; }; two(1);`, "")

	var evalErr *types.Error
	if !errors.As(err, &evalErr) || evalErr.Code != types.E_ARGS || evalErr.Kind != types.TypeError {
		t.Fatalf("expected ArityMismatch TypeError, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("method body ran: output %q", out.String())
	}

	expectCode(t, `"x".length(1);`, types.E_ARGS)
}

func TestReceiver(t *testing.T) {
	interp := NewInterpreter(WithOutput(io.Discard))
	src := `
const counter = clone Object {
  n = 0,
  inc = method() { this.n = this.n + 1; return this.n; }
};
counter.inc();
counter.inc();`
	v, err := interp.Run(src, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types.Repr(v) != "2" {
		t.Errorf("counter.inc() = %s, want 2", v)
	}

	v, err = interp.Run("const child = clone counter { n = 10 }; child.inc();", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types.Repr(v) != "11" {
		t.Errorf("child.inc() = %s, want 11", v)
	}
	if v, _ := interp.Run("counter.n;", ""); types.Repr(v) != "2" {
		t.Errorf("counter.n = %s after child.inc(), want 2", v)
	}

	if _, err := interp.Run("this;", ""); !types.IsCode(err, types.E_UNRESOLVED) {
		t.Errorf("this outside a method: got %v, want UnresolvedSymbol", err)
	}
	expectCode(t, "const o = clone Object { f = method() { this = 1; } }; o.f();", types.E_CONST)
}

func TestDynamicScope(t *testing.T) {
	src := `
const show = method() { return secret; };
const wrap = method() { let secret = "inner"; return show(); };
wrap();`
	expectRepr(t, src, `"inner"`)
	expectCode(t, "const show = method() { return secret; }; show();", types.E_UNRESOLVED)
}

func TestCallDepthLimit(t *testing.T) {
	interp := NewInterpreter(WithOutput(io.Discard), WithMaxCallDepth(50))
	_, err := interp.Run("const f = method(n) { return f(n + 1); }; f(0);", "")
	if !types.IsCode(err, types.E_MAXREC) {
		t.Fatalf("expected CallDepthExceeded, got %v", err)
	}
	if interp.Evaluator().Environment().Depth() != 1 {
		t.Errorf("scopes leaked after abort: depth %d", interp.Evaluator().Environment().Depth())
	}

	// the limit counts active calls, not total calls
	v, err := interp.Run("let i = 0; const g = method() { i++; }; while (i < 200) { g(); } i;", "")
	if err != nil || types.Repr(v) != "200" {
		t.Errorf("sequential calls: %v, %v", v, err)
	}
}

func TestNativeModules(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{`"hello".length();`, "5"},
		{`"a,b".split(",").join("-");`, `"a-b"`},
		{`"Hi".upper();`, `"HI"`},
		{`"team".includes("ea");`, "true"},
		{"containers.range(0, 3).length();", "3"},
		{"let l = containers.list(1, 2); l.push(3); l.get(2);", "3"},
		{"let l = containers.list(1); l.set(0, 9).get(0);", "9"},
		{`fmt.format("{}-{}", 1, "x");`, `"1-x"`},
		{"json.encode(clone Object { a = 1 });", `"{\"a\":1}"`},
		{`json.decode("[1, 2.5]").get(1);`, "2.5"},
		{`crypto.hash("abc", "md5");`, `"900150983CD24FB0D6963F7D28E17F72"`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectRepr(t, tt.src, tt.expected)
		})
	}

	expectCode(t, "let l = containers.list(1); l.get(5);", types.E_RANGE)
	expectCode(t, `json.decode("{");`, types.E_INVARG)
	expectCode(t, "fmt.missing();", types.E_MEMBERNF)
}

func TestPrintOutput(t *testing.T) {
	var out bytes.Buffer
	interp := NewInterpreter(WithOutput(&out), WithArgs([]string{"a1"}))
	_, err := interp.Run(`fmt.println("a", 1 + 1); fmt.print(os.args().get(0));`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "a 2\na1" {
		t.Errorf("output = %q", out.String())
	}
}

func TestSyntaxErrorsAbortBeforeEvaluation(t *testing.T) {
	var out bytes.Buffer
	interp := NewInterpreter(WithOutput(&out))
	_, err := interp.Run(`fmt.println("x"); let = 1; const y;`, "bad.gol")

	var list parser.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected parser.ErrorList, got %T %v", err, err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 syntax errors, got %d: %v", len(list), err)
	}
	if out.Len() != 0 {
		t.Errorf("partial program was evaluated: output %q", out.String())
	}
}

func TestSessionPersistence(t *testing.T) {
	interp := NewInterpreter(WithOutput(io.Discard))
	if _, err := interp.Run("let a = 1;", ""); err != nil {
		t.Fatal(err)
	}
	v, err := interp.Run("a + 1;", "")
	if err != nil || types.Repr(v) != "2" {
		t.Fatalf("a + 1 = %v, %v", v, err)
	}

	if _, err := interp.Run("{ let t = 1; missing; }", ""); !types.IsCode(err, types.E_UNRESOLVED) {
		t.Fatalf("expected UnresolvedSymbol, got %v", err)
	}
	v, err = interp.Run("let t = 2; t;", "")
	if err != nil || types.Repr(v) != "2" {
		t.Errorf("block binding leaked into globals: %v, %v", v, err)
	}

	if v, ok := interp.Lookup("a"); !ok || v.String() != "1" {
		t.Errorf("Lookup(a) = %v, %v", v, ok)
	}
}

func TestErrorLocation(t *testing.T) {
	err := expectCode(t, "let a = 1;\nlet b = a +\n  missing;", types.E_UNRESOLVED)
	if err.Span.Start.Line != 3 {
		t.Errorf("error line = %d, want 3", err.Span.Start.Line)
	}

	// errors raised inside a call keep the innermost location
	err = expectCode(t, "const f = method() {\n  return 1 / 0;\n};\nf();", types.E_DIV)
	if err.Span.Start.Line != 2 {
		t.Errorf("error line = %d, want 2", err.Span.Start.Line)
	}
}

func TestImportExport(t *testing.T) {
	expectRepr(t, `import "lib/util"; import fmt; 1;`, "1")
	expectRepr(t, "export const answer = 42;", "null")
	expectCode(t, "export let x = 41; x + 1;", types.E_UNRESOLVED)
}

func TestMethodTrace(t *testing.T) {
	var buf bytes.Buffer
	trace.Init(true, nil, &buf)
	defer trace.Init(false, nil, io.Discard)

	expectRepr(t, "const sq = method(n) { return n * n; }; sq(3);", "9")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"[TRACE] CALL sq args=[3] this=false",
		"[TRACE] RETURN sq => 9",
	}
	if len(lines) != len(expected) {
		t.Fatalf("trace = %q", buf.String())
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], expected[i])
		}
	}
}
