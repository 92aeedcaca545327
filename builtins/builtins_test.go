package builtins

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golosina/types"
)

func newTestRegistry(opts ...Option) *Registry {
	return NewRegistry(types.NewObject(nil), opts...)
}

// call invokes module.member the way the evaluator does: raw result
// converted through FromHost
func call(t *testing.T, r *Registry, module, member string, args ...types.Value) (types.Value, error) {
	t.Helper()
	mod, ok := r.Get(module)
	if !ok {
		t.Fatalf("module %s not registered", module)
	}
	m, ok := mod.Lookup(member)
	if !ok {
		t.Fatalf("%s.%s not found", module, member)
	}
	native, ok := m.(*types.NativeMethod)
	if !ok {
		t.Fatalf("%s.%s is %T, not a native method", module, member, m)
	}
	raw, err := native.Fn(args)
	if err != nil {
		return nil, err
	}
	return types.FromHost(raw, r.root)
}

func mustCall(t *testing.T, r *Registry, module, member string, args ...types.Value) types.Value {
	t.Helper()
	v, err := call(t, r, module, member, args...)
	if err != nil {
		t.Fatalf("%s.%s: unexpected error: %v", module, member, err)
	}
	return v
}

func TestRegistryModules(t *testing.T) {
	r := newTestRegistry()
	expected := []string{"fmt", "os", "containers", "json", "crypto"}
	names := r.Names()
	if len(names) != len(expected) {
		t.Fatalf("Names() = %v, want %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], expected[i])
		}
		mod, _ := r.Get(expected[i])
		if mod.Proto() != r.root {
			t.Errorf("module %s does not delegate to the root object", expected[i])
		}
	}

	r.Register("fmt", types.NewObject(r.root))
	if len(r.Names()) != len(expected) {
		t.Errorf("re-registering a module changed the name list: %v", r.Names())
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRegistry(WithOutput(&buf))

	mustCall(t, r, "fmt", "print", types.NewStr("a"), types.NewInt(1))
	mustCall(t, r, "fmt", "println", types.NewFloat(2.5), types.NewNull(), types.NewBool(true))
	mustCall(t, r, "fmt", "println")

	want := "a 12.5 null true\n\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestFormat(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		name     string
		args     []types.Value
		expected string
		code     types.ErrorCode
		wantErr  bool
	}{
		{"plain", []types.Value{types.NewStr("hi")}, "hi", 0, false},
		{"placeholders", []types.Value{types.NewStr("{} + {} = {}"), types.NewInt(1), types.NewInt(2), types.NewInt(3)}, "1 + 2 = 3", 0, false},
		{"escaped braces", []types.Value{types.NewStr("{{}} {}"), types.NewStr("x")}, "{} x", 0, false},
		{"too few", []types.Value{types.NewStr("{} {}"), types.NewInt(1)}, "", types.E_ARGS, true},
		{"too many", []types.Value{types.NewStr("{}"), types.NewInt(1), types.NewInt(2)}, "", types.E_ARGS, true},
		{"template not string", []types.Value{types.NewInt(1)}, "", types.E_TYPE, true},
		{"no template", nil, "", types.E_ARGS, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := call(t, r, "fmt", "format", tt.args...)
			if tt.wantErr {
				if !types.IsCode(err, tt.code) {
					t.Fatalf("expected %s, got %v", tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.String() != tt.expected {
				t.Errorf("format = %q, want %q", v.String(), tt.expected)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		in       types.Value
		expected string
	}{
		{types.NewInt(1234567), "1,234,567"},
		{types.NewInt(12), "12"},
		{types.NewFloat(1234.5), "1,234.5"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			v := mustCall(t, r, "fmt", "number", tt.in)
			if v.String() != tt.expected {
				t.Errorf("number(%s) = %q, want %q", tt.in, v.String(), tt.expected)
			}
		})
	}

	if _, err := call(t, r, "fmt", "number", types.NewStr("x")); !types.IsCode(err, types.E_TYPE) {
		t.Errorf("number(\"x\") error = %v, want TypeMismatch", err)
	}
}

func TestSystem(t *testing.T) {
	r := newTestRegistry(WithArgs([]string{"one", "two"}))

	args := mustCall(t, r, "os", "args").(*types.Object)
	if args.Len() != 2 || args.String() != `["one", "two"]` {
		t.Errorf("args() = %s", args)
	}

	t.Setenv("GOLOSINA_TEST_VAR", "set")
	if v := mustCall(t, r, "os", "getenv", types.NewStr("GOLOSINA_TEST_VAR")); v.String() != "set" {
		t.Errorf("getenv = %s, want set", v)
	}
	os.Unsetenv("GOLOSINA_TEST_VAR_MISSING")
	if v := mustCall(t, r, "os", "getenv", types.NewStr("GOLOSINA_TEST_VAR_MISSING")); !types.IsNull(v) {
		t.Errorf("getenv of unset variable = %s, want null", v)
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	n := mustCall(t, r, "os", "writeFile", types.NewStr(path), types.NewStr("héllo"))
	if n.String() != "6" {
		t.Errorf("writeFile returned %s, want 6", n)
	}
	if v := mustCall(t, r, "os", "readFile", types.NewStr(path)); v.String() != "héllo" {
		t.Errorf("readFile = %q", v.String())
	}

	_, err := call(t, r, "os", "readFile", types.NewStr(filepath.Join(t.TempDir(), "missing")))
	if !types.IsCode(err, types.E_HOST) {
		t.Errorf("readFile of missing file error = %v, want HostError", err)
	}

	if v := mustCall(t, r, "os", "time"); types.TypeOf(v) != types.TYPE_INT {
		t.Errorf("time() type = %s, want int", types.TypeOf(v))
	}
}

func TestContainers(t *testing.T) {
	r := newTestRegistry()

	list := mustCall(t, r, "containers", "list", types.NewInt(1), types.NewStr("a"), types.NewVariable(types.NewBool(true), false)).(*types.Object)
	if !list.IsContainer() || list.String() != `[1, "a", true]` {
		t.Errorf("list(...) = %s", list)
	}

	tests := []struct {
		start, end int64
		expected   string
	}{
		{0, 3, "[0, 1, 2]"},
		{2, 2, "[]"},
		{5, 1, "[]"},
		{-1, 1, "[-1, 0]"},
	}
	for _, tt := range tests {
		v := mustCall(t, r, "containers", "range", types.NewInt(tt.start), types.NewInt(tt.end))
		if v.String() != tt.expected {
			t.Errorf("range(%d, %d) = %s, want %s", tt.start, tt.end, v, tt.expected)
		}
	}

	if _, err := call(t, r, "containers", "range", types.NewInt(0), types.NewInt(1<<30)); !types.IsCode(err, types.E_INVARG) {
		t.Errorf("huge range error = %v, want InvalidOperand", err)
	}
}

func TestJSON(t *testing.T) {
	r := newTestRegistry()

	proto := types.NewObject(r.root)
	proto.SetOwn("a", types.NewInt(1))
	proto.SetOwn("greet", types.NewNative("greet", types.Fixed(0), nil))
	obj := types.NewObject(proto)
	obj.SetOwn("b", types.NewContainer([]types.Value{types.NewStr("x"), types.NewNull()}))
	obj.SetOwn("a", types.NewFloat(2.5))

	encoded := mustCall(t, r, "json", "encode", obj)
	if encoded.String() != `{"a":2.5,"b":["x",null]}` {
		t.Errorf("encode = %s", encoded)
	}

	decoded := mustCall(t, r, "json", "decode", types.NewStr(`{"n": 3, "f": 1.5, "s": "t", "l": [true, null]}`)).(*types.Object)
	if decoded.Proto() != r.root {
		t.Errorf("decoded object does not delegate to the root object")
	}
	checks := map[string]string{"n": "3", "f": "1.5", "s": "t", "l": "[true, null]"}
	for key, want := range checks {
		v, ok := decoded.Lookup(key)
		if !ok {
			t.Errorf("decoded object missing %s", key)
			continue
		}
		if v.String() != want {
			t.Errorf("decoded.%s = %s, want %s", key, v, want)
		}
	}
	if n, _ := decoded.Lookup("n"); types.TypeOf(n) != types.TYPE_INT {
		t.Errorf("integral JSON number decoded as %s, want int", types.TypeOf(n))
	}

	if _, err := call(t, r, "json", "decode", types.NewStr("{")); !types.IsCode(err, types.E_INVARG) {
		t.Errorf("decode of bad JSON error = %v, want InvalidOperand", err)
	}
	if _, err := call(t, r, "json", "encode", types.NewNative("f", types.Fixed(0), nil)); !types.IsCode(err, types.E_TYPE) {
		t.Errorf("encode of a method error = %v, want TypeMismatch", err)
	}
}

func TestHash(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		algo     string
		expected string
	}{
		{"md5", "900150983CD24FB0D6963F7D28E17F72"},
		{"sha256", "BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD"},
		{"sha3-256", "3A985DA74FE225B2045C172D6BD390BD855F086E3E9D525B46BFE24511431532"},
		{"ripemd160", "8EB208F7E05D987A9B044A8E98C6B087F15A0BFC"},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			v := mustCall(t, r, "crypto", "hash", types.NewStr("abc"), types.NewStr(tt.algo))
			if v.String() != tt.expected {
				t.Errorf("hash(abc, %s) = %s, want %s", tt.algo, v, tt.expected)
			}
		})
	}

	if v := mustCall(t, r, "crypto", "hash", types.NewStr("abc")); v.String() != tests[1].expected {
		t.Errorf("hash default algorithm = %s, want sha256", v)
	}
	if v := mustCall(t, r, "crypto", "sha3", types.NewStr("abc")); v.String() != tests[2].expected {
		t.Errorf("sha3(abc) = %s", v)
	}
	if v := mustCall(t, r, "crypto", "ripemd160", types.NewStr("abc")); v.String() != tests[3].expected {
		t.Errorf("ripemd160(abc) = %s", v)
	}
	if _, err := call(t, r, "crypto", "hash", types.NewStr("abc"), types.NewStr("crc32")); !types.IsCode(err, types.E_INVARG) {
		t.Errorf("unknown algorithm error = %v, want InvalidOperand", err)
	}
}

func TestHmac(t *testing.T) {
	r := newTestRegistry()
	v := mustCall(t, r, "crypto", "hmac",
		types.NewStr("The quick brown fox jumps over the lazy dog"), types.NewStr("key"), types.NewStr("sha256"))
	want := "F7BC83F430538424B13298E6AA6FB143EF4D59A14946175997479DBC2D1A3CD8"
	if v.String() != want {
		t.Errorf("hmac = %s, want %s", v, want)
	}
	if _, err := call(t, r, "crypto", "hmac", types.NewStr("x")); !types.IsCode(err, types.E_ARGS) {
		t.Errorf("hmac with one argument error = %v, want ArityMismatch", err)
	}
}

func TestArgon2(t *testing.T) {
	r := newTestRegistry()
	a := mustCall(t, r, "crypto", "argon2", types.NewStr("secret"), types.NewStr("saltsalt"))
	b := mustCall(t, r, "crypto", "argon2", types.NewStr("secret"), types.NewStr("saltsalt"))
	c := mustCall(t, r, "crypto", "argon2", types.NewStr("other"), types.NewStr("saltsalt"))

	if len(a.String()) != 64 {
		t.Errorf("argon2 key length = %d hex chars, want 64", len(a.String()))
	}
	if a.String() != b.String() {
		t.Errorf("argon2 is not deterministic")
	}
	if a.String() == c.String() {
		t.Errorf("different passwords produced the same key")
	}
	if _, err := call(t, r, "crypto", "argon2", types.NewStr("pw"), types.NewStr("short")); !types.IsCode(err, types.E_INVARG) {
		t.Errorf("short salt error = %v, want InvalidOperand", err)
	}
}

func TestCrypt(t *testing.T) {
	r := newTestRegistry()
	hashed := mustCall(t, r, "crypto", "crypt", types.NewStr("hunter2"), types.NewInt(4))
	if !strings.HasPrefix(hashed.String(), "$2a$04$") {
		t.Fatalf("crypt = %s, want a $2a$04$ hash", hashed)
	}

	tests := []struct {
		password string
		want     string
	}{
		{"hunter2", "true"},
		{"hunter3", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got := mustCall(t, r, "crypto", "verifyCrypt", hashed, types.NewStr(tt.password))
			if got.String() != tt.want {
				t.Errorf("verifyCrypt(%s) = %s, want %s", tt.password, got, tt.want)
			}
		})
	}

	if _, err := call(t, r, "crypto", "crypt", types.NewStr("pw"), types.NewInt(2)); !types.IsCode(err, types.E_INVARG) {
		t.Errorf("low cost error = %v, want InvalidOperand", err)
	}
	if _, err := call(t, r, "crypto", "verifyCrypt", types.NewStr("not a hash"), types.NewStr("pw")); !types.IsCode(err, types.E_INVARG) {
		t.Errorf("malformed hash error = %v, want InvalidOperand", err)
	}
	if _, err := call(t, r, "crypto", "crypt"); !types.IsCode(err, types.E_ARGS) {
		t.Errorf("missing argument error = %v, want ArityMismatch", err)
	}
}

func TestBase64(t *testing.T) {
	r := newTestRegistry()
	enc := mustCall(t, r, "crypto", "encodeBase64", types.NewStr("hello"))
	if enc.String() != "aGVsbG8=" {
		t.Errorf("encodeBase64 = %s", enc)
	}
	for _, in := range []string{"aGVsbG8=", "aGVsbG8"} {
		if dec := mustCall(t, r, "crypto", "decodeBase64", types.NewStr(in)); dec.String() != "hello" {
			t.Errorf("decodeBase64(%s) = %s", in, dec)
		}
	}
	if _, err := call(t, r, "crypto", "decodeBase64", types.NewStr("!!")); !types.IsCode(err, types.E_INVARG) {
		t.Errorf("bad base64 error = %v, want InvalidOperand", err)
	}
}
