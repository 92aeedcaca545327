package conformance

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Setup       string     `yaml:"setup,omitempty"` // run before every test of the suite
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string
	Code        string      `yaml:"code"`
	Args        []string    `yaml:"args,omitempty"` // returned by os.args()
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test. Output is
// checked in addition to any of the other fields.
type Expectation struct {
	Value        interface{} `yaml:"value,omitempty"`         // exact match on the host form
	Type         string      `yaml:"type,omitempty"`          // int, float, string, object, ...
	Error        string      `yaml:"error,omitempty"`         // ConstReassignment, TypeMismatch, ...
	Kind         string      `yaml:"kind,omitempty"`          // EnvironmentError, RuntimeError, TypeError
	Output       *string     `yaml:"output,omitempty"`        // everything written by fmt.print*
	SyntaxErrors int         `yaml:"syntax_errors,omitempty"` // number of queued syntax errors
}

// IsEmpty reports whether no expectation was given
func (e *Expectation) IsEmpty() bool {
	return e.Value == nil && e.Type == "" && e.Error == "" && e.Kind == "" &&
		e.Output == nil && e.SyntaxErrors == 0
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
