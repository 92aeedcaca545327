package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"golosina/eval"
	"golosina/parser"
	"golosina/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Every test gets a fresh
// Interpreter, so tests never observe each other's bindings.
type Runner struct {
	opts []eval.Option
}

// NewRunner creates a test runner; opts are applied to every Interpreter
func NewRunner(opts ...eval.Option) *Runner {
	return &Runner{opts: opts}
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}
	if test.Test.Code == "" {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: "no code",
		}
	}

	var out bytes.Buffer
	opts := append([]eval.Option{eval.WithOutput(&out), eval.WithArgs(test.Test.Args)}, r.opts...)
	interp := eval.NewInterpreter(opts...)

	if test.Suite.Setup != "" {
		if _, err := interp.Run(test.Suite.Setup, test.File+":setup"); err != nil {
			return TestResult{
				Test:  test,
				Error: fmt.Errorf("suite setup failed: %w", err),
			}
		}
		out.Reset()
	}

	val, err := interp.Run(test.Test.Code, test.File)
	passed, checkErr := r.checkExpectation(test.Test, val, err, out.String())
	return TestResult{
		Test:   test,
		Passed: passed,
		Error:  checkErr,
	}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the outcome of a run matches the test
func (r *Runner) checkExpectation(test TestCase, val types.Value, runErr error, output string) (bool, error) {
	expect := test.Expect
	if expect.IsEmpty() {
		return false, fmt.Errorf("no expectation specified")
	}

	if expect.Output != nil && output != *expect.Output {
		return false, fmt.Errorf("expected output %q, got %q", *expect.Output, output)
	}

	// Syntax errors
	var syntaxErrs parser.ErrorList
	if errors.As(runErr, &syntaxErrs) {
		if expect.SyntaxErrors == 0 {
			return false, fmt.Errorf("unexpected syntax error: %v", runErr)
		}
		if len(syntaxErrs) != expect.SyntaxErrors {
			return false, fmt.Errorf("expected %d syntax errors, got %d: %v", expect.SyntaxErrors, len(syntaxErrs), runErr)
		}
		return true, nil
	}
	if expect.SyntaxErrors > 0 {
		return false, fmt.Errorf("expected %d syntax errors, got none", expect.SyntaxErrors)
	}

	// Evaluation errors
	if expect.Error != "" || expect.Kind != "" {
		if runErr == nil {
			return false, fmt.Errorf("expected error %s, got value: %s", expect.Error+expect.Kind, types.Repr(val))
		}
		evalErr := types.AsError(runErr)
		if expect.Error != "" {
			code, ok := types.ErrorFromString(expect.Error)
			if !ok {
				return false, fmt.Errorf("unknown error code: %s", expect.Error)
			}
			if evalErr.Code != code {
				return false, fmt.Errorf("expected error %s, got %s (%s)", expect.Error, evalErr.Code, evalErr.Message)
			}
		}
		if expect.Kind != "" && evalErr.Kind.String() != expect.Kind {
			return false, fmt.Errorf("expected error kind %s, got %s", expect.Kind, evalErr.Kind)
		}
		return true, nil
	}

	if runErr != nil {
		return false, fmt.Errorf("unexpected error: %v", runErr)
	}

	if expect.Type != "" && types.TypeOf(val).String() != expect.Type {
		return false, fmt.Errorf("expected type %s, got %s", expect.Type, types.TypeOf(val))
	}

	if expect.Value != nil {
		expected := convertYAMLValue(expect.Value)
		actual, err := types.ToHost(val)
		if err != nil {
			return false, fmt.Errorf("result %s has no comparable form: %v", types.Repr(val), err)
		}
		if !reflect.DeepEqual(expected, actual) {
			return false, fmt.Errorf("expected %v, got %s", expect.Value, types.Repr(val))
		}
	}

	return true, nil
}

// convertYAMLValue normalizes a decoded YAML value to the host form
// produced by types.ToHost
func convertYAMLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return int64(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = convertYAMLValue(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = convertYAMLValue(elem)
		}
		return out
	default:
		return val
	}
}
