package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golosina/types"
)

// Tracer provides execution tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if a method name matches any of the filter patterns
func (t *Tracer) matchesFilter(name string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// MethodCall logs a method call with its evaluated arguments
func (t *Tracer) MethodCall(name string, depth int, args []types.Value, hasReceiver bool) {
	if !t.enabled || !t.matchesFilter(name) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	argStrs := make([]string, len(args))
	for i, arg := range args {
		argStrs[i] = types.Repr(arg)
	}

	fmt.Fprintf(t.writer, "[TRACE] %sCALL %s args=[%s] this=%v\n",
		indent(depth), name, strings.Join(argStrs, ", "), hasReceiver)
}

// MethodReturn logs a method's result
func (t *Tracer) MethodReturn(name string, depth int, result types.Value) {
	if !t.enabled || !t.matchesFilter(name) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] %sRETURN %s => %s\n", indent(depth), name, types.Repr(result))
}

// MethodError logs an evaluation error leaving a method
func (t *Tracer) MethodError(name string, depth int, err *types.Error) {
	if !t.enabled || !t.matchesFilter(name) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] %sERROR %s %s: %s\n", indent(depth), name, err.Code, err.Message)
}

func indent(depth int) string {
	if depth <= 1 {
		return ""
	}
	return strings.Repeat("  ", depth-1)
}

// Global convenience functions

// MethodCall logs a method call using the global tracer
func MethodCall(name string, depth int, args []types.Value, hasReceiver bool) {
	if globalTracer != nil {
		globalTracer.MethodCall(name, depth, args, hasReceiver)
	}
}

// MethodReturn logs a method return using the global tracer
func MethodReturn(name string, depth int, result types.Value) {
	if globalTracer != nil {
		globalTracer.MethodReturn(name, depth, result)
	}
}

// MethodError logs an error using the global tracer
func MethodError(name string, depth int, err *types.Error) {
	if globalTracer != nil {
		globalTracer.MethodError(name, depth, err)
	}
}
