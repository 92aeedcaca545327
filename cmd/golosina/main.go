package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oarkflow/log"
	"github.com/peterh/liner"

	"golosina/eval"
	"golosina/parser"
	"golosina/trace"
	"golosina/types"
)

const (
	promptMain = "golosina> "
	promptCont = "     ...> "
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("golosina", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	expr := fs.String("e", "", "Evaluate source text and print the result")
	dumpAST := fs.Bool("dump-ast", false, "Print the parsed program instead of running it")

	// Trace flags
	traceEnabled := fs.Bool("trace", false, "Enable method call tracing")
	traceFilter := fs.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'calc_*')")

	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	maxDepth := fs.Int("max-call-depth", 0, "Maximum number of active method calls")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		cfg = loaded
	}

	// Flags override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			cfg.Trace = *traceEnabled
		case "trace-filter":
			cfg.TraceFilter = *traceFilter
		case "log-level":
			cfg.LogLevel = *logLevel
		case "max-call-depth":
			cfg.MaxCallDepth = *maxDepth
		}
	})

	logger := log.DefaultLogger
	logger.Level = log.ParseLevel(cfg.LogLevel)

	// Initialize tracer
	if cfg.Trace {
		var filters []string
		if cfg.TraceFilter != "" {
			filters = strings.Split(cfg.TraceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
		logger.Debug().Str("filter", cfg.TraceFilter).Msg("tracing enabled")
	} else {
		trace.Init(false, nil, nil)
	}

	args := fs.Args()
	var scriptArgs []string
	if *expr == "" && len(args) > 1 {
		scriptArgs = args[1:]
	} else if *expr != "" {
		scriptArgs = args
	}

	opts := []eval.Option{
		eval.WithOutput(os.Stdout),
		eval.WithArgs(scriptArgs),
		eval.WithLogger(&logger),
	}
	if cfg.MaxCallDepth > 0 {
		opts = append(opts, eval.WithMaxCallDepth(cfg.MaxCallDepth))
	}

	switch {
	case *expr != "":
		return runSource(*expr, "<expr>", *dumpAST, true, opts)
	case len(args) > 0:
		src, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return runSource(string(src), args[0], *dumpAST, false, opts)
	default:
		return repl(cfg, opts)
	}
}

// runSource parses and runs one program, reporting errors on stderr.
// Exit status 2 means syntax errors, 1 an evaluation error.
func runSource(src, path string, dumpAST, printResult bool, opts []eval.Option) int {
	if dumpAST {
		prog, err := parser.ParseString(src, path)
		if err != nil {
			reportError(os.Stderr, err)
			return 2
		}
		for _, line := range parser.UnparseProgram(prog) {
			fmt.Println(line)
		}
		return 0
	}

	interp := eval.NewInterpreter(opts...)
	v, err := interp.Run(src, path)
	if err != nil {
		reportError(os.Stderr, err)
		var list parser.ErrorList
		if errors.As(err, &list) {
			return 2
		}
		return 1
	}
	if printResult {
		fmt.Println(types.Repr(v))
	}
	return 0
}

// reportError writes every syntax error, or the single evaluation error,
// one per line
func reportError(w io.Writer, err error) {
	var list parser.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			fmt.Fprintf(w, "SyntaxError: %v\n", e)
		}
		return
	}
	fmt.Fprintf(w, "%v\n", err)
}

func repl(cfg *Config, opts []eval.Option) int {
	fmt.Println("Golosina interactive session. Type :quit to exit.")

	interp := eval.NewInterpreter(opts...)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryFile
	if histPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, ".golosina_history")
		}
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit", ":q":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		v, err := interp.Run(src, "<repl>")
		if err != nil {
			reportError(os.Stderr, err)
			continue
		}
		fmt.Println(types.Repr(v))
	}
}

// readStatement reads lines until every brace, bracket and paren opened
// outside a string literal is closed
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openDelimiters(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

func openDelimiters(src string) int {
	depth := 0
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '{' || c == '(' || c == '[':
			depth++
		case c == '}' || c == ')' || c == ']':
			depth--
		}
	}
	return depth
}
