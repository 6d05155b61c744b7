package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/brainbang-lang/brainbang/internal/bf"
	"github.com/brainbang-lang/brainbang/internal/cache"
	"github.com/brainbang-lang/brainbang/internal/codegen"
	"github.com/brainbang-lang/brainbang/internal/config"
	"github.com/brainbang-lang/brainbang/internal/diagnostics"
	"github.com/brainbang-lang/brainbang/internal/lexer"
	"github.com/brainbang-lang/brainbang/internal/parser"
	"github.com/brainbang-lang/brainbang/internal/pipeline"
)

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Entry is the command-line entry point. It decides between
// compile-only, execute-only, and compile-then-run, and owns all file
// I/O; the core pipeline and VM only ever see text and streams.
func Entry() {
	if handleHelp() {
		return
	}
	if handleCompile() {
		return
	}
	if handleExec() {
		return
	}
	handleRun()
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	if os.Args[1] != "-help" && os.Args[1] != "--help" && os.Args[1] != "help" {
		return false
	}
	printUsage()
	return true
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Printf(`Usage:
  %[1]s <file%[2]s>              compile and run
  %[1]s -c <file%[2]s>           compile to <file>%[3]s
  %[1]s -x <file%[3]s>           run a compiled artifact

Flags:
  -step-limit <n>   abort execution after n instructions
  -trace            report run id and executed steps on stderr
`, name, config.SourceFileExt, config.ArtifactFileExt)
}

// handleCompile compiles a source file to a Brainfuck artifact
// (-c / --compile).
func handleCompile() bool {
	if len(os.Args) < 3 || (os.Args[1] != "-c" && os.Args[1] != "--compile") {
		return false
	}

	sourcePath := os.Args[2]
	code := mustCompileFile(sourcePath)

	outputPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + config.ArtifactFileExt
	if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing artifact: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Compiled %s -> %s (%d instructions)\n", sourcePath, outputPath, len(code))
	return true
}

// handleExec runs an already-compiled artifact (-x / --exec).
func handleExec() bool {
	if len(os.Args) < 3 || (os.Args[1] != "-x" && os.Args[1] != "--exec") {
		return false
	}

	artifactPath := os.Args[2]
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading artifact: %s\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(artifactPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading project config: %s\n", err)
		os.Exit(1)
	}
	colorMode = cfg.Color

	execute(string(data), cfg, os.Args[3:])
	return true
}

// handleRun is the default mode: compile the source (through the
// artifact cache when enabled) and execute the result.
func handleRun() {
	sourcePath := firstNonFlag(os.Args[1:])
	if sourcePath == "" {
		printUsage()
		os.Exit(1)
	}
	if !isSourceFile(sourcePath) {
		fmt.Fprintf(os.Stderr, "Not a BrainBang source file (expected %s): %s\n",
			strings.Join(config.SourceFileExtensions, " or "), sourcePath)
		os.Exit(1)
	}

	cfg, err := loadConfig(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading project config: %s\n", err)
		os.Exit(1)
	}
	colorMode = cfg.Color

	sourceCode, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %s\n", err)
		os.Exit(1)
	}

	code := compileCached(string(sourceCode), sourcePath, cfg)
	execute(code, cfg, os.Args[1:])
}

// compileCached compiles through the artifact cache: an unchanged
// source comes straight back from the cache file. Cache failures
// degrade to a plain compile, they never fail the run.
func compileCached(sourceCode, sourcePath string, cfg *Config) string {
	if !cfg.Cache.Enabled {
		return mustCompile(sourceCode, sourcePath)
	}

	path := cfg.Cache.Path
	if path == "" {
		path = filepath.Join(filepath.Dir(sourcePath), ".brainbang-cache.db")
	}

	store, err := cache.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: artifact cache unavailable: %s\n", err)
		return mustCompile(sourceCode, sourcePath)
	}
	defer store.Close()

	key := cache.Key(sourceCode)
	if code, ok, err := store.Get(key); err == nil && ok {
		return code
	}

	code := mustCompile(sourceCode, sourcePath)
	if err := store.Put(key, filepath.Base(sourcePath), code); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: artifact cache store failed: %s\n", err)
	}
	return code
}

func mustCompileFile(sourcePath string) string {
	sourceCode, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %s\n", err)
		os.Exit(1)
	}
	return mustCompile(string(sourceCode), sourcePath)
}

func mustCompile(sourceCode, sourcePath string) string {
	initialContext := pipeline.NewPipelineContext(sourceCode)
	initialContext.FilePath = sourcePath

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&codegen.CodegenProcessor{},
	)

	finalContext := processingPipeline.Run(initialContext)

	if finalContext.HasErrors() {
		printDiagnostic(finalContext.FirstError())
		os.Exit(1)
	}

	return finalContext.Code
}

func execute(code string, cfg *Config, args []string) {
	stepLimit := cfg.StepLimit
	trace := false
	for i, arg := range args {
		switch arg {
		case "-trace", "--trace":
			trace = true
		case "-step-limit", "--step-limit":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "-step-limit requires a value")
				os.Exit(1)
			}
			n, err := strconv.ParseUint(args[i+1], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid step limit: %s\n", args[i+1])
				os.Exit(1)
			}
			stepLimit = n
		}
	}

	program, derr := bf.Load(code)
	if derr != nil {
		printDiagnostic(derr)
		os.Exit(1)
	}

	machine := bf.New(program)
	machine.SetInput(os.Stdin)
	machine.SetOutput(os.Stdout)
	machine.SetStepLimit(stepLimit)

	runID := uuid.NewString()
	err := machine.Run()

	if trace {
		fmt.Fprintf(os.Stderr, "run %s: %d steps\n", runID, machine.Steps())
	}

	if err != nil {
		if derr, ok := err.(*diagnostics.DiagnosticError); ok {
			printDiagnostic(derr)
		} else {
			fmt.Fprintf(os.Stderr, "Runtime error: %s\n", err)
		}
		os.Exit(1)
	}
}

func firstNonFlag(args []string) string {
	skip := false
	for _, arg := range args {
		if skip {
			skip = false
			continue
		}
		if arg == "-step-limit" || arg == "--step-limit" {
			skip = true
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return arg
	}
	return ""
}

func printDiagnostic(err *diagnostics.DiagnosticError) {
	if useColor() {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", err.Error())
}

// colorMode mirrors the project config's color setting for the
// handlers that loaded one; compile-only mode stays on auto.
var colorMode = "auto"

func useColor() bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
