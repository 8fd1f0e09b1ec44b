package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"minilang/interpreter-go/pkg/driver"
	"minilang/interpreter-go/pkg/interpreter"
	"minilang/interpreter-go/pkg/lexer"
	"minilang/interpreter-go/pkg/parser"
	"minilang/interpreter-go/pkg/printer"
	"minilang/interpreter-go/pkg/runtime"
)

const cliToolVersion = "minilang 0.1.0-dev"

const usage = `usage: minilang <command> [arguments]

commands:
  run [--set name=value]... [--max-steps N] [file | target]
                 run a program and print the final environment
  check <file>   lex and parse only
  tokens <file>  print one token per line
  ast <file>     print the AST as JSON
  fmt [-w] <file>
                 print canonical source, or rewrite the file with -w
  repl           interactive session
  version        print the tool version
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cli struct {
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 1
	}
	switch args[0] {
	case "--help", "-h", "help":
		fmt.Fprint(stdout, usage)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return c.runProgram(args[1:])
	case "check":
		return c.check(args[1:])
	case "tokens":
		return c.tokens(args[1:])
	case "ast":
		return c.dumpAST(args[1:])
	case "fmt":
		return c.format(args[1:])
	case "repl":
		return c.repl(args[1:])
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		fmt.Fprint(stderr, usage)
		return 1
	}
}

// parseFlags maps flag errors to exit codes: 0 for -h, 2 otherwise.
func (c *cli) parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

// bindingFlags collects repeated --set name=value flags.
type bindingFlags map[string]runtime.Binding

func (b bindingFlags) String() string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func (b bindingFlags) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", text)
	}
	binding, err := driver.ParseBinding(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	b[name] = binding
	return nil
}

func (c *cli) runProgram(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	sets := bindingFlags{}
	fs.Var(sets, "set", "initial binding name=value or name=type:value (repeatable)")
	maxSteps := fs.Int("max-steps", -1, "step budget; 0 is unlimited, default comes from the manifest")
	if code, ok := c.parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		return 1
	}

	src, manifest, target, err := c.resolveProgram(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return 1
	}

	bindings := map[string]runtime.Binding{}
	if target != nil {
		for name, b := range target.Inputs {
			bindings[name] = b
		}
	}
	for name, b := range sets {
		bindings[name] = b
	}
	limit := 0
	if manifest != nil {
		limit = manifest.MaxSteps
	}
	if *maxSteps >= 0 {
		limit = *maxSteps
	}

	program, err := parser.Parse(src.Text)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", src.Origin, err)
		return 1
	}
	interp := interpreter.New(interpreter.WithStepLimit(limit))
	env, err := interp.Run(program, driver.NewEnvironment(bindings))
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: runtime error: %v\n", src.Origin, err)
		return 1
	}
	printEnvironment(c.stdout, env)
	return 0
}

// resolveProgram picks the program to run: a manifest target by name, a
// file path, or the manifest's default target when arg is empty.
func (c *cli) resolveProgram(arg string) (*driver.Source, *driver.Manifest, *driver.Target, error) {
	manifest, err := loadNearestManifest()
	switch {
	case err == nil:
	case errors.Is(err, driver.ErrManifestNotFound):
		if arg == "" {
			return nil, nil, nil, fmt.Errorf("minilang run requires a file or target (%s not found)", driver.ManifestFileName)
		}
	case arg != "" && fileExists(arg):
		fmt.Fprintf(c.stderr, "warning: unable to load manifest (%v); running %s directly\n", err, arg)
	default:
		return nil, nil, nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	var target *driver.Target
	if arg == "" {
		if target, err = manifest.DefaultTarget(); err != nil {
			return nil, nil, nil, fmt.Errorf("manifest error: %w", err)
		}
	} else if manifest != nil && !fileExists(arg) {
		target, _ = manifest.FindTarget(arg)
	}
	if target == nil {
		src, err := driver.LoadFile(arg)
		if err != nil {
			return nil, nil, nil, err
		}
		return src, manifest, nil, nil
	}
	src, err := driver.LoadSource(manifest, target)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load target %q: %w", target.Name, err)
	}
	return src, manifest, target, nil
}

func loadNearestManifest() (*driver.Manifest, error) {
	path, err := driver.FindManifest(".")
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func printEnvironment(w io.Writer, env *runtime.Environment) {
	snapshot := env.Snapshot()
	for _, name := range env.Keys() {
		b := snapshot[name]
		fmt.Fprintf(w, "%s: %s = %s\n", name, b.TypeName, runtime.Format(b.Value))
	}
}

// singleFile parses flags and requires exactly one file argument.
func (c *cli) singleFile(fs *flag.FlagSet, args []string) (*driver.Source, int, bool) {
	if code, ok := c.parseFlags(fs, args); !ok {
		return nil, code, false
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(c.stderr, "minilang %s requires exactly one file\n", fs.Name())
		return nil, 1, false
	}
	src, err := driver.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return nil, 1, false
	}
	return src, 0, true
}

func (c *cli) check(args []string) int {
	src, code, ok := c.singleFile(flag.NewFlagSet("check", flag.ContinueOnError), args)
	if !ok {
		return code
	}
	if _, err := parser.Parse(src.Text); err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", src.Origin, err)
		return 1
	}
	fmt.Fprintf(c.stdout, "%s: ok\n", src.Origin)
	return 0
}

func (c *cli) tokens(args []string) int {
	src, code, ok := c.singleFile(flag.NewFlagSet("tokens", flag.ContinueOnError), args)
	if !ok {
		return code
	}
	toks, err := lexer.Tokenize(src.Text)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", src.Origin, err)
		return 1
	}
	for _, tok := range toks {
		fmt.Fprintf(c.stdout, "%s\t%s\t%s\n", tok.Kind, tok.Lexeme, tok.Pos)
	}
	return 0
}

func (c *cli) dumpAST(args []string) int {
	src, code, ok := c.singleFile(flag.NewFlagSet("ast", flag.ContinueOnError), args)
	if !ok {
		return code
	}
	program, err := parser.Parse(src.Text)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", src.Origin, err)
		return 1
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		fmt.Fprintf(c.stderr, "encode ast: %v\n", err)
		return 1
	}
	fmt.Fprintln(c.stdout, string(data))
	return 0
}

func (c *cli) format(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "write result to the source file instead of stdout")
	src, code, ok := c.singleFile(fs, args)
	if !ok {
		return code
	}
	formatted, err := printer.Pretty(src.Text)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", src.Origin, err)
		return 1
	}
	if !*write {
		fmt.Fprint(c.stdout, formatted)
		return 0
	}
	if formatted == src.Text {
		return 0
	}
	if err := os.WriteFile(src.Origin, []byte(formatted), 0o644); err != nil {
		fmt.Fprintf(c.stderr, "write %s: %v\n", src.Origin, err)
		return 1
	}
	return 0
}
