package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/interpreter"
	"minilang/interpreter-go/pkg/parser"
	"minilang/interpreter-go/pkg/runtime"
)

const (
	historyFile = ".minilang_history"
	promptMain  = "mini> "
	promptCont  = "...   "
)

const replHelp = `REPL commands:
  :env     Print every binding
  :reset   Forget all bindings
  :quit    Exit the REPL
Statements run against the session environment; a bare expression prints its value.
`

func (c *cli) repl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	maxSteps := fs.Int("max-steps", 0, "step budget per entry; 0 is unlimited")
	if code, ok := c.parseFlags(fs, args); !ok {
		return code
	}
	fmt.Fprintf(c.stdout, "%s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", cliToolVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

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

	session := newSession(c.stdout, c.stderr, *maxSteps)
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(c.stdout)
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if session.eval(code) {
			return 0
		}
	}
}

// readByParseProbe keeps reading lines while the buffered input parses as an
// unfinished program.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if src := b.String(); complete(src) {
			return src, true
		}
	}
}

// complete reports whether src needs no further lines: it parses (or fails
// for a reason other than running out of input), or it is an expression.
func complete(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return true
	}
	_, err := parser.Parse(src)
	if err == nil || !parser.IsIncomplete(err) {
		return true
	}
	_, err = parser.ParseBoolean(src)
	return err == nil
}

type session struct {
	out    io.Writer
	errOut io.Writer
	interp *interpreter.Interpreter
	env    *runtime.Environment
}

func newSession(out, errOut io.Writer, maxSteps int) *session {
	return &session{
		out:    out,
		errOut: errOut,
		interp: interpreter.New(interpreter.WithStepLimit(maxSteps)),
		env:    runtime.NewEnvironment(),
	}
}

// eval handles one complete entry and reports whether the session should end.
// A failing entry leaves the environment as it was before the entry.
func (s *session) eval(code string) bool {
	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}
	program, err := parser.Parse(code)
	if err != nil {
		if expr, exprErr := parser.ParseBoolean(code); exprErr == nil {
			s.printValue(expr)
			return false
		}
		fmt.Fprintln(s.errOut, err)
		return false
	}
	env, err := s.interp.Run(program, s.env)
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		return false
	}
	s.env = env
	return false
}

func (s *session) printValue(expr ast.BooleanExpression) {
	var target ast.Expression = expr
	if vt, ok := expr.(*ast.ValueTest); ok {
		target = vt.Expr
	}
	val, err := interpreter.EvaluateExpression(target, s.env)
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		return
	}
	fmt.Fprintln(s.out, runtime.Format(val))
}

func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":env":
		if s.env.Len() == 0 {
			fmt.Fprintln(s.out, "(no bindings)")
		}
		printEnvironment(s.out, s.env)
	case ":reset":
		s.env = runtime.NewEnvironment()
	case ":help":
		fmt.Fprint(s.out, replHelp)
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}
