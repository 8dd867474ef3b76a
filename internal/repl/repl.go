/*
File    : meteor/internal/repl/repl.go

Package repl implements Meteor's interactive Read-Eval-Print Loop: one
line in, lexed/parsed/analyzed/evaluated against an environment that
persists across lines, colored diagnostics and results out. Structure
and color scheme are adapted from the reference interpreter's REPL,
generalized to Meteor's parse -> analyze -> eval pipeline and to a
session type that can be driven either from a terminal (cmd/meteor's
`repl` subcommand) or from an accepted TCP connection (`repl --serve`).
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/meteor/internal/analyzer"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/environment"
	"github.com/akashmaji946/meteor/internal/eval"
	"github.com/akashmaji946/meteor/internal/parser"
	"github.com/akashmaji946/meteor/internal/source"
	"github.com/akashmaji946/meteor/internal/value"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is one interactive session: its banner/prompt presentation and
// the state (registry, environment) that must survive across lines.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
	// UseColor selects colored output for this session; when false,
	// output is written with no color codes. cmd/meteor sets it from
	// meteor.yaml's `color` setting for the stdio REPL and for every
	// `repl --serve` connection alike.
	UseColor bool

	reg    *source.Registry
	env    *environment.Environment
	ev     *eval.Evaluator
	lineNo int
}

// New creates a Repl with the given presentation strings. useColor
// controls whether this session's output is ANSI-colored.
func New(banner, version, author, line, license, prompt string, useColor bool) *Repl {
	return &Repl{
		Banner:   banner,
		Version:  version,
		Author:   author,
		Line:     line,
		License:  license,
		Prompt:   prompt,
		UseColor: useColor,
	}
}

func (r *Repl) fprint(w io.Writer, c *color.Color, format string, args ...interface{}) {
	if r.UseColor {
		c.Fprintf(w, format, args...)
		return
	}
	fmt.Fprintf(w, format, args...)
}

// PrintBannerInfo writes the startup banner, version line, and usage
// instructions to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	r.fprint(writer, blueColor, "%s\n", r.Line)
	r.fprint(writer, greenColor, "%s\n", r.Banner)
	r.fprint(writer, blueColor, "%s\n", r.Line)
	r.fprint(writer, yellowColor, "Version: %s | Author: %s | License: %s\n", r.Version, r.Author, r.License)
	r.fprint(writer, blueColor, "%s\n", r.Line)
	r.fprint(writer, cyanColor, "Welcome to Meteor!\n")
	r.fprint(writer, cyanColor, "Type your code and press enter\n")
	r.fprint(writer, cyanColor, "Type '.exit' to quit\n")
	r.fprint(writer, cyanColor, "Use up/down arrows to navigate command history\n")
	r.fprint(writer, blueColor, "%s\n", r.Line)
}

// Start runs the REPL loop reading lines through readline, writing
// prompts, results, and diagnostics to writer. It returns once the user
// types .exit or sends EOF (Ctrl+D). Bindings made with `let` persist
// across lines in the session's environment, per SPEC_FULL.md §2.3.
func (r *Repl) Start(writer io.Writer) error {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	r.reg = source.NewRegistry()
	r.env = eval.NewGlobalEnv()
	r.ev = eval.New(writer, eval.PolicyLastExpression)

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(writer, "Good Bye!")
			return nil
		}
		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(writer, "Good Bye!")
			return nil
		}
		rl.SaveHistory(line)
		r.evalLine(writer, line)
	}
}

// Feed is the connection-oriented counterpart to Start: it evaluates a
// single line against the session's persistent state and is meant to be
// driven by a caller reading lines off a net.Conn (cmd/meteor's
// `repl --serve`), one goroutine per connection, each with its own Repl.
func (r *Repl) Feed(writer io.Writer, line string) {
	if r.reg == nil {
		r.reg = source.NewRegistry()
		r.env = eval.NewGlobalEnv()
		r.ev = eval.New(writer, eval.PolicyLastExpression)
	}
	r.evalLine(writer, line)
}

// evalLine lexes, parses, analyzes, and evaluates one line against the
// session's persistent registry/environment, printing diagnostics and
// the resulting value (or nothing, for Nil, mirroring file-mode's
// quieter output rather than the reference REPL's "print every result").
func (r *Repl) evalLine(writer io.Writer, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.fprint(writer, redColor, "[runtime panic] %v\n", rec)
		}
	}()

	r.lineNo++
	name := fmt.Sprintf("<repl:%d>", r.lineNo)
	id := r.reg.Intern(name, line)

	prog, diags := parser.Parse(id, line)
	r.printDiagnostics(writer, diags)
	if diag.HasErrors(diags) {
		return
	}

	analyzerDiags := analyzer.Analyze(prog)
	r.printDiagnostics(writer, analyzerDiags)

	v, rerr := r.ev.EvalTopLevel(r.env, prog.Exprs)
	if rerr != nil {
		r.fprint(writer, redColor, "[runtime error] %s: %s\n", rerr.Diagnostic.Kind, rerr.Diagnostic.Message)
		return
	}
	if v.Type() != value.TypeNil {
		r.fprint(writer, yellowColor, "%s\n", v.Display())
	}
}

func (r *Repl) printDiagnostics(writer io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		c := cyanColor
		switch d.Severity {
		case diag.SeverityError:
			c = redColor
		case diag.SeverityWarning:
			c = yellowColor
		}
		r.fprint(writer, c, "[%s] %s: %s\n", d.Severity, d.Kind, d.Message)
	}
}
