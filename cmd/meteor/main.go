/*
File    : meteor/cmd/meteor/main.go

Package main is Meteor's entrypoint. It dispatches to three modes:
`run` executes a file, `repl` starts an interactive session on stdio,
and `repl --serve <port>` runs one REPL session per accepted TCP
connection. Grounded on the reference interpreter's main/main.go (flag
dispatch, runFile, startServer/handleClient) adapted to Meteor's
lex -> parse -> analyze -> evaluate pipeline.
*/
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/akashmaji946/meteor/internal/analyzer"
	"github.com/akashmaji946/meteor/internal/astdump"
	"github.com/akashmaji946/meteor/internal/config"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/eval"
	"github.com/akashmaji946/meteor/internal/parser"
	"github.com/akashmaji946/meteor/internal/repl"
	"github.com/akashmaji946/meteor/internal/source"
	"github.com/akashmaji946/meteor/internal/value"
)

const version = "v0.1.0"
const author = "meteor maintainers"
const license = "MIT"
const prompt = "meteor >>> "

const banner = `
  _ __ ___   ___| |_ ___  ___  _ __
 | '_ ' _ \ / _ \ __/ _ \/ _ \| '__|
 | | | | | |  __/ || (_) | (_) | |
 |_| |_| |_|\___|\__\___/ \___/|_|
`

const line = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h":
		showHelp()
		os.Exit(0)
	case "--version", "-v":
		showVersion()
		os.Exit(0)
	case "run":
		os.Exit(runCommand(os.Args[2:]))
	case "repl":
		os.Exit(replCommand(os.Args[2:]))
	default:
		// Bare `meteor <path>` is shorthand for `meteor run <path>`.
		os.Exit(runCommand(os.Args[1:]))
	}
}

func showHelp() {
	cyanColor.Println("Meteor - a small expression-oriented scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  meteor run <path>             Execute a Meteor source file")
	yellowColor.Println("  meteor run -f <path> -d       Print the parsed AST as JSON without executing")
	yellowColor.Println("  meteor repl                   Start an interactive REPL on stdio")
	yellowColor.Println("  meteor repl --serve <port>    Start a REPL server on the given TCP port")
	yellowColor.Println("  meteor --help                 Display this help message")
	yellowColor.Println("  meteor --version              Display version information")
}

func showVersion() {
	cyanColor.Println("Meteor - a small expression-oriented scripting language")
	cyanColor.Printf("Version: %s\n", version)
	cyanColor.Printf("License: %s\n", license)
}

// runCommand implements `meteor run [--file|-f] <path> [--dump-ast|-d]`.
// It returns the process exit code rather than calling os.Exit directly,
// so the command-line parsing stays testable.
func runCommand(args []string) int {
	var path string
	var dumpAST bool
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--file", "-f":
			if i+1 >= len(args) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] %s requires a path argument\n", args[i])
				return 1
			}
			i++
			path = args[i]
		case "--dump-ast", "-d":
			dumpAST = true
		default:
			path = args[i]
		}
	}
	if path == "" {
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] missing file path. Usage: meteor run <path>\n")
		return 1
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", path, err)
		return 1
	}

	cfg, _ := config.Load(dirOf(path))
	reg := source.NewRegistry()
	id := reg.Intern(path, string(raw))
	prog, diags := parser.Parse(id, string(raw))
	exit := printDiagnostics(os.Stdout, diags, cfg.UseColor())
	if diag.HasErrors(diags) {
		return exit
	}

	if dumpAST {
		out, err := astdump.Dump(prog)
		if err != nil {
			redColor.Fprintf(os.Stderr, "[DUMP ERROR] %v\n", err)
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	// Analyzer diagnostics never abort the run (spec.md §7: "evaluation
	// may still proceed even if analyzer errors exist"); they still
	// count toward a non-zero exit code once evaluation finishes.
	analyzerDiags := analyzer.Analyze(prog)
	printDiagnostics(os.Stdout, analyzerDiags, cfg.UseColor())

	ev := eval.New(os.Stdout, cfg.Policy())
	result, rerr := ev.Run(prog)
	if rerr != nil {
		printColor(os.Stderr, redColor, cfg.UseColor(), "[RUNTIME ERROR] %s: %s\n", rerr.Diagnostic.Kind, rerr.Diagnostic.Message)
		return 1
	}
	if result.Type() != value.TypeNil {
		printColor(os.Stdout, yellowColor, cfg.UseColor(), "%s\n", result.Display())
	}
	if diag.HasErrors(analyzerDiags) {
		return 1
	}
	return 0
}

// replCommand implements `meteor repl` and `meteor repl --serve <port>`.
func replCommand(args []string) int {
	cfg, _ := config.Load(".")

	port := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "--serve" && i+1 < len(args) {
			port = args[i+1]
			i++
		}
	}

	if port == "" {
		session := repl.New(banner, version, author, line, license, prompt, cfg.UseColor())
		if err := session.Start(os.Stdout); err != nil {
			redColor.Fprintf(os.Stderr, "[REPL ERROR] %v\n", err)
			return 1
		}
		return 0
	}
	return startServer(port, cfg)
}

// startServer listens on port, handing each accepted connection its own
// REPL session (its own evaluator and environment), so the per-program
// sequential-evaluation guarantee holds independently per connection.
func startServer(port string, cfg config.Config) int {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on port %s: %v\n", port, err)
		return 1
	}
	defer listener.Close()
	cyanColor.Printf("meteor REPL server listening on :%s\n", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn, cfg)
	}
}

func handleClient(conn net.Conn, cfg config.Config) {
	defer conn.Close()
	cyanColor.Printf("new client connected from %s\n", conn.RemoteAddr())

	session := repl.New(banner, version, author, line, license, prompt, cfg.UseColor())
	session.PrintBannerInfo(conn)
	scanLinesInto(conn, session)

	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}

// printDiagnostics renders every diagnostic in diags to w, colored by
// severity, and returns the exit code that should follow if the caller
// does not continue (1 if any is Error severity, else 0).
func printDiagnostics(w *os.File, diags []diag.Diagnostic, useColor bool) int {
	for _, d := range diags {
		c := cyanColor
		switch d.Severity {
		case diag.SeverityError:
			c = redColor
		case diag.SeverityWarning:
			c = yellowColor
		}
		printColor(w, c, useColor, "[%s] %s: %s\n", d.Severity, d.Kind, d.Message)
	}
	if diag.HasErrors(diags) {
		return 1
	}
	return 0
}

func printColor(w *os.File, c *color.Color, useColor bool, format string, args ...interface{}) {
	if useColor {
		c.Fprintf(w, format, args...)
		return
	}
	fmt.Fprintf(w, format, args...)
}

// scanLinesInto reads newline-delimited input off conn and feeds each
// non-empty line to session, until the connection closes or the client
// sends .exit. Unlike Start, a network connection has no readline-style
// history/editing, so this mirrors the reference server's plain
// io.Reader/io.Writer handling of conn.
func scanLinesInto(conn net.Conn, session *repl.Repl) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		if text == ".exit" {
			fmt.Fprintln(conn, "Good Bye!")
			return
		}
		session.Feed(conn, text)
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
