// Command impalac is a thin driver over the semantic-analysis front
// end: it loads checker options, builds a module, runs the Type
// Checker, and renders whatever the Error Sink collected.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/checker"
	"github.com/impala-lang/impala/internal/config"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	switch sub {
	case "check":
		os.Exit(runCheck(args))
	case "version", "-v", "--version":
		fmt.Println("impalac (Impala semantic analyzer)")
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "impalac: unknown subcommand %q\n", sub)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: impalac <command>")
	fmt.Fprintln(os.Stderr, "  check [-config file.yaml]   check the built-in demo module")
	fmt.Fprintln(os.Stderr, "  version                     print the tool version")
}

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML checker config (optional)")
	verbose := fs.Bool("v", false, "enable debug-level checker logging")
	_ = fs.Parse(args)

	opts := config.Default()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "impalac: loading config: %v\n", err)

			return 1
		}

		opts = loaded
	}

	c := checker.New(opts)
	if *verbose {
		c.Log.SetLevel(hclog.Debug)
	}

	mod := demoModule()

	ok := c.Check(mod)
	for _, d := range c.Sink.Diagnostics() {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", red("error"), cyan(d.Span.String()), d.Message)

		for _, note := range d.Notes {
			fmt.Fprintf(os.Stderr, "  %s %s\n", yellow("note:"), note)
		}
	}

	if ok {
		fmt.Println("check: no diagnostics")

		return 0
	}

	return 1
}

// demoModule builds a small module exercising a struct, a function, and
// field access, standing in for the parser this front end does not include.
func demoModule() *ast.Module {
	pointDecl := &ast.StructDecl{
		Name: "Point",
		Fields: []*ast.Field{
			{Name: "x", Type: &ast.PrimTypeExpr{Name: "i32"}},
			{Name: "y", Type: &ast.PrimTypeExpr{Name: "i32"}},
		},
	}

	sumFn := &ast.FnDecl{
		Name: "sum",
		Params: []*ast.Param{
			{Name: "p", Type: &ast.PathTypeExpr{Name: "Point"}},
		},
		RetType: &ast.PrimTypeExpr{Name: "i32"},
		Body: &ast.BlockExpr{
			Tail: &ast.InfixExpr{
				Op:   ast.InfixAdd,
				Left: &ast.FieldExpr{Base: &ast.PathExpr{Name: "p"}, Name: "x"},
				Right: &ast.FieldExpr{
					Base: &ast.PathExpr{Name: "p"},
					Name: "y",
				},
			},
		},
	}

	return &ast.Module{
		Name:    "demo",
		Edition: "1.0.0",
		Items:   []ast.Item{pointDecl, sumFn},
	}
}
