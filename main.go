package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cppt/pkg/compiler"
	"cppt/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitCode maps a pipeline error to the process status:
// 1 I/O or usage, 2 lexical, 3 syntax, 4 semantic.
func exitCode(err error) int {
	switch compiler.StageOf(err) {
	case compiler.StageLexical:
		return 2
	case compiler.StageSyntax:
		return 3
	case compiler.StageSemantic:
		return 4
	}
	if err != nil {
		return 1
	}
	return 0
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cppt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input Cppt source file path")
	kwPath := fs.String("keywords", "", "keyword file, one word per line (default: builtin set)")
	showTokens := fs.Bool("tokens", false, "print the token stream")
	showAST := fs.Bool("ast", false, "print the syntax tree")
	showTable := fs.Bool("table", false, "print the identifier table")
	showRPN := fs.Bool("rpn", true, "print the RPN of every expression")
	trace := fs.Bool("trace", false, "trace declarations and scope changes to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *inPath == "" && fs.NArg() > 0 {
		*inPath = fs.Arg(0)
	}
	if *inPath == "" {
		fmt.Fprintln(stderr, "nothing to do: provide -in <file>")
		fs.Usage()
		return 1
	}

	src, err := utils.ReadSource(*inPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	keywords, err := utils.ReadKeywords(*kwPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var opts compiler.Options
	if *trace {
		opts.Logger = log.New(stderr, "cppt: ", 0)
	}
	res, err := compiler.Compile(src, keywords, opts)

	// stages that finished are reported even when a later one failed
	if *showTokens && res.Tokens != nil {
		fmt.Fprintf(stdout, "Tokens (%d)\n", len(res.Tokens))
		for _, tok := range res.Tokens {
			fmt.Fprintln(stdout, " ", tok)
		}
		fmt.Fprintln(stdout)
	}
	if err != nil {
		if *showTable && res.Table != nil {
			fmt.Fprint(stdout, res.Table)
		}
		fmt.Fprintln(stderr, compiler.WrapErrorWithSource(err, src))
		return exitCode(err)
	}

	if *showAST {
		fmt.Fprintln(stdout, "AST")
		fmt.Fprint(stdout, res.Program)
		fmt.Fprintln(stdout)
	}
	if *showTable {
		fmt.Fprint(stdout, res.Table)
		fmt.Fprintln(stdout)
	}
	if *showRPN {
		fmt.Fprintf(stdout, "RPN (%d)\n", len(res.RPN))
		for _, e := range res.RPN {
			fmt.Fprintln(stdout, " ", e)
		}
	}
	fmt.Fprintf(stdout, "ok: %s\n", *inPath)
	return 0
}
