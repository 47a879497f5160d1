// Command cpptrepl is an interactive front end: every chunk of input is
// checked as a complete Cppt program and its expressions are printed in
// reverse Polish notation.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"cppt/pkg/compiler"
	"cppt/pkg/utils"
)

const (
	banner     = "cppt front end. Enter declarations; :tokens :table :rpn toggle output, :quit exits."
	promptMain = "cppt> "
	promptCont = "  ... "
)

// settings are the output toggles flipped by colon commands.
type settings struct {
	tokens bool
	table  bool
	rpn    bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cpptrepl", flag.ContinueOnError)
	kwPath := fs.String("keywords", "", "keyword file, one word per line (default: builtin set)")
	histPath := fs.String("history", defaultHistory(), "history file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	keywords, err := utils.ReadKeywords(*kwPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if *histPath != "" {
		if f, err := os.Open(*histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(*histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	set := settings{rpn: true}
	for {
		code, ok := readByParseProbe(ln, keywords, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if !command(os.Stdout, &set, trimmed) {
				return 0
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		report(os.Stdout, os.Stderr, keywords, code, set)
	}
	return 0
}

// command applies a colon command and reports false on :quit.
func command(w io.Writer, set *settings, cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return false
	case ":tokens":
		set.tokens = !set.tokens
		fmt.Fprintf(w, "tokens %s\n", onOff(set.tokens))
	case ":table":
		set.table = !set.table
		fmt.Fprintf(w, "table %s\n", onOff(set.table))
	case ":rpn":
		set.rpn = !set.rpn
		fmt.Fprintf(w, "rpn %s\n", onOff(set.rpn))
	default:
		fmt.Fprintln(w, "unknown command. Try :tokens, :table, :rpn or :quit.")
	}
	return true
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// report compiles one chunk and prints what the toggles ask for. Errors go
// to errW.
func report(w, errW io.Writer, keywords *compiler.Trie, code string, set settings) {
	res, err := compiler.Compile(code, keywords, compiler.Options{})
	if set.tokens {
		for _, tok := range res.Tokens {
			fmt.Fprintln(w, " ", tok)
		}
	}
	if err != nil {
		fmt.Fprintln(errW, compiler.WrapErrorWithSource(err, code))
		return
	}
	if set.table {
		fmt.Fprint(w, res.Table)
	}
	if set.rpn {
		for _, e := range res.RPN {
			fmt.Fprintln(w, " ", e)
		}
	}
	fmt.Fprintln(w, "ok")
}

// readByParseProbe keeps reading lines while the accumulated text only
// fails because it ends too early.
func readByParseProbe(ln *liner.State, keywords *compiler.Trie, prompt, cont string) (string, bool) {
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

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		_, perr := compiler.Compile(src, keywords, compiler.Options{})
		if perr != nil && compiler.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cppt_history")
}
