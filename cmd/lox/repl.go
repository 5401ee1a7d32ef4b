package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"lox/internal/loxerror"
)

// runRepl is the interactive mode: a chzyer/readline session with a
// history file and brace-depth tracking so a multi-line block or
// function body can be entered before the input is run. HadError is
// cleared between lines so one bad line doesn't poison the rest of the
// session, while HadRuntimeError is left set once tripped.
func runRepl() {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".lox_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "lox> ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(exitUsage)
	}
	defer rl.Close()

	reporter := &loxerror.Reporter{}
	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt("...  ")
		} else {
			rl.SetPrompt("lox> ")
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		reporter.Reset()
		if err := run(source, reporter, rl.Stdout()); err != nil {
			fmt.Fprintln(rl.Stderr(), err)
		}
	}
}
