package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/beevik/term"

	"github.com/wordasm/wordasm/shell"
)

var (
	interactive bool
)

func init() {
	flag.BoolVar(&interactive, "i", false, "start the interactive inspection shell after assembling")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: wordasm [-i] <stem> ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	stems := flag.Args()
	if len(stems) == 0 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	sh := shell.New()
	for _, stem := range stems {
		// Per-file success or failure is already printed by AssembleFile;
		// only an I/O failure (reading the source or writing an output
		// file) is reported here.
		if _, err := sh.Load(stem); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to assemble %s: %v\n", stem, err)
		}
	}

	if interactive {
		runShell(sh)
	}
}

// runShell runs the interactive inspection shell until the user quits.
// When stdin is a real terminal, its state is captured first so it can
// be restored if the shell leaves it altered (e.g. after an unclean
// exit from a future key-driven feature).
func runShell(sh *shell.Shell) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		if st, err := term.GetState(fd); err == nil {
			defer term.Restore(fd, st)
		}
	}
	sh.Run(os.Stdin, os.Stdout, true)
}
