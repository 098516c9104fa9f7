package main

import (
	"log"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/gradebook/apps/shared"
)

var isTerminalFunc = term.IsTerminal // mockable

func main() {
	deps, err := shared.NewDeps(false)
	if err != nil {
		log.Fatalf("gradebook: %+v", err)
	}

	echo := !isTerminalFunc(int(os.Stdin.Fd()))
	sh := newShell(os.Stdin, os.Stdout, echo, deps)
	if err := sh.run(); err != nil {
		deps.Logger.Fatal("shell stopped", err)
	}
}
