package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/gradebook/apps/shared"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Run the command without writing the gradebook files.")
	flag.Parse()

	deps, err := shared.NewDeps(*dryRun)
	if err != nil {
		log.Fatalf("admin: %+v", err)
	}

	cli := commandLine{
		gb:         deps.Gradebook,
		validate:   deps.Validate,
		translator: deps.Translator,
		out:        os.Stdout,
	}
	args := append([]string{os.Args[0]}, flag.Args()...)
	if err := cli.run(args); err != nil {
		if err != errHelp {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", shared.ErrorMessage(err, cli.translator))
		}
		os.Exit(1)
	}
}
