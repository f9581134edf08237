package main

import (
	"os"

	"github.com/computerscienceiscool/springboard/pkg/cli"
)

func main() {
	// Handling a link always exits 0 from inside the root command;
	// an error here means the command line itself was rejected.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
