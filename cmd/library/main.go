// Command library runs the circulation desk.
//
//	library session             read desk commands from stdin
//	library catalog             print the seeded catalog
//
// Settings come from LIBRARY_* environment variables and can be overridden by flags.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
