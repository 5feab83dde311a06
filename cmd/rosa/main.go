// Command rosa plays transform and opacity animations against an HTML page
// offline.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/rosa/cmd/rosa/cmd"
	"github.com/go-drift/rosa/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the exit code. A panicking command is
// reported through the error handler and exits with 1.
func run(args []string) (code int) {
	code = 1
	defer errors.Recover("rosa")
	if err := cmd.Execute(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
