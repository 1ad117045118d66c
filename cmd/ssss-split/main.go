// Command ssss-split splits a secret into shares. It behaves like
// running "ssss split" directly (spec.md §6's argv[0] dispatch).
package main

import (
	"os"

	"github.com/MrJoy/ssss/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteNamed(os.Args[0], os.Args[1:]))
}
