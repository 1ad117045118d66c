// Command ssss is the convenience entry point that exposes both split
// and combine as subcommands (SPEC_FULL.md supplemented features);
// ssss-split and ssss-combine remain the primary, spec-compatible
// binaries.
package main

import (
	"os"

	"github.com/MrJoy/ssss/internal/cli"
)

//nolint:gochecknoglobals // build info injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := cli.Execute(cli.BuildInfo{Version: version, Commit: commit, Date: buildDate}); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
