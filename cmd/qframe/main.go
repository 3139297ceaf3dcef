// Command qframe browses a relational database with lazy dataframe views.
package main

import (
	"os"

	"github.com/qframe-project/qframe/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
