// Command type-checker is the standalone CLI for typechecker.NewCommands,
// following cli/app.New's cli.NewApp()-plus-NewCommands() convention.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/nspcc-dev/vimp/cli/typechecker"
)

func main() {
	app := cli.NewApp()
	app.Name = "type-checker"
	app.Usage = "Type-check and certify IMP-with-functions programs"
	app.ErrWriter = os.Stdout
	app.Commands = typechecker.NewCommands()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
