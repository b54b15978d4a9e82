// Command interpreter is the standalone CLI for interpreter.NewCommands,
// following cli/app.New's cli.NewApp()-plus-NewCommands() convention.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/nspcc-dev/vimp/cli/interpreter"
)

func main() {
	app := cli.NewApp()
	app.Name = "interpreter"
	app.Usage = "Run certified IMP-with-functions programs against attested arguments"
	app.ErrWriter = os.Stdout
	app.Commands = interpreter.NewCommands()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
