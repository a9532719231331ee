package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "leetle",
		Usage: "Daily coding challenge judge",
		Commands: []*cli.Command{
			serveCommand(),
			verifyCommand(),
			tokenCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
