// @title       FundSight API
// @version     1.0
// @description JSON view API of the FundSight portfolio front
// @BasePath    /api/v1
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/epeers/fundsight/internal/cli"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
